package quality_test

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/Abraxas-365/inkwell/pkg/scan/quality"
)

// blobPage draws count blobs of blobSize on a grid over a w x h page.
// Blobs are spaced so they never touch.
func blobPage(w, h, count, blobSize, spacing int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))

	placed := 0
	for y := 0; y+blobSize <= h && placed < count; y += spacing {
		for x := 0; x+blobSize <= w && placed < count; x += spacing {
			for dy := 0; dy < blobSize; dy++ {
				for dx := 0; dx < blobSize; dx++ {
					img.SetGray(x+dx, y+dy, color.Gray{Y: 255})
				}
			}
			placed++
		}
	}
	return img
}

func TestScore_LegiblePagePasses(t *testing.T) {
	// 40 well-separated 5x5 blobs on a 200x200 page: foreground ratio
	// 0.025, far more than 30 components, each of area 25.
	img := blobPage(200, 200, 40, 5, 10)

	report, err := quality.Score(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Status != quality.StatusPass {
		t.Fatalf("expected pass, got %s (score %.2f, metrics %+v)",
			report.Status, report.Score, report.Metrics)
	}
	if report.Score != 1.0 {
		t.Fatalf("expected composite 1.0, got %.2f", report.Score)
	}
	if report.Metrics.ComponentCount != 40 {
		t.Fatalf("expected 40 components, got %d", report.Metrics.ComponentCount)
	}
	if report.Metrics.AvgComponentArea != 25.0 {
		t.Fatalf("expected avg area 25.0, got %.1f", report.Metrics.AvgComponentArea)
	}
}

func TestScore_BlankPageFails(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 100, 100))

	report, err := quality.Score(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Status != quality.StatusFail {
		t.Fatalf("expected fail for blank page, got %s", report.Status)
	}
	if report.Score != 0 {
		t.Fatalf("expected score 0 for blank page, got %.2f", report.Score)
	}
	if report.Metrics.ComponentCount != 0 {
		t.Fatalf("expected 0 components, got %d", report.Metrics.ComponentCount)
	}
}

func TestScore_OverInkedPageWarns(t *testing.T) {
	// 80 blobs of 15x15 cover 45% of the page: too much foreground, but
	// component count, area, and sharpness are all healthy.
	img := blobPage(200, 200, 80, 15, 20)

	report, err := quality.Score(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if report.Status != quality.StatusWarn {
		t.Fatalf("expected warn, got %s (score %.2f, metrics %+v)",
			report.Status, report.Score, report.Metrics)
	}
}

func TestScore_Deterministic(t *testing.T) {
	img := blobPage(200, 200, 40, 5, 10)

	first, err := quality.Score(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := quality.Score(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("scoring is not deterministic: %+v vs %+v", first, second)
	}
}

func TestScore_DiagonalPixelsAreOneComponent(t *testing.T) {
	// 8-connectivity: a diagonal chain counts as a single component.
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	for i := 0; i < 10; i++ {
		img.SetGray(i, i, color.Gray{Y: 255})
	}

	report, err := quality.Score(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.Metrics.ComponentCount != 1 {
		t.Fatalf("expected 1 component, got %d", report.Metrics.ComponentCount)
	}
	if report.Metrics.AvgComponentArea != 10.0 {
		t.Fatalf("expected avg area 10.0, got %.1f", report.Metrics.AvgComponentArea)
	}
}

func TestScore_RejectsInvalidImage(t *testing.T) {
	if _, err := quality.Score(nil); err == nil {
		t.Fatal("expected error for nil image")
	}
	if _, err := quality.Score(image.NewGray(image.Rect(0, 0, 0, 0))); err == nil {
		t.Fatal("expected error for empty image")
	}
}
