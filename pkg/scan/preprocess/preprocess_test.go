package preprocess_test

import (
	"image"
	"image/color"
	"testing"

	"github.com/Abraxas-365/inkwell/pkg/scan/preprocess"
)

func grayImage(w, h int, fill uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = fill
	}
	return img
}

// --- Grayscale tests ---

func TestGrayscale_AlreadyGrayReturnsSameImage(t *testing.T) {
	img := grayImage(10, 10, 128)

	out, err := preprocess.Grayscale(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != img {
		t.Fatal("expected grayscale of a gray image to return the same image")
	}
}

func TestGrayscale_ConvertsColor(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 255, B: 255, A: 255})
	img.Set(1, 0, color.RGBA{A: 255})

	out, err := preprocess.Grayscale(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.GrayAt(0, 0).Y != 255 {
		t.Fatalf("white should map to 255, got %d", out.GrayAt(0, 0).Y)
	}
	if out.GrayAt(1, 0).Y != 0 {
		t.Fatalf("black should map to 0, got %d", out.GrayAt(1, 0).Y)
	}
}

func TestGrayscale_NilImage(t *testing.T) {
	if _, err := preprocess.Grayscale(nil); err == nil {
		t.Fatal("expected error for nil image")
	}
}

// --- Denoise tests ---

func TestMedianDenoise_RemovesIsolatedSpeck(t *testing.T) {
	img := grayImage(9, 9, 0)
	img.SetGray(4, 4, color.Gray{Y: 255})

	out, err := preprocess.MedianDenoise(img, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.GrayAt(4, 4).Y != 0 {
		t.Fatalf("isolated speck should be removed, got %d", out.GrayAt(4, 4).Y)
	}
}

func TestMedianDenoise_PreservesUniformRegion(t *testing.T) {
	img := grayImage(9, 9, 200)

	out, err := preprocess.MedianDenoise(img, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range out.Pix {
		if p != 200 {
			t.Fatalf("uniform region changed at index %d: %d", i, p)
		}
	}
}

func TestMedianDenoise_RejectsEvenKernel(t *testing.T) {
	img := grayImage(9, 9, 0)
	if _, err := preprocess.MedianDenoise(img, 4); err == nil {
		t.Fatal("expected error for even kernel size")
	}
	if _, err := preprocess.MedianDenoise(img, 1); err == nil {
		t.Fatal("expected error for kernel size below minimum")
	}
}

// --- Contrast tests ---

func TestEnhanceContrast_UniformImageStaysUniform(t *testing.T) {
	img := grayImage(64, 64, 100)

	out, err := preprocess.EnhanceContrast(img, 2.0, 8)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first := out.Pix[0]
	for i, p := range out.Pix {
		if p != first {
			t.Fatalf("uniform image should stay uniform, index %d: %d vs %d", i, p, first)
		}
	}
}

func TestEnhanceContrast_SpreadsLowContrast(t *testing.T) {
	// A shallow gradient around mid-gray; equalization should widen it.
	img := image.NewGray(image.Rect(0, 0, 64, 64))
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			img.SetGray(x, y, color.Gray{Y: uint8(100 + x/2)})
		}
	}

	out, err := preprocess.EnhanceContrast(img, 4.0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inMin, inMax := minMax(img.Pix)
	outMin, outMax := minMax(out.Pix)
	if int(outMax)-int(outMin) <= int(inMax)-int(inMin) {
		t.Fatalf("contrast range did not grow: in [%d,%d] out [%d,%d]", inMin, inMax, outMin, outMax)
	}
}

func TestEnhanceContrast_RejectsBadParams(t *testing.T) {
	img := grayImage(16, 16, 0)
	if _, err := preprocess.EnhanceContrast(img, 0, 8); err == nil {
		t.Fatal("expected error for non-positive clip limit")
	}
	if _, err := preprocess.EnhanceContrast(img, 2.0, 0); err == nil {
		t.Fatal("expected error for non-positive tile grid")
	}
}

func minMax(pix []uint8) (uint8, uint8) {
	min, max := pix[0], pix[0]
	for _, p := range pix {
		if p < min {
			min = p
		}
		if p > max {
			max = p
		}
	}
	return min, max
}

// --- Threshold tests ---

func TestAdaptiveThreshold_InkBecomesForeground(t *testing.T) {
	// Dark text stroke on a light page.
	img := grayImage(40, 40, 230)
	for x := 10; x < 30; x++ {
		img.SetGray(x, 20, color.Gray{Y: 20})
	}

	out, err := preprocess.AdaptiveThreshold(img, 11, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.GrayAt(20, 20).Y != 255 {
		t.Fatalf("ink pixel should be foreground 255, got %d", out.GrayAt(20, 20).Y)
	}
	if out.GrayAt(5, 5).Y != 0 {
		t.Fatalf("paper pixel should be background 0, got %d", out.GrayAt(5, 5).Y)
	}
}

func TestAdaptiveThreshold_OutputIsBinary(t *testing.T) {
	img := grayImage(30, 30, 128)
	for x := 0; x < 30; x++ {
		img.SetGray(x, 15, color.Gray{Y: 10})
	}

	out, err := preprocess.AdaptiveThreshold(img, 11, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range out.Pix {
		if p != 0 && p != 255 {
			t.Fatalf("non-binary pixel at index %d: %d", i, p)
		}
	}
}

func TestAdaptiveThreshold_RejectsBadBlockSize(t *testing.T) {
	img := grayImage(30, 30, 128)
	if _, err := preprocess.AdaptiveThreshold(img, 10, 2); err == nil {
		t.Fatal("expected error for even block size")
	}
	if _, err := preprocess.AdaptiveThreshold(img, 9, 2); err == nil {
		t.Fatal("expected error for block size below minimum")
	}
}

// --- Deskew tests ---

func TestDeskew_BlankPageUnchanged(t *testing.T) {
	img := grayImage(50, 50, 0)

	out, err := preprocess.Deskew(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != img {
		t.Fatal("blank page should pass through unchanged")
	}
}

func TestDeskew_AxisAlignedContentUnchanged(t *testing.T) {
	// A straight horizontal bar needs no rotation.
	img := grayImage(60, 60, 0)
	for x := 10; x < 50; x++ {
		for y := 28; y < 32; y++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}

	out, err := preprocess.Deskew(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != img {
		t.Fatal("axis-aligned content should pass through unchanged")
	}
}

func TestDeskew_PreservesDimensions(t *testing.T) {
	img := grayImage(80, 60, 0)
	// A slightly tilted stroke.
	for i := 0; i < 40; i++ {
		img.SetGray(20+i, 25+i/10, color.Gray{Y: 255})
	}

	out, err := preprocess.Deskew(img)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Bounds().Dx() != 80 || out.Bounds().Dy() != 60 {
		t.Fatalf("deskew changed dimensions: %v", out.Bounds())
	}
}

// --- Resize tests ---

func TestResizeToWidth_NoOpReturnsSameImage(t *testing.T) {
	img := grayImage(100, 50, 128)

	out, err := preprocess.ResizeToWidth(img, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != img {
		t.Fatal("resize to same width should return the same image")
	}
}

func TestResizeToWidth_PreservesAspectRatio(t *testing.T) {
	img := grayImage(100, 50, 128)

	out, err := preprocess.ResizeToWidth(img, 200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Bounds().Dx() != 200 {
		t.Fatalf("expected width 200, got %d", out.Bounds().Dx())
	}
	if out.Bounds().Dy() != 100 {
		t.Fatalf("expected height 100, got %d", out.Bounds().Dy())
	}
}

func TestResizeToWidth_RoundsHeight(t *testing.T) {
	img := grayImage(3, 2, 128)

	// 2 * 100 / 3 = 66.67, rounds to 67.
	out, err := preprocess.ResizeToWidth(img, 100)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Bounds().Dy() != 67 {
		t.Fatalf("expected rounded height 67, got %d", out.Bounds().Dy())
	}
}

func TestResizeToWidth_RejectsBadWidth(t *testing.T) {
	img := grayImage(10, 10, 0)
	if _, err := preprocess.ResizeToWidth(img, 0); err == nil {
		t.Fatal("expected error for non-positive target width")
	}
}

// --- Profile tests ---

func TestProfile_DefaultsAreValid(t *testing.T) {
	profiles := preprocess.DefaultProfiles()
	if len(profiles) == 0 {
		t.Fatal("expected at least one default profile")
	}
	for _, p := range profiles {
		if err := p.Validate(); err != nil {
			t.Fatalf("default profile %q invalid: %v", p.Name, err)
		}
	}
}

func TestProfile_ValidateRejectsBadValues(t *testing.T) {
	base := preprocess.DefaultProfiles()[0]

	bad := base
	bad.DenoiseKernelSize = 4
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for even kernel size")
	}

	bad = base
	bad.ThresholdBlockSize = 8
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for even block size")
	}

	bad = base
	bad.CLAHEClipLimit = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for non-positive clip limit")
	}

	bad = base
	bad.TargetWidth = 0
	if err := bad.Validate(); err == nil {
		t.Fatal("expected error for non-positive target width")
	}
}

// --- Pipeline tests ---

func TestApply_ProducesBinaryAtTargetWidth(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 120, 80))
	for i := range img.Pix {
		img.Pix[i] = 220
	}
	for x := 20; x < 100; x++ {
		img.SetGray(x, 40, color.Gray{Y: 15})
	}

	profile := preprocess.DefaultProfiles()[0]
	profile.TargetWidth = 240

	out, err := preprocess.Apply(img, profile)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Bounds().Dx() != 240 {
		t.Fatalf("expected output width 240, got %d", out.Bounds().Dx())
	}
}

func TestApply_RejectsInvalidProfile(t *testing.T) {
	img := grayImage(20, 20, 0)
	profile := preprocess.DefaultProfiles()[0]
	profile.ThresholdBlockSize = 2

	if _, err := preprocess.Apply(img, profile); err == nil {
		t.Fatal("expected error for invalid profile")
	}
}
