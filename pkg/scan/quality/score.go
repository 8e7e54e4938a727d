// Package quality scores preprocessed binary pages against a heuristic
// legibility rubric. The thresholds below are empirical and tunable; a
// passing score is a gate decision, not ground truth about the page.
package quality

import (
	"image"
	"math"
	"net/http"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

var qualityErrors = errx.NewRegistry("QUALITY")

// ErrInvalidImage indicates the scorer received a nil or empty image
var ErrInvalidImage = qualityErrors.Register(
	"INVALID_IMAGE",
	errx.TypeValidation,
	http.StatusBadRequest,
	"Invalid binary image",
)

// Status classifies a composite score.
type Status string

const (
	StatusPass Status = "pass"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Healthy ranges per metric. Each contributes a binary sub-score.
const (
	foregroundRatioMin = 0.02
	foregroundRatioMax = 0.35
	componentCountMin  = 30
	componentAreaMin   = 15.0
	laplacianVarMin    = 50.0
)

// Sub-score weights. Must sum to 1.
const (
	weightForeground = 0.35
	weightComponents = 0.25
	weightArea       = 0.20
	weightBlur       = 0.20
)

// Classification cutoffs over the composite score.
const (
	passThreshold = 0.75
	warnThreshold = 0.45
)

// Metrics holds the raw measurements behind a score, rounded for display.
type Metrics struct {
	ForegroundRatio   float64 `json:"foreground_ratio"`
	ComponentCount    int     `json:"component_count"`
	AvgComponentArea  float64 `json:"avg_component_area"`
	LaplacianVariance float64 `json:"laplacian_variance"`
}

// Report is the outcome of scoring one processed page. It is created fresh
// per attempt and never mutated.
type Report struct {
	Score   float64 `json:"score"`
	Status  Status  `json:"status"`
	Metrics Metrics `json:"metrics"`
}

// Score computes the weighted composite quality score of a binary image
// (ink=255, background=0) and classifies it pass/warn/fail. Scoring is
// deterministic: the same image always yields the same report.
func Score(img *image.Gray) (Report, *errx.Error) {
	if img == nil || img.Bounds().Empty() {
		return Report{}, qualityErrors.New(ErrInvalidImage)
	}

	bounds := img.Bounds()
	totalPixels := bounds.Dx() * bounds.Dy()

	foreground := countForeground(img)
	foregroundRatio := float64(foreground) / float64(totalPixels)

	componentCount, avgComponentArea := connectedComponents(img)

	laplacianVar := laplacianVariance(img)

	fgScore := 0.0
	if foregroundRatio >= foregroundRatioMin && foregroundRatio <= foregroundRatioMax {
		fgScore = 1.0
	}
	ccScore := 0.0
	if componentCount >= componentCountMin {
		ccScore = 1.0
	}
	areaScore := 0.0
	if avgComponentArea >= componentAreaMin {
		areaScore = 1.0
	}
	blurScore := 0.0
	if laplacianVar >= laplacianVarMin {
		blurScore = 1.0
	}

	score := weightForeground*fgScore + weightComponents*ccScore + weightArea*areaScore + weightBlur*blurScore

	// Classify on the unrounded composite; round only for display.
	var status Status
	switch {
	case score >= passThreshold:
		status = StatusPass
	case score >= warnThreshold:
		status = StatusWarn
	default:
		status = StatusFail
	}

	return Report{
		Score:  roundTo(score, 2),
		Status: status,
		Metrics: Metrics{
			ForegroundRatio:   roundTo(foregroundRatio, 3),
			ComponentCount:    componentCount,
			AvgComponentArea:  roundTo(avgComponentArea, 1),
			LaplacianVariance: roundTo(laplacianVar, 1),
		},
	}, nil
}

func countForeground(img *image.Gray) int {
	bounds := img.Bounds()
	count := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.GrayAt(x, y).Y > 0 {
				count++
			}
		}
	}
	return count
}

// laplacianVariance measures sharpness as the variance of the 3x3 Laplacian
// response, with edge replication at the borders. Blurred strokes flatten
// the response and drive the variance down.
func laplacianVariance(img *image.Gray) float64 {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	at := func(x, y int) float64 {
		if x < 0 {
			x = 0
		} else if x >= w {
			x = w - 1
		}
		if y < 0 {
			y = 0
		} else if y >= h {
			y = h - 1
		}
		return float64(img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y)
	}

	n := float64(w * h)
	var sum, sumSq float64

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := at(x-1, y) + at(x+1, y) + at(x, y-1) + at(x, y+1) - 4*at(x, y)
			sum += v
			sumSq += v * v
		}
	}

	mean := sum / n
	return sumSq/n - mean*mean
}

func roundTo(v float64, digits int) float64 {
	scale := math.Pow(10, float64(digits))
	return math.Round(v*scale) / scale
}
