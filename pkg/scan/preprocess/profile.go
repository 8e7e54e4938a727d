package preprocess

import "github.com/Abraxas-365/inkwell/pkg/errx"

// A4 at roughly 300 DPI.
const DefaultTargetWidth = 2480

// Profile is an immutable named parameter set for one pipeline run.
// Profiles are defined once at process start and tried in list order.
type Profile struct {
	Name string

	// DenoiseKernelSize is the median blur kernel size. Odd, >= 3.
	DenoiseKernelSize int

	// CLAHEClipLimit bounds per-tile contrast amplification.
	CLAHEClipLimit float64

	// CLAHETileGrid is the number of histogram tiles per axis.
	CLAHETileGrid int

	// ThresholdBlockSize is the adaptive threshold neighborhood. Odd, >= 11.
	ThresholdBlockSize int

	// ThresholdConstant is subtracted from the local weighted mean.
	ThresholdConstant float64

	// TargetWidth is the canonical OCR width pages are scaled to.
	TargetWidth int
}

// Validate checks all numeric parameters. Called before any pixel work so a
// misconfigured profile never partially processes an image.
func (p Profile) Validate() *errx.Error {
	if p.DenoiseKernelSize < 3 || p.DenoiseKernelSize%2 == 0 {
		return preErrors.New(ErrBadKernelSize).
			WithDetail("profile", p.Name).
			WithDetail("kernel_size", p.DenoiseKernelSize)
	}
	if p.CLAHEClipLimit <= 0 {
		return preErrors.New(ErrBadClipLimit).
			WithDetail("profile", p.Name).
			WithDetail("clip_limit", p.CLAHEClipLimit)
	}
	if p.CLAHETileGrid < 1 {
		return preErrors.New(ErrBadTileGrid).
			WithDetail("profile", p.Name).
			WithDetail("tile_grid", p.CLAHETileGrid)
	}
	if p.ThresholdBlockSize < 11 || p.ThresholdBlockSize%2 == 0 {
		return preErrors.New(ErrBadBlockSize).
			WithDetail("profile", p.Name).
			WithDetail("block_size", p.ThresholdBlockSize)
	}
	if p.TargetWidth < 1 {
		return preErrors.New(ErrBadTargetWidth).
			WithDetail("profile", p.Name).
			WithDetail("target_width", p.TargetWidth)
	}
	return nil
}

// DefaultProfiles returns the built-in retry ladder. Order is retry order:
// the first profile is tried first, the last is the fallback.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name:               "default",
			DenoiseKernelSize:  3,
			CLAHEClipLimit:     2.0,
			CLAHETileGrid:      8,
			ThresholdBlockSize: 11,
			ThresholdConstant:  2,
			TargetWidth:        DefaultTargetWidth,
		},
		{
			Name:               "aggressive-contrast",
			DenoiseKernelSize:  3,
			CLAHEClipLimit:     3.0,
			CLAHETileGrid:      8,
			ThresholdBlockSize: 11,
			ThresholdConstant:  1,
			TargetWidth:        DefaultTargetWidth,
		},
		{
			Name:               "strong-denoise",
			DenoiseKernelSize:  5,
			CLAHEClipLimit:     2.5,
			CLAHETileGrid:      8,
			ThresholdBlockSize: 11,
			ThresholdConstant:  3,
			TargetWidth:        DefaultTargetWidth,
		},
	}
}
