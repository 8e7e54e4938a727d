// Package preprocess implements the image pipeline that turns an arbitrary
// scanned page into a clean binary image ready for quality scoring and OCR
// submission. Stages run in a fixed order: grayscale, median denoise, CLAHE
// contrast, adaptive binarization, deskew, resize.
package preprocess

import (
	"image"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

// Apply runs the full pipeline on a raw page image under the given profile.
// The profile is validated up front so configuration errors surface before
// any pixel work. The result is a binary image with ink=255, background=0,
// at the profile's target width.
func Apply(img image.Image, profile Profile) (*image.Gray, *errx.Error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}

	gray, err := Grayscale(img)
	if err != nil {
		return nil, err
	}

	denoised, err := MedianDenoise(gray, profile.DenoiseKernelSize)
	if err != nil {
		return nil, err
	}

	contrasted, err := EnhanceContrast(denoised, profile.CLAHEClipLimit, profile.CLAHETileGrid)
	if err != nil {
		return nil, err
	}

	binary, err := AdaptiveThreshold(contrasted, profile.ThresholdBlockSize, profile.ThresholdConstant)
	if err != nil {
		return nil, err
	}

	deskewed, err := Deskew(binary)
	if err != nil {
		return nil, err
	}

	return ResizeToWidth(deskewed, profile.TargetWidth)
}
