package preprocess

import (
	"image"
	"math"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

// AdaptiveThreshold binarizes a grayscale image into ink=255, background=0.
// Each pixel is compared against a Gaussian-weighted mean of its blockSize
// neighborhood minus c: pixels at or below the local threshold (ink) become
// 255, brighter pixels (paper) become 0. A single global threshold would
// fail on unevenly lit scans; the local mean tracks the page illumination.
func AdaptiveThreshold(img *image.Gray, blockSize int, c float64) (*image.Gray, *errx.Error) {
	if err := requireGray(img, "threshold"); err != nil {
		return nil, err
	}
	if blockSize < 11 || blockSize%2 == 0 {
		return nil, preErrors.New(ErrBadBlockSize).WithDetail("block_size", blockSize)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	kernel := gaussianKernel(blockSize)
	radius := blockSize / 2

	// Separable convolution with edge replication: horizontal pass, then
	// vertical pass over the intermediate buffer.
	horiz := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sum float64
			for k := -radius; k <= radius; k++ {
				sx := clampInt(x+k, 0, w-1)
				sum += kernel[k+radius] * float64(img.GrayAt(bounds.Min.X+sx, bounds.Min.Y+y).Y)
			}
			horiz[y*w+x] = sum
		}
	}

	out := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var mean float64
			for k := -radius; k <= radius; k++ {
				sy := clampInt(y+k, 0, h-1)
				mean += kernel[k+radius] * horiz[sy*w+x]
			}

			threshold := mean - c
			if float64(img.GrayAt(bounds.Min.X+x, bounds.Min.Y+y).Y) <= threshold {
				out.Pix[y*out.Stride+x] = 255
			}
		}
	}

	return out, nil
}

// gaussianKernel builds a normalized 1-D Gaussian of the given odd length,
// with sigma derived from the kernel size the same way OpenCV does for its
// adaptive threshold.
func gaussianKernel(ksize int) []float64 {
	sigma := 0.3*(float64(ksize-1)*0.5-1) + 0.8

	kernel := make([]float64, ksize)
	radius := ksize / 2
	var sum float64

	for i := 0; i < ksize; i++ {
		d := float64(i - radius)
		kernel[i] = math.Exp(-d * d / (2 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	return kernel
}
