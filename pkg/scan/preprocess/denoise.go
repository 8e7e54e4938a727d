package preprocess

import (
	"image"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

// MedianDenoise applies a median filter to remove scan noise while keeping
// stroke edges intact. Border pixels use edge replication.
func MedianDenoise(img *image.Gray, ksize int) (*image.Gray, *errx.Error) {
	if err := requireGray(img, "denoise"); err != nil {
		return nil, err
	}
	if ksize < 3 || ksize%2 == 0 {
		return nil, preErrors.New(ErrBadKernelSize).WithDetail("kernel_size", ksize)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	out := image.NewGray(image.Rect(0, 0, w, h))

	radius := ksize / 2
	window := ksize * ksize
	// The (window/2 + 1)-th smallest value; window is odd.
	medianRank := window/2 + 1

	var hist [256]int

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for i := range hist {
				hist[i] = 0
			}

			for dy := -radius; dy <= radius; dy++ {
				sy := clampInt(y+dy, 0, h-1)
				for dx := -radius; dx <= radius; dx++ {
					sx := clampInt(x+dx, 0, w-1)
					hist[img.GrayAt(bounds.Min.X+sx, bounds.Min.Y+sy).Y]++
				}
			}

			seen := 0
			for v := 0; v < 256; v++ {
				seen += hist[v]
				if seen >= medianRank {
					out.Pix[y*out.Stride+x] = uint8(v)
					break
				}
			}
		}
	}

	return out, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
