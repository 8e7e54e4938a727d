package preprocess

import (
	"image"
	"image/color"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

// Grayscale converts an arbitrary raster page to single-channel grayscale.
// An image that is already grayscale is returned unchanged, so the
// conversion is idempotent.
func Grayscale(img image.Image) (*image.Gray, *errx.Error) {
	if img == nil {
		return nil, preErrors.New(ErrNilImage).WithDetail("stage", "grayscale")
	}

	if gray, ok := img.(*image.Gray); ok {
		return gray, nil
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, preErrors.New(ErrEmptyImage).WithDetail("stage", "grayscale")
	}

	gray := image.NewGray(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()

			// ITU-R BT.601 luma, same weighting the stdlib GrayModel uses.
			lum := (19595*r + 38470*g + 7471*b + 1<<15) >> 24
			gray.SetGray(x, y, color.Gray{Y: uint8(lum)})
		}
	}

	return gray, nil
}
