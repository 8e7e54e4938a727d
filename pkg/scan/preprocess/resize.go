package preprocess

import (
	"image"
	"math"

	"golang.org/x/image/draw"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

// ResizeToWidth scales the image to the canonical OCR width, preserving the
// aspect ratio exactly. An image already at the target width is returned
// unchanged. Upscaling uses Catmull-Rom, downscaling bilinear.
func ResizeToWidth(img *image.Gray, targetWidth int) (*image.Gray, *errx.Error) {
	if err := requireGray(img, "resize"); err != nil {
		return nil, err
	}
	if targetWidth < 1 {
		return nil, preErrors.New(ErrBadTargetWidth).WithDetail("target_width", targetWidth)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w == targetWidth {
		return img, nil
	}

	newHeight := int(math.Round(float64(h) * float64(targetWidth) / float64(w)))
	if newHeight < 1 {
		newHeight = 1
	}

	var scaler draw.Scaler = draw.BiLinear
	if targetWidth > w {
		scaler = draw.CatmullRom
	}

	out := image.NewGray(image.Rect(0, 0, targetWidth, newHeight))
	scaler.Scale(out, out.Bounds(), img, bounds, draw.Src, nil)

	return out, nil
}
