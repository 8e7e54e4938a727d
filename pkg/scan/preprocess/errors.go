package preprocess

import (
	"image"
	"net/http"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

var preErrors = errx.NewRegistry("PRE")

var (
	// ErrNilImage indicates a stage received a nil image
	ErrNilImage = preErrors.Register(
		"NIL_IMAGE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Input image is nil",
	)

	// ErrEmptyImage indicates a stage received an image with no pixels
	ErrEmptyImage = preErrors.Register(
		"EMPTY_IMAGE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Input image has empty bounds",
	)

	// ErrBadKernelSize indicates an invalid denoise kernel size
	ErrBadKernelSize = preErrors.Register(
		"BAD_KERNEL_SIZE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Denoise kernel size must be an odd integer >= 3",
	)

	// ErrBadBlockSize indicates an invalid adaptive threshold block size
	ErrBadBlockSize = preErrors.Register(
		"BAD_BLOCK_SIZE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Threshold block size must be an odd integer >= 11",
	)

	// ErrBadClipLimit indicates an invalid CLAHE clip limit
	ErrBadClipLimit = preErrors.Register(
		"BAD_CLIP_LIMIT",
		errx.TypeValidation,
		http.StatusBadRequest,
		"CLAHE clip limit must be > 0",
	)

	// ErrBadTileGrid indicates an invalid CLAHE tile grid size
	ErrBadTileGrid = preErrors.Register(
		"BAD_TILE_GRID",
		errx.TypeValidation,
		http.StatusBadRequest,
		"CLAHE tile grid must be >= 1",
	)

	// ErrBadTargetWidth indicates an invalid resize target width
	ErrBadTargetWidth = preErrors.Register(
		"BAD_TARGET_WIDTH",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Resize target width must be >= 1",
	)
)

// requireGray validates the common stage input contract: a non-nil grayscale
// image with at least one pixel.
func requireGray(img *image.Gray, stage string) *errx.Error {
	if img == nil {
		return preErrors.New(ErrNilImage).WithDetail("stage", stage)
	}
	if img.Bounds().Empty() {
		return preErrors.New(ErrEmptyImage).WithDetail("stage", stage)
	}
	return nil
}
