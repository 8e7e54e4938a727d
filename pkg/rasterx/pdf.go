package rasterx

import (
	"image"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfPages extracts one raster image per PDF page. Scanned documents carry
// each page as a single full-page image XObject; the largest image on the
// page is taken as the page bitmap. Pages without any raster content are
// skipped.
func (r *DocumentRasterizer) pdfPages(path string) ([]image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rasterErrors.NewWithCause(ErrUnreadable, err).WithDetail("path", path)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, rasterErrors.NewWithCause(ErrUnreadable, err).
			WithDetail("path", path).
			WithDetail("stage", "pdfcpu read")
	}

	var pages []image.Image

	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		img, ok := extractPageImage(pdfCtx, pageNr)
		if !ok {
			continue
		}
		pages = append(pages, img)
	}

	return pages, nil
}

// extractPageImage returns the largest decodable image on the page.
func extractPageImage(pdfCtx *model.Context, pageNr int) (image.Image, bool) {
	imgs, err := pdfcpu.ExtractPageImages(pdfCtx, pageNr, false)
	if err != nil {
		return nil, false
	}

	var best image.Image
	bestArea := 0

	for _, pdfImg := range imgs {
		if pdfImg.Reader == nil {
			continue
		}
		decoded, _, err := image.Decode(pdfImg)
		if err != nil {
			continue
		}
		b := decoded.Bounds()
		if area := b.Dx() * b.Dy(); area > bestArea {
			best = decoded
			bestArea = area
		}
	}

	return best, best != nil
}
