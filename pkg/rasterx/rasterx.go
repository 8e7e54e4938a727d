// Package rasterx turns a source document into an ordered sequence of page
// images. Single-image files become a one-page sequence; PDFs yield one image
// per page.
package rasterx

import (
	"bytes"
	"context"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Register decoders for the supported raster formats.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/tiff"
)

// Rasterizer converts a document file into page images
type Rasterizer interface {
	Pages(ctx context.Context, path string) ([]image.Image, error)
}

// DocumentRasterizer is the default Rasterizer for local files.
// PDF pages are resolved through pdfcpu; plain raster files are decoded
// directly.
type DocumentRasterizer struct{}

// NewDocumentRasterizer creates a DocumentRasterizer
func NewDocumentRasterizer() *DocumentRasterizer {
	return &DocumentRasterizer{}
}

// Pages loads path into one image per page. A missing file and a corrupt
// file fail with distinguishable errors.
func (r *DocumentRasterizer) Pages(ctx context.Context, path string) ([]image.Image, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, rasterErrors.New(ErrFileNotFound).WithDetail("path", path)
		}
		return nil, rasterErrors.NewWithCause(ErrUnreadable, err).WithDetail("path", path)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf":
		return r.pdfPages(path)
	case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
		return r.imagePage(path)
	default:
		return nil, rasterErrors.New(ErrUnsupportedFormat).WithDetail("extension", ext)
	}
}

func (r *DocumentRasterizer) imagePage(path string) ([]image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, rasterErrors.NewWithCause(ErrUnreadable, err).WithDetail("path", path)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, rasterErrors.NewWithCause(ErrUnreadable, err).WithDetail("path", path)
	}

	return []image.Image{img}, nil
}
