package rasterx

import (
	"net/http"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

var rasterErrors = errx.NewRegistry("RASTER")

var (
	// ErrFileNotFound indicates the source document does not exist
	ErrFileNotFound = rasterErrors.Register(
		"FILE_NOT_FOUND",
		errx.TypeNotFound,
		http.StatusNotFound,
		"Document file not found",
	)

	// ErrUnreadable indicates the document exists but cannot be decoded
	ErrUnreadable = rasterErrors.Register(
		"UNREADABLE_DOCUMENT",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Document is corrupt or unreadable",
	)

	// ErrUnsupportedFormat indicates the file extension is not handled
	ErrUnsupportedFormat = rasterErrors.Register(
		"UNSUPPORTED_FORMAT",
		errx.TypeValidation,
		http.StatusUnsupportedMediaType,
		"Unsupported document format",
	)
)
