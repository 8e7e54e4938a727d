package scanapi

import (
	"net/http"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

var apiErrors = errx.NewRegistry("SCANAPI")

var (
	// ErrMissingFile indicates a request without a document part
	ErrMissingFile = apiErrors.Register(
		"MISSING_FILE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Request is missing the document file",
	)

	// ErrEmptyFilename indicates an upload with no filename
	ErrEmptyFilename = apiErrors.Register(
		"EMPTY_FILENAME",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Uploaded file has no filename",
	)

	// ErrUnsupportedExtension indicates an upload outside the allow-list
	ErrUnsupportedExtension = apiErrors.Register(
		"UNSUPPORTED_EXTENSION",
		errx.TypeValidation,
		http.StatusUnsupportedMediaType,
		"Uploaded file type is not supported",
	)
)
