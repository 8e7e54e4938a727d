package ocr

import (
	"net/http"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

var ocrErrors = errx.NewRegistry("OCR")

var (
	// ErrUnknownAction indicates a request with an unrecognized action
	ErrUnknownAction = ocrErrors.Register(
		"UNKNOWN_ACTION",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Unknown OCR action",
	)

	// ErrExtractorIDRequired indicates an extractor action without an id
	ErrExtractorIDRequired = ocrErrors.Register(
		"EXTRACTOR_ID_REQUIRED",
		errx.TypeValidation,
		http.StatusBadRequest,
		"extractor_id is required when action is extractor",
	)

	// ErrUnsupportedAction indicates the selected provider cannot perform
	// the requested action
	ErrUnsupportedAction = ocrErrors.Register(
		"UNSUPPORTED_ACTION",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Selected OCR provider does not support the requested action",
	)

	// ErrUnknownProvider indicates a provider name with no registration
	ErrUnknownProvider = ocrErrors.Register(
		"UNKNOWN_PROVIDER",
		errx.TypeNotFound,
		http.StatusNotFound,
		"No OCR provider registered under that name",
	)

	// ErrInvalidPayload indicates a result payload that is not an object
	ErrInvalidPayload = ocrErrors.Register(
		"INVALID_PAYLOAD",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Provider result payload is not a JSON object",
	)
)
