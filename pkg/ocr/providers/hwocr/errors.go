package hwocr

import (
	"encoding/json"
	"net/http"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

var (
	// Error registry for the HandwritingOCR provider
	errorRegistry = errx.NewRegistry("HWOCR")

	// API Errors
	ErrAPIRequest = errorRegistry.Register(
		"API_REQUEST_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Failed to make request to HandwritingOCR API",
	)

	ErrAPIResponse = errorRegistry.Register(
		"API_RESPONSE_INVALID",
		errx.TypeExternal,
		http.StatusBadGateway,
		"Invalid response from HandwritingOCR API",
	)

	ErrAPIUnauthorized = errorRegistry.Register(
		"API_UNAUTHORIZED",
		errx.TypeExternal,
		http.StatusUnauthorized,
		"Invalid or missing API key",
	)

	ErrAPIRateLimit = errorRegistry.Register(
		"API_RATE_LIMIT",
		errx.TypeExternal,
		http.StatusTooManyRequests,
		"HandwritingOCR API rate limit exceeded",
	)

	ErrUnexpectedStatus = errorRegistry.Register(
		"UNEXPECTED_STATUS",
		errx.TypeExternal,
		http.StatusBadGateway,
		"HandwritingOCR API returned an unexpected status code",
	)

	ErrResultNotReady = errorRegistry.Register(
		"RESULT_NOT_READY",
		errx.TypeExternal,
		http.StatusBadGateway,
		"HandwritingOCR result is not ready yet",
	)

	// Input Errors
	ErrFileNotFound = errorRegistry.Register(
		"FILE_NOT_FOUND",
		errx.TypeNotFound,
		http.StatusNotFound,
		"Document file does not exist",
	)

	ErrFileUnreadable = errorRegistry.Register(
		"FILE_UNREADABLE",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Document file could not be read",
	)

	// Configuration Errors
	ErrMissingAPIKey = errorRegistry.Register(
		"MISSING_API_KEY",
		errx.TypeValidation,
		http.StatusBadRequest,
		"Missing HandwritingOCR API key",
	)
)

// ParseAPIError maps a non-success HandwritingOCR response to an error,
// preserving the upstream status code and body for diagnosis.
func ParseAPIError(statusCode int, body []byte) *errx.Error {
	message := ""

	var errResp struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil {
		if errResp.Message != "" {
			message = errResp.Message
		} else if errResp.Error != "" {
			message = errResp.Error
		}
	}
	if message == "" {
		message = string(body)
	}

	var baseErr *errx.ErrorCode
	switch statusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		baseErr = ErrAPIUnauthorized
	case http.StatusTooManyRequests:
		baseErr = ErrAPIRateLimit
	default:
		baseErr = ErrUnexpectedStatus
	}

	return errorRegistry.NewWithMessage(baseErr, message).
		WithDetail("status_code", statusCode).
		WithDetail("body", string(body))
}

// WrapError wraps a standard error with the given HandwritingOCR error code,
// passing through errors that already carry a code.
func WrapError(err error, code *errx.ErrorCode) *errx.Error {
	if err == nil {
		return nil
	}

	var customErr *errx.Error
	if errx.As(err, &customErr) {
		return customErr
	}

	return errorRegistry.NewWithCause(code, err)
}
