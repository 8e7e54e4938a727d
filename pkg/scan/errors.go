package scan

import (
	"net/http"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

var scanErrors = errx.NewRegistry("SCAN")

var (
	// ErrNoPages indicates the document produced no page images
	ErrNoPages = scanErrors.Register(
		"NO_PAGES",
		errx.TypeBusiness,
		http.StatusUnprocessableEntity,
		"Document contains no page images",
	)

	// ErrEmptyProfiles indicates a retrier configured without profiles
	ErrEmptyProfiles = scanErrors.Register(
		"EMPTY_PROFILES",
		errx.TypeValidation,
		http.StatusBadRequest,
		"At least one preprocessing profile is required",
	)

	// ErrPageRejected indicates a page failed the quality gate under every
	// profile; the document is not submitted
	ErrPageRejected = scanErrors.Register(
		"PAGE_REJECTED",
		errx.TypeBusiness,
		http.StatusUnprocessableEntity,
		"Page quality is below the acceptance threshold",
	)

	// ErrPollTimeout indicates the status poll ran out of attempts while
	// the job was still pending
	ErrPollTimeout = scanErrors.Register(
		"POLL_TIMEOUT",
		errx.TypeTimeout,
		http.StatusGatewayTimeout,
		"OCR job did not complete within the polling window",
	)

	// ErrJobFailed indicates the provider reported the job as failed
	ErrJobFailed = scanErrors.Register(
		"JOB_FAILED",
		errx.TypeExternal,
		http.StatusBadGateway,
		"OCR provider reported the job as failed",
	)
)
