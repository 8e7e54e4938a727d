// Package ocr defines the canonical model for external transcription
// providers: the job lifecycle (submit, poll, fetch), capability-tagged
// provider records, and the normalized page/field/table result shape.
package ocr

import (
	"context"
	"encoding/json"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

// Action selects what the provider should do with a document.
type Action string

const (
	ActionTranscribe Action = "transcribe"
	ActionTables     Action = "tables"
	ActionExtractor  Action = "extractor"
)

// Capabilities is a provider's feature record. Requested actions are checked
// against it before submission so unsupported work fails fast.
type Capabilities struct {
	SupportsHandwriting bool
	SupportsTables      bool
	SupportsExtractors  bool
	SupportsWebhooks    bool
	SupportsAsync       bool
}

// Allows reports whether the capability record covers the given action.
func (c Capabilities) Allows(action Action) bool {
	switch action {
	case ActionTranscribe:
		return c.SupportsHandwriting
	case ActionTables:
		return c.SupportsTables
	case ActionExtractor:
		return c.SupportsExtractors
	default:
		return false
	}
}

// Request describes one OCR submission.
type Request struct {
	// Action selects the provider operation.
	Action Action

	// ExtractorID names a provider-side extractor. Required iff
	// Action == ActionExtractor.
	ExtractorID string

	// WebhookURL, when set, asks the provider to call back on completion.
	WebhookURL string

	// Options carries free-form provider-specific form fields.
	Options map[string]string
}

// Validate checks the request before any I/O happens.
func (r Request) Validate() *errx.Error {
	switch r.Action {
	case ActionTranscribe, ActionTables, ActionExtractor:
	default:
		return ocrErrors.New(ErrUnknownAction).WithDetail("action", string(r.Action))
	}

	if r.Action == ActionExtractor && r.ExtractorID == "" {
		return ocrErrors.New(ErrExtractorIDRequired)
	}

	return nil
}

// Job identifies one submitted document. Immutable after creation.
type Job struct {
	// ID is the locally generated unique identifier.
	ID string `json:"job_id"`

	// Provider is the provider name the job was submitted to.
	Provider string `json:"provider"`

	// ProviderJobID is the provider-assigned identifier.
	ProviderJobID string `json:"provider_job_id"`
}

// Status is the provider-reported job state. It is always re-queried, never
// cached or transitioned locally.
type Status string

const (
	StatusQueued     Status = "queued"
	StatusProcessing Status = "processing"
	StatusProcessed  Status = "processed"
	StatusFailed     Status = "failed"
)

// PageResult is the canonical per-page shape every provider payload is
// normalized into.
type PageResult struct {
	// PageNumber is 1-based.
	PageNumber int `json:"page_number"`

	// Text is the page transcript, when present.
	Text string `json:"text,omitempty"`

	// Tables pass through from the provider payload unchanged.
	Tables []interface{} `json:"tables"`

	// Fields maps extracted keys to values. Keys are unique.
	Fields map[string]interface{} `json:"fields"`

	// Confidence is optional; nil when the provider reports none.
	Confidence *float64 `json:"confidence,omitempty"`
}

// Result is the terminal artifact of a document flow. Immutable once built.
type Result struct {
	JobID string       `json:"job_id"`
	Pages []PageResult `json:"pages"`

	// Raw retains the provider payload for audit.
	Raw map[string]interface{} `json:"-"`
}

// Provider is the external OCR service contract: a fixed submit, poll,
// fetch lifecycle.
type Provider interface {
	// Name returns the registry key for this provider.
	Name() string

	// Capabilities returns the provider's feature record.
	Capabilities() Capabilities

	// Submit uploads the document and queues it for processing.
	Submit(ctx context.Context, documentPath string, req Request) (Job, error)

	// GetStatus re-queries the provider for the current job state.
	GetStatus(ctx context.Context, job Job) (Status, error)

	// FetchResult retrieves the raw, provider-shaped result payload.
	FetchResult(ctx context.Context, job Job) (json.RawMessage, error)
}
