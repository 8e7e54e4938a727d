// Package hwocr implements the OCR provider contract against the
// HandwritingOCR v3 REST API. Documents are uploaded as multipart form
// data, then polled by provider document id until the result JSON is
// available.
package hwocr

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/Abraxas-365/inkwell/pkg/errx"
	"github.com/Abraxas-365/inkwell/pkg/logx"
	"github.com/Abraxas-365/inkwell/pkg/ocr"
)

const ProviderName = "handwritingocr"

// Provider is the HandwritingOCR implementation of ocr.Provider
type Provider struct {
	client *HTTPClient
}

// Option configures the provider
type Option func(*options)

type options struct {
	baseURL    string
	httpClient *http.Client
}

// WithBaseURL overrides the API base URL
func WithBaseURL(url string) Option {
	return func(o *options) {
		o.baseURL = url
	}
}

// WithHTTPClient supplies a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// New creates a HandwritingOCR provider. The API key is required.
func New(apiKey string, opts ...Option) (*Provider, *errx.Error) {
	if apiKey == "" {
		return nil, errorRegistry.New(ErrMissingAPIKey)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	return &Provider{
		client: NewHTTPClient(apiKey, o.baseURL, o.httpClient),
	}, nil
}

// Name returns the registry key for this provider
func (p *Provider) Name() string {
	return ProviderName
}

// Capabilities returns the provider's feature record
func (p *Provider) Capabilities() ocr.Capabilities {
	return ocr.Capabilities{
		SupportsHandwriting: true,
		SupportsTables:      true,
		SupportsExtractors:  true,
		SupportsWebhooks:    true,
		SupportsAsync:       true,
	}
}

// Submit uploads the document and queues it for processing. The returned
// job carries both a locally generated id and the provider's document id.
func (p *Provider) Submit(ctx context.Context, documentPath string, req ocr.Request) (ocr.Job, error) {
	if err := req.Validate(); err != nil {
		return ocr.Job{}, err
	}

	fields := map[string]string{
		"action": string(req.Action),
	}
	if req.ExtractorID != "" {
		fields["extractor_id"] = req.ExtractorID
	}
	if req.WebhookURL != "" {
		fields["webhook_url"] = req.WebhookURL
	}
	for k, v := range req.Options {
		fields[k] = v
	}

	resp, apiErr := p.client.PostFile(ctx, "/documents", documentPath, fields)
	if apiErr != nil {
		return ocr.Job{}, apiErr
	}

	if resp.StatusCode != http.StatusCreated {
		return ocr.Job{}, ParseAPIError(resp.StatusCode, resp.Body)
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body, &created); err != nil || created.ID == "" {
		return ocr.Job{}, errorRegistry.NewWithMessage(ErrAPIResponse, "submit response has no document id").
			WithDetail("body", string(resp.Body))
	}

	job := ocr.Job{
		ID:            uuid.NewString(),
		Provider:      ProviderName,
		ProviderJobID: created.ID,
	}

	logx.WithFields(logx.Fields{
		"job_id":          job.ID,
		"provider_job_id": job.ProviderJobID,
		"action":          string(req.Action),
	}).Info("document submitted to HandwritingOCR")

	return job, nil
}

// GetStatus re-queries the provider for the current job state
func (p *Provider) GetStatus(ctx context.Context, job ocr.Job) (ocr.Status, error) {
	resp, apiErr := p.client.Get(ctx, "/documents/"+job.ProviderJobID)
	if apiErr != nil {
		return "", apiErr
	}

	if resp.StatusCode != http.StatusOK {
		return "", ParseAPIError(resp.StatusCode, resp.Body)
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body, &status); err != nil {
		return "", errorRegistry.NewWithCause(ErrAPIResponse, err).
			WithDetail("body", string(resp.Body))
	}

	switch status.Status {
	case "processed":
		return ocr.StatusProcessed, nil
	case "failed", "error":
		return ocr.StatusFailed, nil
	case "queued", "new":
		return ocr.StatusQueued, nil
	default:
		return ocr.StatusProcessing, nil
	}
}

// FetchResult retrieves the raw result payload. A 202 from the provider
// means the result is not ready yet and the caller should keep polling.
func (p *Provider) FetchResult(ctx context.Context, job ocr.Job) (json.RawMessage, error) {
	resp, apiErr := p.client.Get(ctx, fmt.Sprintf("/documents/%s.json", job.ProviderJobID))
	if apiErr != nil {
		return nil, apiErr
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return json.RawMessage(resp.Body), nil
	case http.StatusAccepted:
		return nil, errorRegistry.New(ErrResultNotReady).
			WithDetail("provider_job_id", job.ProviderJobID)
	default:
		return nil, ParseAPIError(resp.StatusCode, resp.Body)
	}
}
