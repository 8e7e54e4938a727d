package hwocr

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/Abraxas-365/inkwell/pkg/errx"
)

const (
	DefaultBaseURL = "https://www.handwritingocr.com/api/v3"
	DefaultTimeout = 60 * time.Second
)

// HTTPClient handles all HTTP communication with the HandwritingOCR API
type HTTPClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client for the HandwritingOCR API
func NewHTTPClient(apiKey, baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: DefaultTimeout,
		}
	}

	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &HTTPClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// response is a raw API reply; callers interpret the status code themselves
// since the document endpoints use codes beyond the 2xx range to signal
// state (202 means the result is still being produced).
type response struct {
	StatusCode int
	Body       []byte
}

// PostFile uploads a file as multipart form data to the given endpoint.
// fields are sent as plain form values alongside the file part.
func (c *HTTPClient) PostFile(ctx context.Context, endpoint, filePath string, fields map[string]string) (*response, *errx.Error) {
	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errorRegistry.NewWithCause(ErrFileNotFound, err).
				WithDetail("path", filePath)
		}
		return nil, errorRegistry.NewWithCause(ErrFileUnreadable, err).
			WithDetail("path", filePath)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	go func() {
		part, err := writer.CreateFormFile("file", filepath.Base(filePath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, file); err != nil {
			pw.CloseWithError(err)
			return
		}
		for k, v := range fields {
			if err := writer.WriteField(k, v); err != nil {
				pw.CloseWithError(err)
				return
			}
		}
		pw.CloseWithError(writer.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, pr)
	if err != nil {
		return nil, WrapError(err, ErrAPIRequest).
			WithDetail("error", "failed to create HTTP request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	return c.do(req)
}

// Get makes a GET request to the given endpoint
func (c *HTTPClient) Get(ctx context.Context, endpoint string) (*response, *errx.Error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, WrapError(err, ErrAPIRequest).
			WithDetail("error", "failed to create HTTP request")
	}

	return c.do(req)
}

func (c *HTTPClient) do(req *http.Request) (*response, *errx.Error) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "inkwell/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, WrapError(err, ErrAPIRequest).
			WithDetail("error", "HTTP request failed").
			WithDetail("url", req.URL.String())
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, WrapError(err, ErrAPIResponse).
			WithDetail("error", "failed to read response body")
	}

	return &response{StatusCode: resp.StatusCode, Body: body}, nil
}
