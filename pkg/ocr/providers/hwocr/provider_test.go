package hwocr_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/Abraxas-365/inkwell/pkg/ocr"
	"github.com/Abraxas-365/inkwell/pkg/ocr/providers/hwocr"
)

func testDocument(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatalf("failed to write test document: %v", err)
	}
	return path
}

func TestNew_RequiresAPIKey(t *testing.T) {
	if _, err := hwocr.New(""); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestSubmit_UploadsDocument(t *testing.T) {
	var gotAuth, gotAction string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/documents" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		gotAction = r.FormValue("action")
		if _, _, err := r.FormFile("file"); err != nil {
			t.Errorf("missing file part: %v", err)
		}

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "doc-123"}`))
	}))
	defer server.Close()

	provider, perr := hwocr.New("secret", hwocr.WithBaseURL(server.URL))
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}

	job, err := provider.Submit(context.Background(), testDocument(t), ocr.Request{Action: ocr.ActionTranscribe})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer secret" {
		t.Fatalf("expected bearer auth, got %q", gotAuth)
	}
	if gotAction != "transcribe" {
		t.Fatalf("expected action form field, got %q", gotAction)
	}
	if job.ProviderJobID != "doc-123" {
		t.Fatalf("expected provider job id doc-123, got %q", job.ProviderJobID)
	}
	if job.ID == "" {
		t.Fatal("expected a locally generated job id")
	}
}

func TestSubmit_ForwardsOptionalFields(t *testing.T) {
	var gotWebhook, gotExtractor, gotLang string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("failed to parse multipart form: %v", err)
		}
		gotWebhook = r.FormValue("webhook_url")
		gotExtractor = r.FormValue("extractor_id")
		gotLang = r.FormValue("language")

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": "doc-123"}`))
	}))
	defer server.Close()

	provider, perr := hwocr.New("secret", hwocr.WithBaseURL(server.URL))
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}

	req := ocr.Request{
		Action:      ocr.ActionExtractor,
		ExtractorID: "x1",
		WebhookURL:  "https://example.com/hook",
		Options:     map[string]string{"language": "en"},
	}
	if _, err := provider.Submit(context.Background(), testDocument(t), req); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotWebhook != "https://example.com/hook" {
		t.Fatalf("expected webhook_url form field, got %q", gotWebhook)
	}
	if gotExtractor != "x1" {
		t.Fatalf("expected extractor_id form field, got %q", gotExtractor)
	}
	if gotLang != "en" {
		t.Fatalf("expected options forwarded as form fields, got %q", gotLang)
	}
}

func TestSubmit_NonCreatedStatusFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "invalid api key"}`))
	}))
	defer server.Close()

	provider, perr := hwocr.New("bad-key", hwocr.WithBaseURL(server.URL))
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}

	if _, err := provider.Submit(context.Background(), testDocument(t), ocr.Request{Action: ocr.ActionTranscribe}); err == nil {
		t.Fatal("expected error for unauthorized submit")
	}
}

func TestSubmit_MissingFile(t *testing.T) {
	provider, perr := hwocr.New("secret")
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}

	_, err := provider.Submit(context.Background(), "/nonexistent/doc.pdf", ocr.Request{Action: ocr.ActionTranscribe})
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestGetStatus_MapsProviderStates(t *testing.T) {
	cases := []struct {
		body string
		want ocr.Status
	}{
		{`{"status": "processed"}`, ocr.StatusProcessed},
		{`{"status": "failed"}`, ocr.StatusFailed},
		{`{"status": "queued"}`, ocr.StatusQueued},
		{`{"status": "new"}`, ocr.StatusQueued},
		{`{"status": "processing"}`, ocr.StatusProcessing},
		{`{"status": "something-new"}`, ocr.StatusProcessing},
	}

	for _, tc := range cases {
		body := tc.body
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/documents/doc-123" {
				t.Errorf("unexpected path: %s", r.URL.Path)
			}
			w.Write([]byte(body))
		}))

		provider, perr := hwocr.New("secret", hwocr.WithBaseURL(server.URL))
		if perr != nil {
			t.Fatalf("unexpected error: %v", perr)
		}

		status, err := provider.GetStatus(context.Background(), ocr.Job{ProviderJobID: "doc-123"})
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tc.body, err)
		}
		if status != tc.want {
			t.Fatalf("body %s: expected %s, got %s", tc.body, tc.want, status)
		}
		server.Close()
	}
}

func TestFetchResult_ReturnsRawPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/documents/doc-123.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"results": [{"transcript": "hi"}]}`))
	}))
	defer server.Close()

	provider, perr := hwocr.New("secret", hwocr.WithBaseURL(server.URL))
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}

	payload, err := provider.FetchResult(context.Background(), ocr.Job{ProviderJobID: "doc-123"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != `{"results": [{"transcript": "hi"}]}` {
		t.Fatalf("payload should pass through untouched, got %s", payload)
	}
}

func TestFetchResult_StillProcessing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	provider, perr := hwocr.New("secret", hwocr.WithBaseURL(server.URL))
	if perr != nil {
		t.Fatalf("unexpected error: %v", perr)
	}

	if _, err := provider.FetchResult(context.Background(), ocr.Job{ProviderJobID: "doc-123"}); err == nil {
		t.Fatal("expected error while result is pending")
	}
}
