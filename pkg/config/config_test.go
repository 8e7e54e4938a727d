package config_test

import (
	"testing"
	"time"

	"github.com/Abraxas-365/inkwell/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := config.Load()

	if cfg.Scan.WorkDir != "/tmp/inkwell" {
		t.Fatalf("expected default work dir, got %q", cfg.Scan.WorkDir)
	}
	if cfg.Scan.PollInterval != 2*time.Second {
		t.Fatalf("expected default poll interval, got %v", cfg.Scan.PollInterval)
	}
	if cfg.Scan.MaxPollAttempts != 60 {
		t.Fatalf("expected default poll attempts, got %d", cfg.Scan.MaxPollAttempts)
	}
	if cfg.OCR.Provider != "handwritingocr" {
		t.Fatalf("expected default provider, got %q", cfg.OCR.Provider)
	}
	if cfg.OCR.Timeout != 60*time.Second {
		t.Fatalf("expected default HTTP timeout, got %v", cfg.OCR.Timeout)
	}
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("SCAN_WORK_DIR", "/var/scans")
	t.Setenv("SCAN_POLL_INTERVAL", "500ms")
	t.Setenv("SCAN_MAX_POLL_ATTEMPTS", "10")
	t.Setenv("OCR_HTTP_TIMEOUT", "30s")

	cfg := config.Load()

	if cfg.Scan.WorkDir != "/var/scans" {
		t.Fatalf("expected work dir from env, got %q", cfg.Scan.WorkDir)
	}
	if cfg.Scan.PollInterval != 500*time.Millisecond {
		t.Fatalf("expected poll interval from env, got %v", cfg.Scan.PollInterval)
	}
	if cfg.Scan.MaxPollAttempts != 10 {
		t.Fatalf("expected poll attempts from env, got %d", cfg.Scan.MaxPollAttempts)
	}
	if cfg.OCR.Timeout != 30*time.Second {
		t.Fatalf("expected HTTP timeout from env, got %v", cfg.OCR.Timeout)
	}
}
