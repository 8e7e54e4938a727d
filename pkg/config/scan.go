package config

import "time"

// ScanConfig configures the document processing flow.
type ScanConfig struct {
	// WorkDir is the base directory for per-document scratch space.
	WorkDir string

	// PollInterval is the delay between OCR job status checks.
	PollInterval time.Duration

	// MaxPollAttempts bounds the status polling loop.
	MaxPollAttempts int
}

func loadScanConfig() ScanConfig {
	return ScanConfig{
		WorkDir:         getEnv("SCAN_WORK_DIR", "/tmp/inkwell"),
		PollInterval:    getEnvDuration("SCAN_POLL_INTERVAL", 2*time.Second),
		MaxPollAttempts: getEnvInt("SCAN_MAX_POLL_ATTEMPTS", 60),
	}
}
