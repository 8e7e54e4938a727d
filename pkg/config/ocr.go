package config

import "time"

// OCRConfig configures the external OCR provider.
type OCRConfig struct {
	Provider string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
}

func loadOCRConfig() OCRConfig {
	return OCRConfig{
		Provider: getEnv("OCR_PROVIDER", "handwritingocr"),
		APIKey:   getEnv("HANDWRITING_OCR_API_KEY", ""),
		BaseURL:  getEnv("HANDWRITING_OCR_BASE_URL", ""),
		Timeout:  getEnvDuration("OCR_HTTP_TIMEOUT", 60*time.Second),
	}
}
