package config

import (
	"os"
	"strconv"
	"time"
)

// Config aggregates all application configuration, loaded once at startup.
type Config struct {
	Server ServerConfig
	Scan   ScanConfig
	OCR    OCRConfig
}

// Load reads all configuration from the environment.
func Load() *Config {
	return &Config{
		Server: loadServerConfig(),
		Scan:   loadScanConfig(),
		OCR:    loadOCRConfig(),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
