package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with environment variables. A .env file in the
// working directory is loaded first (missing file is fine); real environment
// variables win over .env entries, which is godotenv's default behavior.
//
// Recognized variables:
//
//	SHELF_API_URL        base URL of the Shelf API
//	SHELF_STATE_DIR      state directory
//	SHELF_POLL_INTERVAL  payment poll interval in seconds
func parseEnv(cfg *Config) {
	_ = godotenv.Load()

	if v := os.Getenv("SHELF_API_URL"); v != "" {
		cfg.ServerBaseURL = v
	}
	if v := os.Getenv("SHELF_STATE_DIR"); v != "" {
		cfg.StateDir = v
	}
	if v := os.Getenv("SHELF_POLL_INTERVAL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.PaymentPollInterval = time.Duration(secs) * time.Second
		}
	}
}
