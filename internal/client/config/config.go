// Package config loads runtime settings for the Shelf CLI.
//
// Sources are applied in order, later ones winning:
// defaults -> environment (.env / SHELF_* vars) -> JSON file -> flags.
package config

import "time"

// Config holds runtime settings for the Shelf CLI.
//
// Fields:
//   - ServerBaseURL: origin of the Shelf API, e.g. "http://localhost:8000/api".
//   - StateDir: directory holding the persisted session and the metadata cache.
//   - PaymentPollInterval: delay between payment status checks.
type Config struct {
	ServerBaseURL       string
	StateDir            string
	PaymentPollInterval time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8000/api"
	c.StateDir = ".shelf"
	c.PaymentPollInterval = 3 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, a JSON file (if given) and command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
