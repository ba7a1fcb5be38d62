package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/shelfhq/shelf/internal/flagx"
	"github.com/shelfhq/shelf/internal/timex"
)

// JSONConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so intervals can be given either as strings like "3s" or as
// integer nanoseconds. Parsed values are copied into the runtime Config.
type JSONConfig struct {
	ServerBaseURL       string         `json:"server_base_url"`
	StateDir            string         `json:"state_dir"`
	PaymentPollInterval timex.Duration `json:"payment_poll_interval"`
}

// parseJSON overlays Config with values loaded from the JSON file named by
// the -c/-config flag. When no flag is given, nothing is loaded. Read or
// unmarshal errors panic; config is resolved once at startup and a broken
// file should stop the program immediately.
func parseJSON(cfg *Config) {
	jsonConfigFile := flagx.JSONConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JSONConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.StateDir != "" {
		cfg.StateDir = jc.StateDir
	}
	if jc.PaymentPollInterval.Duration > 0 {
		cfg.PaymentPollInterval = time.Duration(jc.PaymentPollInterval.Duration)
	}
}
