package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{orig[0]}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()
	require.Equal(t, "http://localhost:8000/api", cfg.ServerBaseURL)
	require.Equal(t, ".shelf", cfg.StateDir)
	require.Equal(t, 3*time.Second, cfg.PaymentPollInterval)
}

func TestLoadConfig_EnvOverridesDefaults(t *testing.T) {
	withArgs(t)
	t.Setenv("SHELF_API_URL", "http://env.example/api")
	t.Setenv("SHELF_POLL_INTERVAL", "7")

	cfg := LoadConfig()
	require.Equal(t, "http://env.example/api", cfg.ServerBaseURL)
	require.Equal(t, 7*time.Second, cfg.PaymentPollInterval)
}

func TestLoadConfig_EnvIgnoresInvalidInterval(t *testing.T) {
	withArgs(t)
	t.Setenv("SHELF_POLL_INTERVAL", "zero")

	cfg := LoadConfig()
	require.Equal(t, 3*time.Second, cfg.PaymentPollInterval)
}

func TestLoadConfig_JSONOverridesEnv(t *testing.T) {
	t.Setenv("SHELF_API_URL", "http://env.example/api")

	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"server_base_url":"http://json.example/api","payment_poll_interval":"5s"}`), 0o600))
	withArgs(t, "-c", path)

	cfg := LoadConfig()
	require.Equal(t, "http://json.example/api", cfg.ServerBaseURL)
	require.Equal(t, 5*time.Second, cfg.PaymentPollInterval)
}

func TestLoadConfig_FlagsWinOverJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(
		`{"server_base_url":"http://json.example/api"}`), 0o600))
	withArgs(t, "-c", path, "-a", "http://flag.example/api", "-i", "9", "-d", "/tmp/state")

	cfg := LoadConfig()
	require.Equal(t, "http://flag.example/api", cfg.ServerBaseURL)
	require.Equal(t, "/tmp/state", cfg.StateDir)
	require.Equal(t, 9*time.Second, cfg.PaymentPollInterval)
}
