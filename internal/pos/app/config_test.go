package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	// Force a clean slate regardless of the host environment.
	for _, key := range []string{
		"DUKAPOS_API_URL", "DUKAPOS_ENV", "LOG_LEVEL",
		"DUKAPOS_HTTP_TIMEOUT", "DUKAPOS_RATE_BURST",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()

	require.Equal(t, "http://127.0.0.1:8000/api", cfg.APIBaseURL)
	require.NotEmpty(t, cfg.KeystorePath)
	require.Equal(t, "dev", cfg.Env)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 40, cfg.RateBurst)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("DUKAPOS_API_URL", "https://pos.example.com/api")
	t.Setenv("DUKAPOS_HTTP_TIMEOUT", "30s")
	t.Setenv("DUKAPOS_RATE_RPS", "5")
	t.Setenv("LOG_FORMAT", "json")

	cfg := LoadConfig()

	require.Equal(t, "https://pos.example.com/api", cfg.APIBaseURL)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, float64(5), cfg.RateRPS)
	require.Equal(t, "json", cfg.LogFormat)
}

func TestLoadConfigBadValuesFallBack(t *testing.T) {
	t.Setenv("DUKAPOS_HTTP_TIMEOUT", "soon")
	t.Setenv("DUKAPOS_RATE_BURST", "many")

	cfg := LoadConfig()

	require.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	require.Equal(t, 40, cfg.RateBurst)
}
