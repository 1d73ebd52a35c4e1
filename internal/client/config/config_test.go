package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8000/api/v1/", c.APIBaseURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "coursehub.db", c.DatabasePath)
	assert.Equal(t, 2*time.Minute, c.CallbackTimeout)
	assert.Equal(t, "info", c.LogLevel)
	assert.Empty(t, c.OTelEndpoint)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "http://127.0.0.1:8000/api/v1/", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
}

func TestSecureCookies(t *testing.T) {
	assert.False(t, (&Config{APIBaseURL: "http://127.0.0.1:8000/api/v1/"}).SecureCookies())
	assert.True(t, (&Config{APIBaseURL: "HTTPS://api.example.com/"}).SecureCookies())
}

func TestParseEnv_OverridesOnlySetVariables(t *testing.T) {
	t.Setenv("COURSEHUB_API_URL", "https://api.example.com/v1/")
	t.Setenv("COURSEHUB_REQUEST_TIMEOUT", "20s")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "https://api.example.com/v1/", cfg.APIBaseURL)
	assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "coursehub.db", cfg.DatabasePath)
	assert.Equal(t, 2*time.Minute, cfg.CallbackTimeout)
}

func TestParseEnv_InvalidDurationPanics(t *testing.T) {
	t.Setenv("COURSEHUB_CALLBACK_TIMEOUT", "later")

	var cfg Config
	require.Panics(t, func() { parseEnv(&cfg) })
}

func TestParseEnv_OTelEndpoint(t *testing.T) {
	t.Setenv("COURSEHUB_OTEL_ENDPOINT", "http://localhost:4318")

	var cfg Config
	cfg.LoadDefaults()
	parseEnv(&cfg)

	assert.Equal(t, "http://localhost:4318", cfg.OTelEndpoint)
}
