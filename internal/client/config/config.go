package config

import (
	"strings"
	"time"
)

// Config holds runtime settings for the CourseHub CLI.
type Config struct {
	APIBaseURL          string        `env:"COURSEHUB_API_URL"`
	RequestTimeout      time.Duration `env:"COURSEHUB_REQUEST_TIMEOUT"`
	DatabasePath        string        `env:"COURSEHUB_DATABASE_PATH"`
	IdentityProviderURL string        `env:"COURSEHUB_IDP_URL"`
	CallbackTimeout     time.Duration `env:"COURSEHUB_CALLBACK_TIMEOUT"`
	LogLevel            string        `env:"COURSEHUB_LOG_LEVEL"`
	LogFormat           string        `env:"COURSEHUB_LOG_FORMAT"`
	OTelEndpoint        string        `env:"COURSEHUB_OTEL_ENDPOINT"`
}

// LoadDefaults populates c with development defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000/api/v1/"
	c.RequestTimeout = 15 * time.Second
	c.DatabasePath = "coursehub.db"
	c.IdentityProviderURL = "http://127.0.0.1:5173"
	c.CallbackTimeout = 2 * time.Minute
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// SecureCookies reports whether credentials should carry the secure flag,
// which is the case only when the API is reached over HTTPS.
func (c *Config) SecureCookies() bool {
	return strings.HasPrefix(strings.ToLower(c.APIBaseURL), "https://")
}

// LoadConfig builds a Config from defaults, the JSON file, the environment
// and flags, in that order.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
