package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/coursehub/internal/flagx"
	"github.com/dmitrijs2005/coursehub/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent fields leave
// the current value untouched.
type JsonConfig struct {
	APIBaseURL          string          `json:"api_base_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	DatabasePath        string          `json:"database_path"`
	IdentityProviderURL string          `json:"identity_provider_url"`
	CallbackTimeout     *timex.Duration `json:"callback_timeout"`
	LogLevel            string          `json:"log_level"`
	LogFormat           string          `json:"log_format"`
	OTelEndpoint        string          `json:"otel_endpoint"`
}

// parseJson overlays cfg with the file named by -c/-config. It panics on
// read or decode errors.
func parseJson(cfg *Config) {
	path := flagx.ConfigFileFlag()
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.IdentityProviderURL, jc.IdentityProviderURL)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.OTelEndpoint, jc.OTelEndpoint)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.CallbackTimeout != nil {
		cfg.CallbackTimeout = jc.CallbackTimeout.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
