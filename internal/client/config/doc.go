// Package config loads runtime configuration for the CourseHub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. COURSEHUB_* environment variables.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the REST API
//	-t int      request timeout (seconds)
//	-d string   path of the local SQLite database
//	-p string   base URL of the identity provider sign-in page
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations may be strings like "15s" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://127.0.0.1:8000/api/v1/",
//	  "request_timeout": "15s",
//	  "database_path": "coursehub.db",
//	  "identity_provider_url": "http://127.0.0.1:5173",
//	  "callback_timeout": "2m",
//	  "log_level": "info",
//	  "log_format": "text"
//	}
package config
