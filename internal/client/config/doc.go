// Package config loads runtime configuration for the CaffeTrack CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Environment variables with the CAFFETRACK_ prefix (see parseEnv).
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend HTTP API
//	-f string   path to the local session database file
//	-b int      proactive token refresh buffer (seconds)
//	-r          enable automatic background token refresh
//	-d          enable debug logging
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "5m" or integer nanoseconds:
//
//	{
//	  "api_base_url": "http://localhost:8080",
//	  "database_path": "caffetrack.db",
//	  "request_timeout": "10s",
//	  "refresh_buffer": "5m",
//	  "auto_refresh_threshold": "60s",
//	  "auto_refresh_enabled": true
//	}
//
// Primary API
//
//   - type Config                     — holds the CLI runtime settings
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, env, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
package config
