package config

import "time"

// Config holds runtime settings for the CaffeTrack CLI.
//
// Fields:
//   - APIBaseURL: base URL of the backend HTTP API.
//   - DatabasePath: path of the local sqlite file holding the session state.
//   - RequestTimeout: per-request HTTP timeout.
//   - RefreshBuffer: how close to expiry a token may get before an
//     authenticated request refreshes it up front.
//   - AutoRefreshThreshold: remaining token lifetime at which the background
//     scheduler refreshes.
//   - AutoRefreshEnabled: whether the background scheduler starts on launch.
//   - Debug: enables debug-level logging.
type Config struct {
	APIBaseURL           string
	DatabasePath         string
	RequestTimeout       time.Duration
	RefreshBuffer        time.Duration
	AutoRefreshThreshold time.Duration
	AutoRefreshEnabled   bool
	Debug                bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8080"
	c.DatabasePath = "caffetrack.db"
	c.RequestTimeout = 10 * time.Second
	c.RefreshBuffer = 5 * time.Minute
	c.AutoRefreshThreshold = 60 * time.Second
	c.AutoRefreshEnabled = false
	c.Debug = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), environment variables, and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
