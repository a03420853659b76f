package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// envConfig is a DTO for environment variable parsing. Pointer fields let an
// unset variable be told apart from a zero value, so the environment only
// overrides what it actually sets.
type envConfig struct {
	APIBaseURL           *string        `env:"API_BASE_URL"`
	DatabasePath         *string        `env:"DATABASE_PATH"`
	RequestTimeout       *time.Duration `env:"REQUEST_TIMEOUT"`
	RefreshBuffer        *time.Duration `env:"REFRESH_BUFFER"`
	AutoRefreshThreshold *time.Duration `env:"AUTO_REFRESH_THRESHOLD"`
	AutoRefreshEnabled   *bool          `env:"AUTO_REFRESH"`
	Debug                *bool          `env:"DEBUG"`
}

// parseEnv overlays Config with values from CAFFETRACK_-prefixed environment
// variables. Unset variables leave the current value alone. Panics on
// malformed values, matching the JSON loader's behavior.
func parseEnv(cfg *Config) {
	var ec envConfig
	if err := env.ParseWithOptions(&ec, env.Options{Prefix: "CAFFETRACK_"}); err != nil {
		panic(err)
	}

	if ec.APIBaseURL != nil {
		cfg.APIBaseURL = *ec.APIBaseURL
	}
	if ec.DatabasePath != nil {
		cfg.DatabasePath = *ec.DatabasePath
	}
	if ec.RequestTimeout != nil {
		cfg.RequestTimeout = *ec.RequestTimeout
	}
	if ec.RefreshBuffer != nil {
		cfg.RefreshBuffer = *ec.RefreshBuffer
	}
	if ec.AutoRefreshThreshold != nil {
		cfg.AutoRefreshThreshold = *ec.AutoRefreshThreshold
	}
	if ec.AutoRefreshEnabled != nil {
		cfg.AutoRefreshEnabled = *ec.AutoRefreshEnabled
	}
	if ec.Debug != nil {
		cfg.Debug = *ec.Debug
	}
}
