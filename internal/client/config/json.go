package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/caffetrack/internal/flagx"
	"github.com/dmitrijs2005/caffetrack/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "5m" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	APIBaseURL           string         `json:"api_base_url"`
	DatabasePath         string         `json:"database_path"`
	RequestTimeout       timex.Duration `json:"request_timeout"`
	RefreshBuffer        timex.Duration `json:"refresh_buffer"`
	AutoRefreshThreshold timex.Duration `json:"auto_refresh_threshold"`
	AutoRefreshEnabled   *bool          `json:"auto_refresh_enabled"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// Lookup order for the JSON file path:
//  1. Command-line flags (-c or -config) via flagx.JsonConfigFlags().
//  2. If empty, no JSON is loaded and the function returns.
//
// Behavior:
//   - Reads and unmarshals the JSON into JsonConfig.
//   - Copies known fields into the provided Config.
//   - Panics on read or unmarshal errors (caller should recover if desired).
//
// Intended usage is: defaults -> parseJson -> parseEnv -> parseFlags, where
// later stages override earlier ones.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.APIBaseURL != "" {
		cfg.APIBaseURL = jc.APIBaseURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.RefreshBuffer.Duration != 0 {
		cfg.RefreshBuffer = time.Duration(jc.RefreshBuffer.Duration)
	}
	if jc.AutoRefreshThreshold.Duration != 0 {
		cfg.AutoRefreshThreshold = time.Duration(jc.AutoRefreshThreshold.Duration)
	}
	if jc.AutoRefreshEnabled != nil {
		cfg.AutoRefreshEnabled = *jc.AutoRefreshEnabled
	}
}
