package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/caffetrack/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend HTTP API (default from Config)
//	-f string   path to the local session database file (default from Config)
//	-b int      proactive refresh buffer in seconds (default from Config)
//	-r          start the automatic token refresh scheduler
//	-d          enable debug logging
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-b", "-r", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the backend API")
	fs.StringVar(&cfg.DatabasePath, "f", cfg.DatabasePath, "path to the local session database")
	refreshBuffer := fs.Int("b", int(cfg.RefreshBuffer.Seconds()), "proactive refresh buffer (in seconds)")
	fs.BoolVar(&cfg.AutoRefreshEnabled, "r", cfg.AutoRefreshEnabled, "start the automatic token refresh scheduler")
	fs.BoolVar(&cfg.Debug, "d", cfg.Debug, "enable debug logging")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RefreshBuffer = time.Duration(*refreshBuffer) * time.Second
}
