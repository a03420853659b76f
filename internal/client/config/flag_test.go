package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	// Test cases
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd", "-a", "https://api.example:9000", "-f", "/tmp/store.db", "-b", "120"}, expectPanic: false,
			expected: &Config{APIBaseURL: "https://api.example:9000", DatabasePath: "/tmp/store.db", RefreshBuffer: 120 * time.Second}},
		{name: "Test2 bool flags", args: []string{"cmd", "-r", "-d"}, expectPanic: false,
			expected: &Config{AutoRefreshEnabled: true, Debug: true}},
		{name: "Test3 incorrect refresh buffer", args: []string{"cmd", "-b", "abc"}, expectPanic: true, expected: &Config{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {

				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
