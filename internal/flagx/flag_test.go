package flagx

import (
	"os"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "config locator keeps only its flag",
			args:         []string{"-c", "caffetrack.json", "-a", "http://localhost:8080"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "caffetrack.json"},
		},
		{
			name:         "equals form",
			args:         []string{"-config=alt.json", "-f", "store.db"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-config=alt.json"},
		},
		{
			name:         "overrides stage keeps its own set in order",
			args:         []string{"-a", "https://api.example:9000", "-c", "caffetrack.json", "-b", "120", "-f", "store.db"},
			allowedFlags: []string{"-a", "-f", "-b", "-r", "-d"},
			want:         []string{"-a", "https://api.example:9000", "-b", "120", "-f", "store.db"},
		},
		{
			name:         "unknown flags and positionals dropped",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{},
		},
		{
			name:         "bare boolean flag at end",
			args:         []string{"-r"},
			allowedFlags: []string{"-a", "-f", "-b", "-r", "-d"},
			want:         []string{"-r"},
		},
		{
			name:         "boolean flag followed by another flag takes no value",
			args:         []string{"-r", "-d"},
			allowedFlags: []string{"-a", "-f", "-b", "-r", "-d"},
			want:         []string{"-r", "-d"},
		},
		{
			name:         "equals value may itself start with a dash",
			args:         []string{"-config=--odd.json"},
			allowedFlags: []string{"-config"},
			want:         []string{"-config=--odd.json"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{},
		},
		{
			name:         "absolute path stays attached to its flag",
			args:         []string{"-f", "/var/lib/caffetrack/store.db"},
			allowedFlags: []string{"-f"},
			want:         []string{"-f", "/var/lib/caffetrack/store.db"},
		},
		{
			name:         "next dash-starting token is not consumed as value",
			args:         []string{"-c", "-config=alt.json"},
			allowedFlags: []string{"-c", "-config"},
			want:         []string{"-c", "-config=alt.json"},
		},
		{
			name:         "repeated flag preserved in order",
			args:         []string{"-c", "one.json", "-c", "two.json"},
			allowedFlags: []string{"-c"},
			want:         []string{"-c", "one.json", "-c", "two.json"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestJsonConfigFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("short -c with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/etc/caffetrack/short.json"}
		assert.Equal(t, "/etc/caffetrack/short.json", JsonConfigFlags())
	})

	t.Run("long -config with value", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", "/etc/caffetrack/long.json"}
		assert.Equal(t, "/etc/caffetrack/long.json", JsonConfigFlags())
	})

	t.Run("other stages' flags are ignored", func(t *testing.T) {
		os.Args = []string{"testbin", "-a", "http://localhost:8080", "-r", "-d"}
		assert.Empty(t, JsonConfigFlags())
	})

	t.Run("multiple flags, last wins", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", "/path/1.json", "-config", "/path/2.json"}
		assert.Equal(t, "/path/2.json", JsonConfigFlags())
	})
}
