// Package flagx lets several packages own disjoint slices of the command
// line. The CaffeTrack CLI parses its flags in stages (the JSON config
// locator first, then the config overrides), and the standard flag package
// fails on anything it does not know, so each stage filters os.Args down to
// its own flags before parsing.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args that belongs to the flags listed in
// allowedFlags, keeping each flag's value when one follows.
//
// Both flag forms are understood:
//
//	separate value:     -a http://localhost:8080
//	combined with '=':  -config=caffetrack.json
//
// A bare boolean flag like -r or -d is kept on its own; the token after it
// is only treated as a value when it does not start with a dash.
//
// args is usually os.Args[1:]; allowedFlags names the flags this caller
// handles, e.g. []string{"-a", "-f", "-b", "-r", "-d"}.
func FilterArgs(args []string, allowedFlags []string) []string {
	allowed := make(map[string]struct{}, len(allowedFlags))
	for _, f := range allowedFlags {
		allowed[f] = struct{}{}
	}

	// Always a non-nil slice so callers can hand it straight to flag.Parse.
	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		// "-flag=value" form: keep the whole token when the name is allowed.
		if strings.HasPrefix(arg, "-") && strings.Contains(arg, "=") {
			name := strings.SplitN(arg, "=", 2)[0]
			if _, ok := allowed[name]; ok {
				filtered = append(filtered, arg)
			}
			continue
		}

		// "-flag value" form: keep the flag, and the following token when it
		// looks like a value rather than another flag.
		if _, ok := allowed[arg]; ok {
			filtered = append(filtered, arg)
			if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
				filtered = append(filtered, args[i+1])
				i++
			}
		}
	}

	return filtered
}

// JsonConfigFlags extracts the JSON config file path from the command line,
// given via -c or -config. Every other argument is ignored, so the config
// package can resolve the file location before its own flag stage runs.
//
// Returns "" when neither flag is present.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"-c", "-config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
