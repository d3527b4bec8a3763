// Package flagx lets several components parse their own flags out of the
// shared os.Args without tripping over each other's unknown flags.
package flagx

import (
	"flag"
	"os"
	"strings"
)

// FilterArgs returns the subset of args that belongs to the flags a component
// owns, keeping their values and original order.
//
// Names are given without leading dashes; "-name" and "--name" both match,
// as they do for the flag package. Value flags accept "-name value" and
// "-name=value". Boolean flags never consume the following token, so they
// must be written as "-name" or "-name=false".
func FilterArgs(args []string, valueFlags []string, boolFlags ...string) []string {
	owned := make(map[string]bool, len(valueFlags)+len(boolFlags))
	for _, f := range valueFlags {
		owned[strings.TrimLeft(f, "-")] = true
	}
	for _, f := range boolFlags {
		owned[strings.TrimLeft(f, "-")] = false
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		takesValue, ok := owned[name]
		if !ok {
			continue
		}

		filtered = append(filtered, arg)
		if hasValue || !takesValue {
			continue
		}

		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// JsonConfigFlags returns the config file path given with -c or -config,
// or an empty string when neither is present. Other arguments are ignored.
func JsonConfigFlags() string {
	var config string

	args := FilterArgs(os.Args[1:], []string{"c", "config"})

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.StringVar(&config, "config", "", "Path to config file")
	fs.StringVar(&config, "c", "", "Path to config file (short)")
	_ = fs.Parse(args)

	return config
}
