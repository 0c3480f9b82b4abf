// Package flagx helps several independent loaders share one command line.
//
// Each loader picks the arguments it understands with FilterArgs and parses
// them with its own flag.FlagSet, so unknown flags from other loaders never
// make a FlagSet fail.
package flagx

import (
	"flag"
	"strings"
)

// Known describes the flags a loader wants to see.
//
// Value flags may consume the following argument as their value; Bool flags
// never do, so "-r false" must be written as "-r=false".
type Known struct {
	Value []string
	Bool  []string
}

// canonical maps "--name" to "-name"; the flag package treats both forms the same.
func canonical(name string) string {
	if strings.HasPrefix(name, "--") {
		return name[1:]
	}
	return name
}

// FilterArgs returns the subset of args that belongs to the known flags,
// preserving order.
//
// Supported forms:
//
//	-c conf.json      value flag with a separate value
//	--config=x.json   any flag with an inline value
//	-r                bool flag
func FilterArgs(args []string, known Known) []string {
	values := make(map[string]struct{}, len(known.Value))
	for _, f := range known.Value {
		values[canonical(f)] = struct{}{}
	}
	bools := make(map[string]struct{}, len(known.Bool))
	for _, f := range known.Bool {
		bools[canonical(f)] = struct{}{}
	}

	filtered := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}

		name, _, inline := strings.Cut(arg, "=")
		name = canonical(name)

		_, isValue := values[name]
		_, isBool := bools[name]
		if !isValue && !isBool {
			continue
		}

		filtered = append(filtered, arg)
		if inline || isBool {
			continue
		}
		if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			filtered = append(filtered, args[i+1])
			i++
		}
	}

	return filtered
}

// ConfigFileFlag extracts the JSON config path given via -c or -config.
// It returns an empty string when neither is present.
func ConfigFileFlag(args []string) string {
	return stringFlag(args, "c", "config")
}

// EnvFileFlag extracts the dotenv file path given via -e or -env-file.
func EnvFileFlag(args []string) string {
	return stringFlag(args, "e", "env-file")
}

func stringFlag(args []string, short, long string) string {
	var v string

	filtered := FilterArgs(args, Known{Value: []string{"-" + short, "-" + long}})

	fs := flag.NewFlagSet(long, flag.ContinueOnError)
	fs.SetOutput(discard{})
	fs.StringVar(&v, long, "", "")
	fs.StringVar(&v, short, "", "")
	_ = fs.Parse(filtered)

	return v
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
