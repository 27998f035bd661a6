// Package flagx picks the flags a component owns out of the full command
// line, so several flag sets can share os.Args without tripping over each
// other's flags.
package flagx

import (
	"flag"
	"io"
	"strings"
)

// FilterArgs keeps the flags named in owned, together with their values, and
// drops every other argument. A flag is matched with one or two leading
// dashes, as package flag accepts both. Its value may be attached
// ("-s=48") or follow as the next argument ("-s 48") unless that argument
// starts with a dash.
//
// The result is never nil.
func FilterArgs(args []string, owned []string) []string {
	keep := make(map[string]bool, len(owned))
	for _, f := range owned {
		keep[strings.TrimLeft(f, "-")] = true
	}

	out := []string{}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			continue
		}
		name, _, attached := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if !keep[name] {
			continue
		}
		out = append(out, arg)
		if !attached && i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
			i++
			out = append(out, args[i])
		}
	}
	return out
}

// ConfigPath returns the config file given with -c or -config in args
// (usually os.Args[1:]), or "" when there is none. When both are given the
// last one wins.
func ConfigPath(args []string) string {
	var path string

	fs := flag.NewFlagSet("json", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&path, "config", "", "Path to config file")
	fs.StringVar(&path, "c", "", "Path to config file (short)")
	_ = fs.Parse(FilterArgs(args, []string{"-c", "-config"}))

	return path
}
