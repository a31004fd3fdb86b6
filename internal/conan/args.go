package conan

import "strings"

// ArgSpec declares the argument names one conan subcommand accepts, split by
// shape: boolean flags, single-value options and repeatable multi-value
// options. Specs are fixed at declaration time and never mutated.
type ArgSpec struct {
	Flags  []string
	Values []string
	Lists  []string
}

// Arg is one named argument. A flag carries no values, a single-value option
// carries one, a multi-value option any number. Args with an empty Name are
// raw pass-through tokens.
type Arg struct {
	Name   string
	Values []string
}

// Args is an ordered named-argument list. Order is preserved so that
// pass-through tokens reach the external command line in caller order.
type Args []Arg

// Get returns the values collected under name and whether it was given.
func (a Args) Get(name string) ([]string, bool) {
	var vals []string
	found := false
	for _, arg := range a {
		if arg.Name == name {
			found = true
			vals = append(vals, arg.Values...)
		}
	}
	return vals, found
}

// truthy reports whether a flag occurrence enables the flag. A bare
// occurrence counts as true; otherwise the first value decides, following
// the build tool's boolean vocabulary.
func truthy(vals []string) bool {
	if len(vals) == 0 {
		return true
	}
	switch strings.ToUpper(vals[0]) {
	case "ON", "TRUE", "YES", "Y", "1":
		return true
	}
	return false
}

// kebab converts a declared argument name to its conan flag spelling:
// INSTALL_FOLDER becomes install-folder.
func kebab(name string) string {
	return strings.ReplaceAll(strings.ToLower(name), "_", "-")
}

// flagArg renders one flag occurrence. An empty value yields the bare flag,
// anything else exactly one =value suffix. Values are opaque to this layer.
func flagArg(name, value string) string {
	if value == "" {
		return "--" + kebab(name)
	}
	return "--" + kebab(name) + "=" + value
}

// Translate converts named arguments to the conan CLI dialect. Declared
// names are emitted in spec order (flags, then single-value, then
// multi-value); arguments matching no declared name are forwarded verbatim
// afterwards, keeping their original relative order. Argument values are
// never interpreted, only carried.
func Translate(spec ArgSpec, args Args) []string {
	declared := make(map[string]bool)
	var argv []string

	for _, name := range spec.Flags {
		declared[name] = true
		if vals, ok := args.Get(name); ok && truthy(vals) {
			argv = append(argv, "--"+kebab(name))
		}
	}
	for _, name := range spec.Values {
		declared[name] = true
		if vals, ok := args.Get(name); ok {
			if len(vals) == 0 {
				argv = append(argv, flagArg(name, ""))
			}
			// A repeated occurrence repeats the flag; conan applies its own
			// first-or-last-wins rule per option.
			for _, v := range vals {
				argv = append(argv, flagArg(name, v))
			}
		}
	}
	for _, name := range spec.Lists {
		declared[name] = true
		if vals, _ := args.Get(name); len(vals) > 0 {
			for _, v := range vals {
				argv = append(argv, flagArg(name, v))
			}
		}
	}

	// Unrecognized arguments pass through unchanged so the wrapper stays
	// compatible with conan options it does not know about. Each Args entry
	// corresponds to one original token, so reconstruction is exact.
	for _, arg := range args {
		switch {
		case arg.Name == "":
			argv = append(argv, arg.Values...)
		case !declared[arg.Name]:
			if len(arg.Values) == 0 {
				argv = append(argv, arg.Name)
			}
			for _, v := range arg.Values {
				argv = append(argv, arg.Name+"="+v)
			}
		}
	}
	return argv
}

// isArgName reports whether token looks like a declared-argument name:
// all-caps with underscores, the convention the build scripts use.
func isArgName(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if (r < 'A' || r > 'Z') && (r < '0' || r > '9') && r != '_' {
			return false
		}
	}
	return token[0] >= 'A' && token[0] <= 'Z'
}

// ParseArgs turns raw CLI tokens into Args. NAME=value tokens become named
// arguments (repeated names accumulate values), bare NAME tokens become
// value-less occurrences, and anything else is kept as a pass-through token.
func ParseArgs(tokens []string) Args {
	var args Args
	for _, tok := range tokens {
		name, value, cut := strings.Cut(tok, "=")
		switch {
		case cut && isArgName(name):
			args = append(args, Arg{Name: name, Values: []string{value}})
		case !cut && isArgName(tok):
			args = append(args, Arg{Name: tok})
		default:
			args = append(args, Arg{Values: []string{tok}})
		}
	}
	return args
}
