// Package buildinfo loads the settings script conan generates after an
// install back into explicit values the caller can thread around.
package buildinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Generated file names, one per host-generator mode.
const (
	singleConfigFile = "conanbuildinfo.cmake"
	multiConfigFile  = "conanbuildinfo_multi.cmake"
)

// Filename returns the build-info file name for the given mode.
func Filename(multiConfig bool) string {
	if multiConfig {
		return multiConfigFile
	}
	return singleConfigFile
}

// Info holds the loaded definitions. Names keep first-seen file order;
// a redefinition replaces the values (last write wins), matching how the
// host build tool would apply the script.
type Info struct {
	names  []string
	values map[string][]string
}

// Get returns the definition joined to a single string.
func (i *Info) Get(name string) string {
	return strings.Join(i.values[name], " ")
}

// List returns the definition's individual values.
func (i *Info) List(name string) []string {
	return i.values[name]
}

// Has reports whether name is defined.
func (i *Info) Has(name string) bool {
	_, ok := i.values[name]
	return ok
}

// Names returns all defined names in file order.
func (i *Info) Names() []string {
	return i.names
}

func (i *Info) define(name string, values []string) {
	if i.values == nil {
		i.values = make(map[string][]string)
	}
	if _, ok := i.values[name]; !ok {
		i.names = append(i.names, name)
	}
	i.values[name] = values
}

// Load reads the generated build-info file from dir. A missing file is an
// error: it means the install step did not run or used other generators.
func Load(dir string, multiConfig bool) (*Info, error) {
	path := filepath.Join(dir, Filename(multiConfig))
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("build info %s not found; run the conan install step first", path)
		}
		return nil, fmt.Errorf("read build info: %w", err)
	}
	info, err := parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse build info %s: %w", path, err)
	}
	return info, nil
}

// parse scans the script for set(NAME value...) definitions and records
// them. Everything else (macros, conditionals) belongs to the build tool and
// is passed over opaquely.
func parse(script string) (*Info, error) {
	info := &Info{}
	rest := script
	for {
		idx := strings.Index(rest, "set(")
		if idx < 0 {
			break
		}
		// Only take unindented definitions: indented set() calls live inside
		// generated macros and only run when the build tool calls them.
		lineStart := strings.LastIndexByte(rest[:idx], '\n') + 1
		if lineStart != idx {
			rest = rest[idx+4:]
			continue
		}
		end := closeParen(rest[idx+4:])
		if end < 0 {
			return nil, fmt.Errorf("unterminated set( definition")
		}
		body := rest[idx+4 : idx+4+end]
		rest = rest[idx+4+end+1:]

		fields := splitDefinition(body)
		if len(fields) == 0 {
			continue
		}
		info.define(fields[0], fields[1:])
	}
	return info, nil
}

// closeParen returns the index of the first ')' outside double quotes, or -1.
// Quoted values may contain parentheses, "C:/Program Files (x86)/..." being
// the usual case.
func closeParen(s string) int {
	inQuote := false
	for i, r := range s {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == ')' && !inQuote:
			return i
		}
	}
	return -1
}

// splitDefinition splits a set() body on whitespace, honoring double quotes.
func splitDefinition(body string) []string {
	var fields []string
	var cur strings.Builder
	inQuote := false
	flush := func() {
		if cur.Len() > 0 {
			fields = append(fields, cur.String())
			cur.Reset()
		}
	}
	for _, r := range body {
		switch {
		case r == '"':
			inQuote = !inQuote
		case !inQuote && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()
	return fields
}
