// Package conanfile writes and reads the declarative conanfile.txt manifest.
package conanfile

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Conanfile is the manifest handed to conan: generators to run, packages to
// require, package options and post-install import rules. Entries keep
// caller order and are never deduplicated.
type Conanfile struct {
	Generators []string
	Requires   []string
	Options    []string
	Imports    []string
}

// sections fixes the emission order.
var sections = []struct {
	header  string
	entries func(*Conanfile) []string
}{
	{"[generators]", func(c *Conanfile) []string { return c.Generators }},
	{"[requires]", func(c *Conanfile) []string { return c.Requires }},
	{"[options]", func(c *Conanfile) []string { return c.Options }},
	{"[imports]", func(c *Conanfile) []string { return c.Imports }},
}

// Encode writes the manifest: four headered sections in fixed order, one
// entry per line. Empty sections still emit their header so the file shape
// is stable.
func (c *Conanfile) Encode(w io.Writer) error {
	for _, s := range sections {
		if _, err := fmt.Fprintln(w, s.header); err != nil {
			return err
		}
		for _, entry := range s.entries(c) {
			if _, err := fmt.Fprintln(w, entry); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteFile writes the manifest to path, fully replacing any previous file.
func (c *Conanfile) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("write conanfile: %w", err)
	}
	if err := c.Encode(f); err != nil {
		f.Close()
		return fmt.Errorf("write conanfile: %w", err)
	}
	return f.Close()
}

// Parse reads a manifest back. Unknown section headers are skipped so files
// written by hand with extra sections still load.
func Parse(r io.Reader) (*Conanfile, error) {
	var c Conanfile
	var current *[]string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "[") {
			switch line {
			case "[generators]":
				current = &c.Generators
			case "[requires]":
				current = &c.Requires
			case "[options]":
				current = &c.Options
			case "[imports]":
				current = &c.Imports
			default:
				current = nil
			}
			continue
		}
		if current != nil {
			*current = append(*current, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read conanfile: %w", err)
	}
	return &c, nil
}

// ParseFile reads a manifest from disk.
func ParseFile(path string) (*Conanfile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("read conanfile: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
