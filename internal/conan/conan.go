// Package conan locates the conan executable and translates build-script
// arguments into its command-line dialect.
package conan

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"

	"golang.org/x/mod/semver"
)

// Tool is a resolved conan executable.
type Tool struct {
	path    string
	version string
	workDir string
}

// Option configures Lookup.
type Option func(*lookup)

type lookup struct {
	path       string
	minVersion string
	cacheDir   string
	workDir    string
}

// WithPath skips PATH resolution and uses the given executable.
func WithPath(path string) Option {
	return func(l *lookup) { l.path = path }
}

// WithMinVersion rejects conan executables older than version (e.g. "1.40.0").
func WithMinVersion(version string) Option {
	return func(l *lookup) { l.minVersion = version }
}

// WithCacheDir overrides where the resolved tool state is persisted.
func WithCacheDir(dir string) Option {
	return func(l *lookup) { l.cacheDir = dir }
}

// WithWorkDir sets the default working directory for invocations.
func WithWorkDir(dir string) Option {
	return func(l *lookup) { l.workDir = dir }
}

// Lookup resolves the conan executable and checks its version. Resolution
// order: explicit path, cached path from an earlier run, then PATH. The
// resolved path and version are cached for later runs.
func Lookup(opts ...Option) (*Tool, error) {
	var l lookup
	for _, opt := range opts {
		opt(&l)
	}

	var candidates []string
	if l.path != "" {
		candidates = []string{l.path}
	} else {
		if cached, err := loadToolCache(l.cacheDir); err == nil && executable(cached.Path) {
			candidates = append(candidates, cached.Path)
		}
		if found, err := exec.LookPath("conan"); err == nil {
			candidates = append(candidates, found)
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("conan executable not found in PATH")
	}

	var path, version string
	var err error
	for _, cand := range candidates {
		version, err = queryVersion(cand)
		if err == nil {
			path = cand
			break
		}
	}
	if err != nil {
		return nil, err
	}

	if l.minVersion != "" && semver.Compare("v"+version, "v"+l.minVersion) < 0 {
		return nil, fmt.Errorf("conan %s at %s is older than required %s", version, path, l.minVersion)
	}

	t := &Tool{path: path, version: version, workDir: l.workDir}
	saveToolCache(l.cacheDir, toolCache{Path: path, Version: version})
	return t, nil
}

// Path returns the resolved executable path.
func (t *Tool) Path() string { return t.path }

// Version returns the detected conan version.
func (t *Tool) Version() string { return t.version }

// queryVersion runs "conan --version" and extracts the version number from
// output of the form "Conan version 1.59.0".
func queryVersion(path string) (string, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.Command(path, "--version")
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("conan --version: %s", msg)
		}
		return "", fmt.Errorf("conan --version: %w", err)
	}
	return ParseVersion(stdout.String())
}

// ParseVersion extracts the semantic version from "conan --version" output.
func ParseVersion(output string) (string, error) {
	fields := strings.Fields(strings.TrimSpace(output))
	for i, f := range fields {
		if strings.EqualFold(f, "version") && i+1 < len(fields) {
			v := strings.TrimSuffix(fields[i+1], ".")
			if semver.IsValid("v" + v) {
				return v, nil
			}
		}
	}
	return "", fmt.Errorf("cannot parse conan version from %q", strings.TrimSpace(output))
}

func executable(path string) bool {
	if path == "" {
		return false
	}
	_, err := exec.LookPath(path)
	return err == nil
}
