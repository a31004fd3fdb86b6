package conan

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/conanbridge/conanbridge/internal/env"
)

const cacheFile = "tool.json"

// toolCache persists the resolved executable between build-configuration
// runs, so later calls skip PATH resolution and version probing.
type toolCache struct {
	Path      string    `json:"path"`
	Version   string    `json:"version"`
	Generator string    `json:"generator,omitempty"`
	CheckedAt time.Time `json:"checked_at"`
}

func cachePath(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = env.CacheDir()
		if err != nil {
			return "", err
		}
	}
	return filepath.Join(dir, cacheFile), nil
}

func loadToolCache(dir string) (*toolCache, error) {
	path, err := cachePath(dir)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c toolCache
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// saveToolCache writes the cache entry, preserving a previously stored
// generator preference when the new entry carries none. Failures are
// swallowed: the cache is an optimization, never a requirement.
func saveToolCache(dir string, c toolCache) {
	path, err := cachePath(dir)
	if err != nil {
		return
	}
	if c.Generator == "" {
		if old, err := loadToolCache(dir); err == nil {
			c.Generator = old.Generator
		}
	}
	c.CheckedAt = time.Now()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return
	}
	data, err := json.MarshalIndent(&c, "", "  ")
	if err != nil {
		return
	}
	os.WriteFile(path, data, 0o644)
}

// RememberGenerator records the generator preference chosen during a check
// so later install runs default to it.
func (t *Tool) RememberGenerator(cacheDir, generator string) {
	saveToolCache(cacheDir, toolCache{Path: t.path, Version: t.version, Generator: generator})
}

// PreferredGenerator returns the cached generator preference, if any.
func PreferredGenerator(cacheDir string) string {
	c, err := loadToolCache(cacheDir)
	if err != nil {
		return ""
	}
	return c.Generator
}
