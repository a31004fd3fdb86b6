// Package detect infers conan settings from the state a CMake run detected:
// platform, enabled languages, compiler identity and flags.
package detect

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Compiler identifies one detected compiler.
type Compiler struct {
	ID      string `yaml:"id"`
	Version string `yaml:"version"`
}

// BuildEnv is an explicit snapshot of the build tool's detected state. The
// CMake side exports it as a YAML state file; tests build it in process.
type BuildEnv struct {
	SystemName         string              `yaml:"system_name"`
	Languages          []string            `yaml:"languages"`
	Compilers          map[string]Compiler `yaml:"compilers"`
	BuildType          string              `yaml:"build_type,omitempty"`
	Configurations     []string            `yaml:"configurations,omitempty"`
	MSVCVersion        int                 `yaml:"msvc_version,omitempty"`
	PlatformID         string              `yaml:"platform_id,omitempty"`
	PlatformToolset    string              `yaml:"platform_toolset,omitempty"`
	CompileDefinitions []string            `yaml:"compile_definitions,omitempty"`
	Flags              map[string]string   `yaml:"flags,omitempty"`
	LibcxxOverride     string              `yaml:"libcxx,omitempty"`
	AppleClangPolicy   bool                `yaml:"appleclang_policy,omitempty"`
}

// LoadEnv reads a BuildEnv state file.
func LoadEnv(path string) (*BuildEnv, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read build state: %w", err)
	}
	var e BuildEnv
	if err := yaml.Unmarshal(data, &e); err != nil {
		return nil, fmt.Errorf("parse build state %s: %w", path, err)
	}
	return &e, nil
}

// MultiConfig reports whether the host generator configures several build
// configurations at once (Visual Studio, Xcode).
func (e *BuildEnv) MultiConfig() bool {
	return len(e.Configurations) > 0
}

// language returns the enabled source language whose compiler drives
// detection: C++ wins over C, anything else is unsupported.
func (e *BuildEnv) language() (string, error) {
	for _, lang := range []string{"CXX", "C"} {
		for _, enabled := range e.Languages {
			if enabled == lang {
				return lang, nil
			}
		}
	}
	return "", fmt.Errorf("neither C++ nor C is enabled; conan settings need one of them")
}

// compiler returns the compiler detected for the driving language.
func (e *BuildEnv) compiler() (Compiler, error) {
	lang, err := e.language()
	if err != nil {
		return Compiler{}, err
	}
	c, ok := e.Compilers[lang]
	if !ok || c.ID == "" {
		return Compiler{}, fmt.Errorf("no compiler detected for language %s", lang)
	}
	return c, nil
}
