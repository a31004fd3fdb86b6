// Package install composes the full conan integration step: check the tool,
// infer settings, run conan install per configuration and load the results.
package install

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/conanbridge/conanbridge/internal/buildinfo"
	"github.com/conanbridge/conanbridge/internal/conan"
	"github.com/conanbridge/conanbridge/internal/detect"
	"github.com/conanbridge/conanbridge/internal/env"
)

// SetupScriptName is the include script emitted by the basic-setup step.
const SetupScriptName = "conanbridge_setup.cmake"

// importPathEnv scopes conan's import rules to the configuration being
// installed in multi-config runs.
const importPathEnv = "CONAN_IMPORT_PATH"

// Options configure one orchestrated install.
type Options struct {
	// Reference is a package reference ("zlib/1.2.13@"); ConanfilePath points
	// at a conanfile. When both are given the explicit path wins.
	Reference     string
	ConanfilePath string

	// InstallFolder is where conan runs and writes its output; empty means
	// the build directory.
	InstallFolder string

	// Generators override the default (cmake, or cmake_multi for
	// multi-config hosts).
	Generators []string

	// Detect adjusts settings inference.
	Detect detect.Options

	// InstallArgs are extra install arguments, translated through the
	// install façade ("BUILD=missing", raw flags, ...).
	InstallArgs conan.Args

	// BasicSetup emits an include script applying the loaded build info.
	BasicSetup   bool
	CMakeTargets bool
	KeepRPaths   bool
	NoOutputDirs bool
}

// Result is what one orchestrated install produced.
type Result struct {
	Profiles    []*detect.Profile
	Info        *buildinfo.Info
	SetupScript string
}

// target resolves the positional install argument.
func (o *Options) target() (string, error) {
	if o.ConanfilePath != "" {
		return o.ConanfilePath, nil
	}
	if o.Reference != "" {
		return o.Reference, nil
	}
	return "", fmt.Errorf("nothing to install: give a package reference or a conanfile path")
}

// DefaultGenerator picks the conan generator matching the host mode.
func DefaultGenerator(multiConfig bool) string {
	if multiConfig {
		return "cmake_multi"
	}
	return "cmake"
}

// Run executes the install flow: one conan install per configuration (with
// per-configuration settings inference), then loads the generated build info
// when a cmake-flavored generator is active.
func Run(ctx context.Context, tool *conan.Tool, e *detect.BuildEnv, opts Options) (*Result, error) {
	target, err := opts.target()
	if err != nil {
		return nil, err
	}

	folder := opts.InstallFolder
	if folder == "" {
		folder, err = env.BuildDir()
		if err != nil {
			return nil, err
		}
	}

	generators := opts.Generators
	if len(generators) == 0 {
		generators = []string{DefaultGenerator(e.MultiConfig())}
	}

	configs := e.Configurations
	if !e.MultiConfig() {
		configs = []string{firstNonEmpty(opts.Detect.BuildType, e.BuildType)}
	}

	res := &Result{}
	for _, cfg := range configs {
		dopts := opts.Detect
		dopts.BuildType = cfg
		dopts.Generators = generators

		profile, err := detect.Detect(e, dopts)
		if err != nil {
			return nil, err
		}
		res.Profiles = append(res.Profiles, profile)

		args := conan.Args{{Values: []string{target}}}
		args = append(args, conan.Arg{Values: profile.Args()})
		args = append(args, opts.InstallArgs...)

		runOpts := conan.RunOptions{Dir: folder}
		if e.MultiConfig() {
			// conan reads this to scope import paths per configuration.
			runOpts.Env = []string{importPathEnv + "=" + cfg}
			log.Info().Str("configuration", cfg).Msg("installing dependencies")
		}

		if _, err := tool.Install(ctx, args, runOpts); err != nil {
			return nil, err
		}
	}

	if hasCMakeGenerator(generators) {
		info, err := buildinfo.Load(folder, e.MultiConfig())
		if err != nil {
			return nil, err
		}
		res.Info = info

		if opts.BasicSetup {
			script, err := writeSetupScript(folder, e.MultiConfig(), opts)
			if err != nil {
				return nil, err
			}
			res.SetupScript = script
		}
	}
	return res, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func hasCMakeGenerator(generators []string) bool {
	for _, g := range generators {
		if g == "cmake" || g == "cmake_multi" {
			return true
		}
	}
	return false
}

// writeSetupScript emits the include script the host build pulls in to apply
// the loaded definitions to its targets.
func writeSetupScript(folder string, multiConfig bool, opts Options) (string, error) {
	var flags []string
	if opts.CMakeTargets {
		flags = append(flags, "TARGETS")
	}
	if opts.KeepRPaths {
		flags = append(flags, "KEEP_RPATHS")
	}
	if opts.NoOutputDirs {
		flags = append(flags, "NO_OUTPUT_DIRS")
	}

	var sb strings.Builder
	sb.WriteString("# Generated by conanbridge. Include this file from the host build.\n")
	fmt.Fprintf(&sb, "include(\"${CMAKE_CURRENT_LIST_DIR}/%s\")\n", buildinfo.Filename(multiConfig))
	fmt.Fprintf(&sb, "conan_basic_setup(%s)\n", strings.Join(flags, " "))

	path := filepath.Join(folder, SetupScriptName)
	if err := os.WriteFile(path, []byte(sb.String()), 0o644); err != nil {
		return "", fmt.Errorf("write setup script: %w", err)
	}
	return path, nil
}
