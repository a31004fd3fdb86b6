package detect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// Setting is one name=value conan setting.
type Setting struct {
	Name  string
	Value string
}

// Profile is the inference result handed to the install layer.
type Profile struct {
	OS         string
	Settings   []Setting
	Name       string
	Generators []string
}

// Args renders the profile as conan install arguments.
func (p *Profile) Args() []string {
	var argv []string
	for _, s := range p.Settings {
		argv = append(argv, "-s", s.Name+"="+s.Value)
	}
	if p.Name != "" {
		argv = append(argv, "-pr", p.Name)
	}
	for _, g := range p.Generators {
		argv = append(argv, "-g", g)
	}
	return argv
}

// Options adjust detection. All fields are optional.
type Options struct {
	// Arch overrides architecture deduction.
	Arch string

	// BuildType overrides the environment's build type, used per configuration
	// in multi-config runs.
	BuildType string

	// Profile names a conan profile; ProfileByConfig entries (keyed by build
	// configuration) take precedence over it.
	Profile         string
	ProfileByConfig map[string]string

	// Settings are explicit name=value settings appended after the inferred
	// ones. The conan side applies last-write-wins on duplicates.
	Settings []string

	// Include restricts which settings are auto-included; empty means the
	// default list.
	Include []string

	// Generators passes through to Profile.Generators.
	Generators []string
}

// autoInclude is the default auto-inclusion order.
var autoInclude = []string{
	"arch",
	"build_type",
	"compiler",
	"compiler.version",
	"compiler.runtime",
	"compiler.libcxx",
	"compiler.toolset",
}

var knownOS = map[string]bool{
	"Linux":   true,
	"Macos":   true,
	"Windows": true,
	"FreeBSD": true,
	"SunOS":   true,
	"Android": true,
	"iOS":     true,
	"watchOS": true,
	"tvOS":    true,
}

// NormalizeOS maps a CMake system name to conan's vocabulary. Darwin is the
// one renamed entry.
func NormalizeOS(systemName string) (string, error) {
	if systemName == "" {
		return "", nil
	}
	name := systemName
	if name == "Darwin" {
		name = "Macos"
	}
	if !knownOS[name] {
		return "", fmt.Errorf("unsupported platform: %s", systemName)
	}
	return name, nil
}

func appleOS(os string) bool {
	switch os {
	case "Macos", "iOS", "watchOS", "tvOS":
		return true
	}
	return false
}

// Detect infers a conan settings profile from the detected build state.
func Detect(e *BuildEnv, opts Options) (*Profile, error) {
	osName, err := NormalizeOS(e.SystemName)
	if err != nil {
		return nil, err
	}

	comp, err := e.compiler()
	if err != nil {
		return nil, err
	}

	buildType := opts.BuildType
	if buildType == "" {
		buildType = e.BuildType
	}

	values := map[string]string{
		"build_type": buildType,
		"arch":       opts.Arch,
	}

	switch comp.ID {
	case "GNU":
		if err := gnuSettings(e, comp, values); err != nil {
			return nil, err
		}
	case "AppleClang":
		if err := appleClangSettings(comp, values); err != nil {
			return nil, err
		}
	case "Clang":
		if appleOS(osName) && e.AppleClangPolicy {
			// The host policy reports vendor-neutral Clang on Apple; treat it
			// as the Apple toolchain.
			if err := appleClangSettings(comp, values); err != nil {
				return nil, err
			}
			break
		}
		if err := clangSettings(e, comp, values); err != nil {
			return nil, err
		}
	case "MSVC":
		if err := msvcSettings(e, buildType, opts.Arch, values); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported compiler: %s", comp.ID)
	}

	include := opts.Include
	if len(include) == 0 {
		include = autoInclude
	}

	p := &Profile{OS: osName, Generators: opts.Generators}
	for _, name := range include {
		if v := values[name]; v != "" {
			p.Settings = append(p.Settings, Setting{Name: name, Value: v})
		}
	}
	for _, s := range opts.Settings {
		name, value, ok := strings.Cut(s, "=")
		if !ok {
			return nil, fmt.Errorf("invalid setting %q, want name=value", s)
		}
		p.Settings = append(p.Settings, Setting{Name: name, Value: value})
	}

	if name, ok := opts.ProfileByConfig[buildType]; ok && name != "" {
		p.Name = name
	} else {
		p.Name = opts.Profile
	}
	return p, nil
}

func gnuSettings(e *BuildEnv, comp Compiler, values map[string]string) error {
	major, minor, err := parseMajorMinor(comp.Version)
	if err != nil {
		return fmt.Errorf("gcc version %q: %w", comp.Version, err)
	}
	values["compiler"] = "gcc"
	// gcc moved to major-only release numbering after the 5.x series.
	if major > 5 {
		values["compiler.version"] = strconv.Itoa(major)
	} else {
		values["compiler.version"] = fmt.Sprintf("%d.%d", major, minor)
	}
	values["compiler.libcxx"] = unixLibcxx(e, major, minor)
	return nil
}

func appleClangSettings(comp Compiler, values map[string]string) error {
	major, minor, err := parseMajorMinor(comp.Version)
	if err != nil {
		return fmt.Errorf("apple-clang version %q: %w", comp.Version, err)
	}
	values["compiler"] = "apple-clang"
	values["compiler.version"] = fmt.Sprintf("%d.%d", major, minor)
	values["compiler.libcxx"] = "libc++"
	return nil
}

func clangSettings(e *BuildEnv, comp Compiler, values map[string]string) error {
	major, minor, err := parseMajorMinor(comp.Version)
	if err != nil {
		return fmt.Errorf("clang version %q: %w", comp.Version, err)
	}
	values["compiler"] = "clang"
	if major > 7 {
		values["compiler.version"] = strconv.Itoa(major)
	} else {
		values["compiler.version"] = fmt.Sprintf("%d.%d", major, minor)
	}
	values["compiler.libcxx"] = unixLibcxx(e, major, minor)
	return nil
}

// ideVersions maps MSVC_VERSION ranges to Visual Studio releases.
var ideVersions = []struct {
	lo, hi int
	ide    string
}{
	{1400, 1499, "8"},
	{1500, 1599, "9"},
	{1600, 1699, "10"},
	{1700, 1799, "11"},
	{1800, 1899, "12"},
	{1900, 1909, "14"},
	{1910, 1919, "15"},
}

func msvcSettings(e *BuildEnv, buildType, archOverride string, values map[string]string) error {
	ide := ""
	for _, r := range ideVersions {
		if e.MSVCVersion >= r.lo && e.MSVCVersion <= r.hi {
			ide = r.ide
			break
		}
	}
	if ide == "" {
		return fmt.Errorf("unrecognized Visual Studio version %d", e.MSVCVersion)
	}
	values["compiler"] = "Visual Studio"
	values["compiler.version"] = ide
	values["compiler.toolset"] = e.PlatformToolset

	if archOverride == "" {
		arch, err := msvcArch(e.PlatformID)
		if err != nil {
			return err
		}
		values["arch"] = arch
	}

	values["compiler.runtime"] = msvcRuntime(e, buildType)
	return nil
}

func msvcArch(platformID string) (string, error) {
	switch {
	case strings.Contains(platformID, "64"):
		return "x86_64", nil
	case strings.HasPrefix(platformID, "ARM"):
		log.Warn().Msg("conan does not support ARM detection yet, assuming armv6")
		return "armv6", nil
	case strings.Contains(platformID, "86"):
		return "x86", nil
	}
	return "", fmt.Errorf("cannot deduce conan arch from platform %q; pass an explicit arch", platformID)
}

// msvcRuntime scans the common and configuration-specific compiler flags for
// a runtime-library selection, defaulting by build type.
func msvcRuntime(e *BuildEnv, buildType string) string {
	for _, key := range []string{"", buildType} {
		for _, tok := range strings.Fields(e.Flags[key]) {
			switch tok {
			case "/MD", "-MD":
				return "MD"
			case "/MDd", "-MDd":
				return "MDd"
			case "/MT", "-MT":
				return "MT"
			case "/MTd", "-MTd":
				return "MTd"
			}
		}
	}
	if buildType == "Debug" {
		return "MDd"
	}
	return "MD"
}

// unixLibcxx picks the C++ standard-library ABI tag: an explicit override
// wins, then an ABI-disabling compile definition, then the gcc 5.1 default
// switch to the new ABI.
func unixLibcxx(e *BuildEnv, major, minor int) string {
	if e.LibcxxOverride != "" {
		return e.LibcxxOverride
	}
	for _, def := range e.CompileDefinitions {
		if def == "_GLIBCXX_USE_CXX11_ABI=0" {
			return "libstdc++"
		}
	}
	if major > 5 || (major == 5 && minor >= 1) {
		return "libstdc++11"
	}
	return "libstdc++"
}

// parseMajorMinor parses the leading major.minor of a dotted version.
func parseMajorMinor(version string) (major, minor int, err error) {
	parts := strings.SplitN(strings.TrimSpace(version), ".", 3)
	if len(parts) == 0 || parts[0] == "" {
		return 0, 0, fmt.Errorf("empty version")
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid major component: %w", err)
	}
	if len(parts) > 1 {
		minor, err = strconv.Atoi(parts[1])
		if err != nil {
			return 0, 0, fmt.Errorf("invalid minor component: %w", err)
		}
	}
	return major, minor, nil
}
