package buildinfo

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sampleScript = `# Conan generated file
set(CONAN_ZLIB_ROOT "/home/u/.conan/data/zlib/1.2.13/_/_/package/abc123")
set(CONAN_INCLUDE_DIRS_ZLIB "/home/u/.conan/data/zlib/1.2.13/_/_/package/abc123/include")
set(CONAN_LIBS_ZLIB z)
set(CONAN_LIBS z m)

macro(conan_basic_setup)
    set(CONAN_HIDDEN should_not_load)
endmacro()

set(CONAN_LIBS z m pthread)
`

func writeScript(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestFilename(t *testing.T) {
	if got := Filename(false); got != "conanbuildinfo.cmake" {
		t.Errorf("Filename(false) = %q", got)
	}
	if got := Filename(true); got != "conanbuildinfo_multi.cmake" {
		t.Errorf("Filename(true) = %q", got)
	}
}

func TestLoadMissingIsError(t *testing.T) {
	dir := t.TempDir()
	for _, multi := range []bool{false, true} {
		if _, err := Load(dir, multi); err == nil {
			t.Errorf("Load(multi=%v) on empty dir: want error, got nil", multi)
		}
	}
}

func TestLoadDefinitions(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "conanbuildinfo.cmake", sampleScript)

	info, err := Load(dir, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if got := info.Get("CONAN_ZLIB_ROOT"); got != "/home/u/.conan/data/zlib/1.2.13/_/_/package/abc123" {
		t.Errorf("CONAN_ZLIB_ROOT = %q", got)
	}
	if got := info.List("CONAN_LIBS_ZLIB"); !reflect.DeepEqual(got, []string{"z"}) {
		t.Errorf("CONAN_LIBS_ZLIB = %v", got)
	}
	// Last write wins for redefinitions.
	if got := info.List("CONAN_LIBS"); !reflect.DeepEqual(got, []string{"z", "m", "pthread"}) {
		t.Errorf("CONAN_LIBS = %v", got)
	}
	// Definitions inside macros are not loaded.
	if info.Has("CONAN_HIDDEN") {
		t.Error("macro-local definition leaked into Info")
	}
}

func TestLoadNamesKeepOrder(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "conanbuildinfo_multi.cmake", sampleScript)

	info, err := Load(dir, true)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []string{"CONAN_ZLIB_ROOT", "CONAN_INCLUDE_DIRS_ZLIB", "CONAN_LIBS_ZLIB", "CONAN_LIBS"}
	if !reflect.DeepEqual(info.Names(), want) {
		t.Errorf("Names() = %v, want %v", info.Names(), want)
	}
}

func TestParseMultilineDefinition(t *testing.T) {
	script := "set(CONAN_LIBS\n    z\n    m)\n"
	dir := t.TempDir()
	writeScript(t, dir, "conanbuildinfo.cmake", script)

	info, err := Load(dir, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := info.List("CONAN_LIBS"); !reflect.DeepEqual(got, []string{"z", "m"}) {
		t.Errorf("CONAN_LIBS = %v", got)
	}
}

func TestParseQuotedValuesWithSpaces(t *testing.T) {
	script := `set(CONAN_CXX_FLAGS "-m64 -stdlib=libc++")` + "\n"
	dir := t.TempDir()
	writeScript(t, dir, "conanbuildinfo.cmake", script)

	info, err := Load(dir, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := info.List("CONAN_CXX_FLAGS"); !reflect.DeepEqual(got, []string{"-m64 -stdlib=libc++"}) {
		t.Errorf("CONAN_CXX_FLAGS = %v", got)
	}
}

func TestParseQuotedValuesWithParens(t *testing.T) {
	script := `set(CONAN_LIB_DIRS "C:/Program Files (x86)/conan/lib")` + "\n" +
		`set(CONAN_LIBS z)` + "\n"
	dir := t.TempDir()
	writeScript(t, dir, "conanbuildinfo.cmake", script)

	info, err := Load(dir, false)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := info.Get("CONAN_LIB_DIRS"); got != "C:/Program Files (x86)/conan/lib" {
		t.Errorf("CONAN_LIB_DIRS = %q, want the full quoted path", got)
	}
	// The quoted parenthesis must not desynchronize subsequent definitions.
	if got := info.List("CONAN_LIBS"); !reflect.DeepEqual(got, []string{"z"}) {
		t.Errorf("CONAN_LIBS = %v", got)
	}
}

func TestParseUnterminated(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "conanbuildinfo.cmake", "set(CONAN_LIBS z m\n")

	if _, err := Load(dir, false); err == nil || !strings.Contains(err.Error(), "unterminated") {
		t.Errorf("Load of truncated script: error = %v", err)
	}
}
