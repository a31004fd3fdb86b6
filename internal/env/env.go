package env

import (
	"os"
	"path/filepath"
)

// CacheDir returns the directory used to persist tool-resolution state
// between build-configuration runs.
func CacheDir() (string, error) {
	userCacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(userCacheDir, "conanbridge"), nil
}

// BuildDir returns the directory conan subcommands run in when the caller
// gives no working directory. It honors CONANBRIDGE_BUILD_DIR so the CMake
// side can point invocations at the binary dir.
func BuildDir() (string, error) {
	if dir := os.Getenv("CONANBRIDGE_BUILD_DIR"); dir != "" {
		return dir, nil
	}
	return os.Getwd()
}
