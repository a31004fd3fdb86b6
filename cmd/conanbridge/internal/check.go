package internal

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conanbridge/conanbridge/internal/conan"
	"github.com/conanbridge/conanbridge/internal/detect"
	"github.com/conanbridge/conanbridge/internal/install"
)

var (
	checkPath       string
	checkMinVersion string
	checkState      string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Locate the conan executable and verify its version",
	Long: `Check resolves the conan executable (explicit path, cached path, then
PATH), verifies it against an optional minimum version, and caches the
result for later runs. With a build-state file it also records the
generator preference matching the host's configuration mode.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVar(&checkPath, "path", "", "Explicit conan executable path")
	checkCmd.Flags().StringVar(&checkMinVersion, "min-version", "", "Required minimum conan version (e.g. 1.40.0)")
	checkCmd.Flags().StringVar(&checkState, "state", "", "Build-state YAML file, used to record the generator preference")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	var opts []conan.Option
	if checkPath != "" {
		opts = append(opts, conan.WithPath(checkPath))
	}
	if checkMinVersion != "" {
		opts = append(opts, conan.WithMinVersion(checkMinVersion))
	}

	tool, err := conan.Lookup(opts...)
	if err != nil {
		return err
	}

	if checkState != "" {
		e, err := detect.LoadEnv(checkState)
		if err != nil {
			return err
		}
		tool.RememberGenerator("", install.DefaultGenerator(e.MultiConfig()))
	}

	color.Green("conan %s at %s", tool.Version(), tool.Path())
	return nil
}
