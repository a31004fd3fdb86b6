package internal

import (
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	quiet   bool
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "conanbridge",
	Short: "conanbridge wires the conan package manager into CMake builds",
	Long: `conanbridge translates the state a CMake run detects (platform, compiler,
build configurations) into conan command lines, runs conan, and hands the
generated build information back to the build.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		zlog.Logger = zlog.Output(zerolog.ConsoleWriter{Out: os.Stderr})
		switch {
		case quiet:
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
		case verbose:
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		default:
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print warnings and errors")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug output")
}

// Execute runs the root command. Any error aborts the build-configuration
// run with a non-zero exit.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("conanbridge: %v", err)
		os.Exit(1)
	}
}
