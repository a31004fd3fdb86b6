package internal

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conanbridge/conanbridge/internal/conan"
)

var runConanPath string

var runCmd = &cobra.Command{
	Use:   "run <subcommand> [NAME=value|raw-args...]",
	Short: "Run any declared conan subcommand",
	Long: `Run dispatches through the subcommand declaration table: NAME=value
arguments matching the subcommand's declared names become conan flags,
anything else passes through verbatim. Reserved control arguments
(WORKING_DIRECTORY, OUTPUT_FILE, ERROR_FILE, RESULT_FILE, ALLOW_FAILURE)
configure the invocation and are never forwarded. RESULT_FILE receives the
exit code and keeps a non-zero exit from failing the command.

Multi-word subcommands are written as one shell word or two:
  conanbridge run "remote add" origin https://example.com/conan
  conanbridge run remote add origin https://example.com/conan`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVar(&runConanPath, "conan", "", "Explicit conan executable path")
	rootCmd.AddCommand(runCmd)
}

// splitSubcommand resolves the subcommand name against the declaration
// table, preferring the two-word form when both tokens belong to the name.
func splitSubcommand(args []string) (string, []string, error) {
	if len(args) >= 2 {
		name := args[0] + " " + args[1]
		if _, ok := conan.Spec(name); ok {
			return name, args[2:], nil
		}
	}
	if _, ok := conan.Spec(args[0]); ok {
		return args[0], args[1:], nil
	}
	return "", nil, fmt.Errorf("unknown conan subcommand %q (see \"conanbridge run --help\")", strings.Join(args[:min(2, len(args))], " "))
}

func runRun(cmd *cobra.Command, args []string) error {
	name, rest, err := splitSubcommand(args)
	if err != nil {
		return err
	}

	var lookupOpts []conan.Option
	if runConanPath != "" {
		lookupOpts = append(lookupOpts, conan.WithPath(runConanPath))
	}
	tool, err := conan.Lookup(lookupOpts...)
	if err != nil {
		return err
	}

	parsed, ctl := conan.ExtractControl(conan.ParseArgs(rest))
	res, err := tool.Run(context.Background(), name, parsed, ctl.RunOptions)
	if err != nil {
		return err
	}

	if err := writeCaptures(ctl, res); err != nil {
		return err
	}
	if ctl.KeepExitCode && res.ExitCode != 0 {
		fmt.Fprintf(os.Stderr, "conan exited with code %d\n", res.ExitCode)
	}
	return nil
}

// writeCaptures writes the captured streams and exit code to whichever files
// the control arguments named.
func writeCaptures(ctl conan.Control, res *conan.Result) error {
	if ctl.OutputFile != "" {
		if err := os.WriteFile(ctl.OutputFile, []byte(res.Stdout), 0o644); err != nil {
			return fmt.Errorf("write output file: %w", err)
		}
	}
	if ctl.ErrorFile != "" {
		if err := os.WriteFile(ctl.ErrorFile, []byte(res.Stderr), 0o644); err != nil {
			return fmt.Errorf("write error file: %w", err)
		}
	}
	if ctl.ResultFile != "" {
		data := []byte(fmt.Sprintf("%d\n", res.ExitCode))
		if err := os.WriteFile(ctl.ResultFile, data, 0o644); err != nil {
			return fmt.Errorf("write result file: %w", err)
		}
	}
	return nil
}
