package conan

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/rs/zerolog/log"
)

// RunOptions control one conan invocation. The zero value runs in the tool's
// default working directory and treats a non-zero exit as an error.
type RunOptions struct {
	// Dir is the working directory; empty means the tool's default.
	Dir string

	// Env is appended to the subprocess environment.
	Env []string

	// KeepExitCode returns a non-zero exit in Result instead of an error,
	// leaving interpretation to the caller. Stderr is returned either way.
	KeepExitCode bool

	// Quiet suppresses the stdout echo.
	Quiet bool
}

// Result captures one finished invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Control argument names intercepted from build-script argument lists. They
// configure the invocation and are never forwarded to conan.
const (
	CtlWorkingDirectory = "WORKING_DIRECTORY"
	CtlOutputFile       = "OUTPUT_FILE"
	CtlErrorFile        = "ERROR_FILE"
	CtlResultFile       = "RESULT_FILE"
	CtlAllowFailure     = "ALLOW_FAILURE"
)

// Control is the intercepted invocation configuration. ResultFile receives
// the exit code and implies KeepExitCode: the invoking script asked to
// handle failures itself.
type Control struct {
	OutputFile string
	ErrorFile  string
	ResultFile string
	RunOptions
}

// ExtractControl splits reserved control arguments out of args, returning
// the remaining arguments and the invocation configuration.
func ExtractControl(args Args) (Args, Control) {
	var rest Args
	var ctl Control
	for _, arg := range args {
		first := ""
		if len(arg.Values) > 0 {
			first = arg.Values[0]
		}
		switch arg.Name {
		case CtlWorkingDirectory:
			ctl.Dir = first
		case CtlOutputFile:
			ctl.OutputFile = first
		case CtlErrorFile:
			ctl.ErrorFile = first
		case CtlResultFile:
			ctl.ResultFile = first
			ctl.KeepExitCode = true
		case CtlAllowFailure:
			ctl.KeepExitCode = len(arg.Values) == 0 || truthy(arg.Values)
		default:
			rest = append(rest, arg)
		}
	}
	return rest, ctl
}

// Invoke runs conan with the given argv, capturing stdout, stderr and the
// exit code. Captured stdout is echoed for visibility unless opts.Quiet.
// A non-zero exit is an error carrying the stderr text, unless the caller
// opted in to receive the exit code.
func (t *Tool) Invoke(ctx context.Context, argv []string, opts RunOptions) (*Result, error) {
	dir := opts.Dir
	if dir == "" {
		dir = t.workDir
	}

	log.Info().Str("dir", dir).Msgf("conan %s", strings.Join(argv, " "))

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, t.path, argv...)
	cmd.Dir = dir
	cmd.Stderr = &stderr
	if opts.Quiet {
		cmd.Stdout = &stdout
	} else {
		cmd.Stdout = io.MultiWriter(&stdout, os.Stdout)
	}
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		exitErr, ok := err.(*exec.ExitError)
		if !ok {
			return nil, fmt.Errorf("conan %s: %w", strings.Join(argv, " "), err)
		}
		res.ExitCode = exitErr.ExitCode()
		if !opts.KeepExitCode {
			msg := strings.TrimSpace(res.Stderr)
			if msg == "" {
				msg = err.Error()
			}
			return nil, fmt.Errorf("conan %s failed: %s", strings.Join(argv, " "), msg)
		}
	}
	return res, nil
}
