package cli

import (
	stdErrors "errors"
	"fmt"
	"io"

	"github.com/alecthomas/kong"
)

// CommandError signals a command failure with a specific exit code.
// Commands return it once they have printed their own diagnostics, so Run
// only has to translate it into an exit code.
type CommandError struct {
	exitCode int
}

// NewCommandError creates a new CommandError with the given exit code.
func NewCommandError(exitCode int) *CommandError {
	return &CommandError{exitCode: exitCode}
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	return "command failed"
}

// ExitCode returns the exit code associated with this error.
func (e *CommandError) ExitCode() int {
	return e.exitCode
}

// CommandResult is the outcome of Run.
type CommandResult struct {
	// ExitCode is the process exit code; 0 means success.
	ExitCode int

	// Err is the error that caused a non-zero exit code, if any.
	Err error
}

// Success returns a CommandResult indicating successful execution.
func Success() CommandResult {
	return CommandResult{ExitCode: 0}
}

// Failure returns a CommandResult indicating failure with the given error.
// A CommandError keeps its own exit code.
func Failure(err error) CommandResult {
	var cmdErr *CommandError
	if stdErrors.As(err, &cmdErr) {
		return CommandResult{ExitCode: cmdErr.ExitCode(), Err: err}
	}
	return CommandResult{ExitCode: 1, Err: err}
}

// App is the root of the command line.
type App struct {
	Version kong.VersionFlag `help:"Show version information"`
	Commands
}

// kongExit carries an exit code requested by kong (for --help, --version or
// a usage error) out of the parser.
type kongExit int

// Run parses args and runs the selected command, writing to stdout and
// stderr. It never calls os.Exit.
func Run(args []string, stdout, stderr io.Writer) (result CommandResult) {
	var app App

	defer func() {
		if r := recover(); r != nil {
			code, ok := r.(kongExit)
			if !ok {
				panic(r)
			}
			result = CommandResult{ExitCode: int(code)}
			if code != 0 {
				result.Err = NewCommandError(int(code))
			}
		}
	}()

	vars := Vars()
	vars["version"] = BuildVersion()

	parser, err := kong.New(&app,
		vars,
		kong.Name("pin1yin1"),
		kong.Description("A parser, formatter and playground for Pin1Yin1 source files."),
		kong.UsageOnError(),
		kong.Bind(&app.Globals),
		kong.Writers(stdout, stderr),
		kong.Exit(func(code int) { panic(kongExit(code)) }),
	)
	if err != nil {
		return Failure(err)
	}

	ctx, err := parser.Parse(args)
	parser.FatalIfErrorf(err)

	if err := ctx.Run(); err != nil {
		var cmdErr *CommandError
		if !stdErrors.As(err, &cmdErr) {
			printError(stderr, err.Error())
		}
		return Failure(err)
	}

	return Success()
}

// BuildVersion describes the build from Version and CommitSHA.
func BuildVersion() string {
	version := Version
	if version == "" {
		version = "dev"
	}
	if CommitSHA == "" {
		return version
	}
	return fmt.Sprintf("%s (%s)", version, CommitSHA)
}
