package cli

import (
	"context"
	stdErrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/pin1yin1/pin1yin1/errors"
	"github.com/pin1yin1/pin1yin1/loader"
	"github.com/pin1yin1/pin1yin1/parser"
)

type CheckCmd struct {
	Files  []string `help:"Source files to check (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Format string   `help:"Output format for diagnostics." enum:"text,json" default:"text" short:"f"`
}

func (cmd *CheckCmd) Run(ctx *kong.Context, globals *Globals) error {
	runCtx, reportTelemetry := startTelemetry(context.Background(), ctx, globals, cmd.timerName())
	defer reportTelemetry()

	ldr, err := globals.newLoader()
	if err != nil {
		return err
	}

	results, err := cmd.load(runCtx, ldr)
	if err != nil {
		return err
	}

	var errs []error
	for _, res := range results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}

	if cmd.Format == "json" {
		_, _ = fmt.Fprintln(ctx.Stdout, errors.NewJSONFormatter().FormatAll(errs))
		if len(errs) > 0 {
			return NewCommandError(1)
		}
		return nil
	}

	if len(errs) > 0 {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(nil).RenderAll(errs))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, checkSummary(len(errs), len(results)))

		reportTelemetry()
		return NewCommandError(1)
	}

	if len(results) == 1 {
		printSuccess(ctx.Stdout, "Check passed")
	} else {
		printSuccess(ctx.Stdout, fmt.Sprintf("Check passed (%d files)", len(results)))
	}

	return nil
}

// load parses stdin when no files (or "-") are given, and otherwise every
// file concurrently.
func (cmd *CheckCmd) load(ctx context.Context, ldr *loader.Loader) ([]loader.FileResult, error) {
	if len(cmd.Files) == 0 || (len(cmd.Files) == 1 && cmd.Files[0] == "-") {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read from stdin: %w", err)
		}
		res, err := ldr.LoadBytes(ctx, stdinName, data)
		var perr *parser.ParseError
		if err != nil && !stdErrors.As(err, &perr) {
			return nil, err
		}
		return []loader.FileResult{{Filename: stdinName, Result: res, Err: err}}, nil
	}

	return ldr.LoadAll(ctx, cmd.Files...)
}

func (cmd *CheckCmd) timerName() string {
	switch len(cmd.Files) {
	case 0:
		return "check " + stdinName
	case 1:
		return "check " + filepath.Base(cmd.Files[0])
	default:
		return fmt.Sprintf("check %d files", len(cmd.Files))
	}
}

func checkSummary(failed, total int) string {
	if total == 1 {
		return "parse error"
	}
	return fmt.Sprintf("%d of %d files have errors", failed, total)
}
