package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/pin1yin1/pin1yin1/formatter"
)

type FmtCmd struct {
	File           FileOrStdin `help:"Source filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Write          bool        `help:"Write the result back to the file instead of stdout." short:"w"`
	Yes            bool        `help:"Overwrite without asking for confirmation." short:"y"`
	Indent         string      `help:"Indentation written per block level (default: a tab)."`
	StripComments  bool        `help:"Drop comment statements."`
	CollapseBlanks bool        `help:"Drop blank lines between statements."`
}

func (cmd *FmtCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	if cmd.Write && cmd.File.IsStdin() {
		return fmt.Errorf("--write needs a file, not stdin")
	}

	runCtx, reportTelemetry := startTelemetry(context.Background(), ctx, globals, "fmt "+filepath.Base(cmd.File.Filename))
	defer reportTelemetry()

	ldr, err := globals.newLoader()
	if err != nil {
		return err
	}

	res, err := cmd.File.Load(runCtx, ldr)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(nil).Render(err))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	opts := []formatter.Option{
		formatter.WithGrammar(ldr.Grammar),
		formatter.WithPreserveComments(!cmd.StripComments),
		formatter.WithPreserveBlanks(!cmd.CollapseBlanks),
	}
	if cmd.Indent != "" {
		opts = append(opts, formatter.WithIndent(cmd.Indent))
	}
	f := formatter.New(opts...)

	var buf bytes.Buffer
	if err := f.Format(runCtx, res.Program, res.Source.Runes(), &buf); err != nil {
		return err
	}

	if !cmd.Write {
		_, err := ctx.Stdout.Write(buf.Bytes())
		return err
	}

	return cmd.writeBack(ctx, buf.Bytes())
}

// writeBack replaces the file with formatted, asking first unless --yes is
// set. Without a terminal to ask on, the file is left alone.
func (cmd *FmtCmd) writeBack(ctx *kong.Context, formatted []byte) error {
	filename := cmd.File.Filename

	original, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}
	if bytes.Equal(original, formatted) {
		printInfof(ctx.Stdout, "%s is already formatted", pathStyle.Render(filename))
		return nil
	}

	if !cmd.Yes {
		confirmed, err := promptYesNo(fmt.Sprintf("Overwrite %s?", filename))
		if err != nil {
			return fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			return fmt.Errorf("not overwriting %s (use --yes to skip confirmation)", filename)
		}
	}

	info, err := os.Stat(filename)
	if err != nil {
		return fmt.Errorf("failed to access file: %w", err)
	}
	if err := os.WriteFile(filename, formatted, info.Mode().Perm()); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	printSuccess(ctx.Stdout, fmt.Sprintf("Formatted %s", pathStyle.Render(filename)))
	return nil
}
