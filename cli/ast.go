package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/alecthomas/repr"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/formatter"
	"github.com/pin1yin1/pin1yin1/parser"
)

// ASTCmd prints the syntax tree of a source file.
type ASTCmd struct {
	File FileOrStdin `help:"Source filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
	Expr bool        `help:"Parse the input as a single expression instead of a program." short:"e"`
	Repr bool        `help:"Dump the Go values of the tree instead of an outline."`
}

func (cmd *ASTCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	runCtx, reportTelemetry := startTelemetry(context.Background(), ctx, globals, "ast "+filepath.Base(cmd.File.Filename))
	defer reportTelemetry()

	root, err := cmd.parse(runCtx, globals)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(nil).Render(err))
		_, _ = fmt.Fprintln(ctx.Stderr)
		printError(ctx.Stderr, "parse error")
		return NewCommandError(1)
	}

	if cmd.Repr {
		_, _ = fmt.Fprintln(ctx.Stdout, repr.String(root, repr.Indent("  "), repr.OmitEmpty(true)))
		return nil
	}

	cfg, err := globals.tables()
	if err != nil {
		return err
	}
	return formatter.New(formatter.WithGrammar(cfg)).Tree(root, ctx.Stdout)
}

func (cmd *ASTCmd) parse(ctx context.Context, globals *Globals) (ast.Node, error) {
	ldr, err := globals.newLoader()
	if err != nil {
		return nil, err
	}

	if !cmd.Expr {
		res, err := cmd.File.Load(ctx, ldr)
		if err != nil {
			return nil, err
		}
		return res.Program, nil
	}

	data, err := cmd.File.GetSourceContent()
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	p := parser.New(
		parser.WithGrammar(ldr.Grammar),
		parser.WithMaxDepth(ldr.MaxDepth),
		parser.WithFilename(cmd.File.Filename),
	)
	src, err := p.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	return p.ParseExpression(ctx, src)
}
