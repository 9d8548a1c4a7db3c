package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/pin1yin1/pin1yin1/grammar"
	"github.com/pin1yin1/pin1yin1/output"
	"github.com/pin1yin1/pin1yin1/parser"
)

// DoctorCmd provides doctor utilities for debugging source files and tables.
type DoctorCmd struct {
	Words   WordsCmd   `cmd:"" help:"Show the words of a source file and how the tables classify them."`
	Grammar GrammarCmd `cmd:"" help:"Show the keyword and operator tables in use."`
}

// WordsCmd shows the words of a source file.
type WordsCmd struct {
	File FileOrStdin `help:"Source filename (use '-' for stdin, or omit for stdin)." arg:"" optional:""`
}

// Run executes the words command.
func (cmd *WordsCmd) Run(ctx *kong.Context, globals *Globals) error {
	if err := cmd.File.EnsureContents(); err != nil {
		return err
	}

	content, err := cmd.File.GetSourceContent()
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	cfg, err := globals.tables()
	if err != nil {
		return err
	}

	p := parser.New(parser.WithGrammar(cfg), parser.WithFilename(cmd.File.Filename))
	src, err := p.Decode(context.Background(), content)
	if err != nil {
		_, _ = fmt.Fprintln(ctx.Stderr, NewErrorRenderer(nil).Render(err))
		return NewCommandError(1)
	}

	styles := output.NewStyles(ctx.Stdout)

	// Format: KIND line:col "text" detail
	for _, w := range parser.Words(src, cfg) {
		kind := fmt.Sprintf("%-8s", w.Kind)
		detail := ""
		switch w.Kind {
		case parser.WordKeyword:
			kind = styles.Keyword(kind)
			detail = w.Tag.String()
		case parser.WordOperator:
			kind = styles.Operator(kind)
			detail = fmt.Sprintf("%s %s %d", w.Operator.Op, w.Operator.Associativity, w.Operator.Priority)
		case parser.WordIdent:
			kind = styles.Ident(kind)
		case parser.WordNumber:
			kind = styles.Literal(kind)
		default:
			kind = styles.Dim(kind)
		}

		_, _ = fmt.Fprintf(ctx.Stdout, "%s %-9s %q %s\n",
			kind,
			fmt.Sprintf("%d:%d", w.Pos.Line, w.Pos.Column),
			w.Text,
			styles.Dim(detail))
	}

	return nil
}

// GrammarCmd prints the keyword and operator tables.
type GrammarCmd struct {
	Section string `help:"Which table to show." enum:"all,keywords,operators" default:"all" short:"s"`
}

// Run executes the grammar command.
func (cmd *GrammarCmd) Run(ctx *kong.Context, globals *Globals) error {
	cfg, err := globals.tables()
	if err != nil {
		return err
	}

	if cmd.Section != "operators" {
		_, _ = fmt.Fprintln(ctx.Stdout, keywordTable(cfg))
	}
	if cmd.Section != "keywords" {
		_, _ = fmt.Fprintln(ctx.Stdout, operatorTable(cfg))
	}
	return nil
}

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// keywordTable lists keywords by tag. Tags of one class are adjacent.
func keywordTable(cfg *grammar.Config) string {
	t := newTable("LEXEME", "TAG", "CLASS")
	for _, kw := range cfg.Keywords() {
		t.Row(kw.Lexeme, kw.Tag.String(), kw.Tag.Class().String())
	}
	return t.Render()
}

// operatorTable lists operators from the tightest binding to the loosest.
func operatorTable(cfg *grammar.Config) string {
	t := newTable("SYMBOL", "OP", "PRIORITY", "ASSOCIATIVITY")
	for _, op := range cfg.Operators() {
		t.Row(op.Symbol, op.Op.String(), strconv.Itoa(op.Priority), op.Associativity.String())
	}
	return t.Render()
}
