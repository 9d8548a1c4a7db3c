// Package parser turns Pin1Yin1 source text into a span-annotated syntax tree.
//
// The parser is a backtracking recursive descent built from small rules over a
// Cursor. Every rule reports one of three outcomes: success, soft mismatch
// ("does not apply here, try something else") or hard error ("started and is
// malformed, stop"). Alternatives are tried in a fixed order and a hard error
// is never swallowed, so a parse either succeeds completely or stops at the
// first committed error with its exact span.
//
// Example usage:
//
//	prog, err := parser.ParseString(ctx, src)
//
//	// A custom keyword table and a lower nesting ceiling
//	cfg, _ := grammar.Load("tables.yaml")
//	prog, err := parser.ParseString(ctx, src, parser.WithGrammar(cfg), parser.WithMaxDepth(64))
package parser

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"unicode/utf8"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/grammar"
	"github.com/pin1yin1/pin1yin1/telemetry"
)

// DefaultMaxDepth is the nesting ceiling used when none is configured.
const DefaultMaxDepth = 256

// Parser holds the configuration of a parse. It keeps no state between
// calls and is safe for concurrent use.
type Parser struct {
	grammar  *grammar.Config
	maxDepth int
	filename string
}

// Option configures a Parser.
type Option func(*Parser)

// WithGrammar sets the keyword and operator tables.
func WithGrammar(cfg *grammar.Config) Option {
	return func(p *Parser) {
		if cfg != nil {
			p.grammar = cfg
		}
	}
}

// WithMaxDepth sets the nesting ceiling. Unary operators, brackets, calls,
// initializations and code blocks each count one level.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = depth
		}
	}
}

// WithFilename sets the file name reported in positions.
func WithFilename(name string) Option {
	return func(p *Parser) {
		p.filename = name
	}
}

// New creates a Parser with the default tables and nesting ceiling.
func New(opts ...Option) *Parser {
	p := &Parser{
		grammar:  grammar.Default(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Grammar returns the tables the parser uses.
func (p *Parser) Grammar() *grammar.Config { return p.grammar }

// Source decodes text into a Source named after the parser's file name.
func (p *Parser) Source(text string) *Source {
	return NewSource(p.filename, text)
}

// ParseProgram parses a whole program. The returned Program spans the whole
// input; any text the grammar does not accept is an error.
func (p *Parser) ParseProgram(ctx context.Context, src *Source) (*ast.Program, error) {
	timer := telemetry.StartTimer(ctx, "parser.parse "+displayName(src.Name()))
	defer timer.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := NewCursor(src, p.grammar, p.maxDepth)
	out := Attempt(c, program)
	if out.IsHard() {
		return nil, newParseError(src, out.Err())
	}
	if herr := trailing(c, "expected a comment or function definition"); herr != nil {
		return nil, newParseError(src, herr)
	}

	prog := out.Value()
	prog.Span = ast.Span{Start: 0, End: src.Len()}
	return prog, nil
}

// ParseExpression parses a single expression that must make up the whole
// input, apart from surrounding whitespace.
func (p *Parser) ParseExpression(ctx context.Context, src *Source) (ast.Expr, error) {
	timer := telemetry.StartTimer(ctx, "parser.expr "+displayName(src.Name()))
	defer timer.End()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c := NewCursor(src, p.grammar, p.maxDepth)
	out := MustMatch(c, expr, "expected an expression")
	if !out.IsSuccess() {
		return nil, newParseError(src, out.Err())
	}
	if herr := trailing(c, "expected an operator or end of input"); herr != nil {
		return nil, newParseError(src, herr)
	}
	return out.Value(), nil
}

// trailing reports the first word left after the root production.
func trailing(c *Cursor, hint string) *HardError {
	if c.AtEnd() {
		return nil
	}
	span := c.nextWordSpan()
	return newHardError(ErrTrailingInput, span, "unexpected `%s`: %s", c.s.src.Text(span), hint)
}

// Decode validates UTF-8 and converts data to a Source named after the
// parser's file name. Invalid input is an ErrInvalidEncoding *ParseError.
func (p *Parser) Decode(ctx context.Context, data []byte) (*Source, error) {
	timer := telemetry.StartTimer(ctx, "parser.decode")
	defer timer.End()

	if !utf8.Valid(data) {
		valid := validPrefix(data)
		src := NewSource(p.filename, string(data))
		offset := utf8.RuneCount(data[:valid])
		span := ast.Span{Start: offset, End: offset + 1}
		return nil, newParseError(src, newHardError(ErrInvalidEncoding, span,
			"invalid UTF-8 byte 0x%02x", data[valid]))
	}
	return NewSource(p.filename, string(data)), nil
}

// validPrefix returns the length of the longest valid UTF-8 prefix of data.
func validPrefix(data []byte) int {
	i := 0
	for i < len(data) {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size <= 1 {
			return i
		}
		i += size
	}
	return i
}

func displayName(name string) string {
	if name == "" {
		return "<input>"
	}
	return filepath.Base(name)
}

// Parse reads a program from r.
func Parse(ctx context.Context, r io.Reader, opts ...Option) (*ast.Program, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return ParseBytes(ctx, data, opts...)
}

// ParseString parses a program from a string.
func ParseString(ctx context.Context, str string, opts ...Option) (*ast.Program, error) {
	p := New(opts...)
	return p.ParseProgram(ctx, p.Source(str))
}

// ParseBytes parses a program from bytes, rejecting invalid UTF-8.
func ParseBytes(ctx context.Context, data []byte, opts ...Option) (*ast.Program, error) {
	p := New(opts...)
	src, err := p.Decode(ctx, data)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram(ctx, src)
}

// ParseBytesWithFilename parses a program from bytes, reporting positions
// against filename.
func ParseBytesWithFilename(ctx context.Context, filename string, data []byte, opts ...Option) (*ast.Program, error) {
	return ParseBytes(ctx, data, append(opts, WithFilename(filename))...)
}

// ParseExpr parses a single expression from a string.
func ParseExpr(ctx context.Context, str string, opts ...Option) (ast.Expr, error) {
	p := New(opts...)
	return p.ParseExpression(ctx, p.Source(str))
}
