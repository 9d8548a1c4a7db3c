// Package formatter prints Pin1Yin1 syntax trees.
//
// Format writes canonical source: one statement per line, one indent per
// code block, single spaces between words and every keyword and operator
// spelled with the canonical lexeme of the configured grammar. Formatting a
// tree and parsing the result yields a tree of the same shape.
//
// Tree writes an outline of a tree with the span of every node, for
// debugging the parser and for the web playground.
package formatter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/grammar"
	"github.com/pin1yin1/pin1yin1/telemetry"
)

// DefaultIndent is written once per code block level.
const DefaultIndent = "\t"

// Formatter handles formatting of Pin1Yin1 programs.
type Formatter struct {
	// Grammar supplies the spelling of keywords and operators.
	Grammar *grammar.Config

	// Indent is written once per code block level.
	Indent string

	// PreserveComments controls whether comments are kept.
	// Default: true
	PreserveComments bool

	// PreserveBlanks keeps one blank line wherever the source had at least
	// one between two statements. Requires the source passed to Format.
	// Default: true
	PreserveBlanks bool
}

// Option is a functional option for configuring a Formatter.
type Option func(*Formatter)

// WithGrammar sets the tables keywords and operators are spelled from.
func WithGrammar(cfg *grammar.Config) Option {
	return func(f *Formatter) {
		if cfg != nil {
			f.Grammar = cfg
		}
	}
}

// WithIndent sets the indentation written per block level.
func WithIndent(indent string) Option {
	return func(f *Formatter) {
		f.Indent = indent
	}
}

// WithPreserveComments enables or disables comment preservation.
func WithPreserveComments(preserve bool) Option {
	return func(f *Formatter) {
		f.PreserveComments = preserve
	}
}

// WithPreserveBlanks enables or disables blank line preservation.
func WithPreserveBlanks(preserve bool) Option {
	return func(f *Formatter) {
		f.PreserveBlanks = preserve
	}
}

// New creates a new Formatter with the given options.
func New(opts ...Option) *Formatter {
	f := &Formatter{
		Grammar:          grammar.Default(),
		Indent:           DefaultIndent,
		PreserveComments: true,
		PreserveBlanks:   true,
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Format writes prog as canonical source to w. source is the text prog was
// parsed from; it is only consulted for blank lines and may be nil.
func (f *Formatter) Format(ctx context.Context, prog *ast.Program, source []rune, w io.Writer) error {
	timer := telemetry.StartTimer(ctx, "formatter.format")
	defer timer.End()

	p := &printer{f: f, source: source}
	p.buf.Grow(len(source) + 64)
	printStmts(p, prog.Items)

	_, err := io.WriteString(w, p.buf.String())
	return err
}

// FormatNode writes a single expression or statement without a trailing
// newline.
func (f *Formatter) FormatNode(n ast.Node, w io.Writer) error {
	p := &printer{f: f}
	switch n := n.(type) {
	case ast.Stmt:
		p.stmt(n)
	case ast.Expr:
		p.expr(n)
	case *ast.TypeDefine:
		p.typeDefine(n)
	default:
		return fmt.Errorf("cannot format %T", n)
	}
	_, err := io.WriteString(w, p.buf.String())
	return err
}

// printer holds the state of one Format call.
type printer struct {
	f      *Formatter
	source []rune
	buf    strings.Builder
	depth  int
}

func printStmts[T ast.Stmt](p *printer, list []T) {
	printed := false
	for i, s := range list {
		if _, ok := ast.Stmt(s).(*ast.Comment); ok && !p.f.PreserveComments {
			continue
		}
		if printed && p.blankBetween(list[i-1], s) {
			p.buf.WriteByte('\n')
		}
		p.indent()
		p.stmt(s)
		p.buf.WriteByte('\n')
		printed = true
	}
}

// blankBetween reports whether the source holds an empty line between a and b.
func (p *printer) blankBetween(a, b ast.Node) bool {
	if !p.f.PreserveBlanks || p.source == nil {
		return false
	}
	start, end := a.GetSpan().End, b.GetSpan().Start
	if start < 0 || end > len(p.source) || start >= end {
		return false
	}
	newlines := 0
	for _, r := range p.source[start:end] {
		if r == '\n' {
			newlines++
		}
	}
	return newlines >= 2
}

func (p *printer) indent() {
	for i := 0; i < p.depth; i++ {
		p.buf.WriteString(p.f.Indent)
	}
}

func (p *printer) space() {
	p.buf.WriteByte(' ')
}

func (p *printer) keyword(k ast.Keyword) {
	if lexeme := p.f.Grammar.Lexeme(k.Tag); lexeme != "" {
		p.buf.WriteString(lexeme)
		return
	}
	p.buf.WriteString(k.Lexeme)
}

func (p *printer) operator(o ast.Operator) {
	if lexeme := p.f.Grammar.OperatorLexeme(o.Op); lexeme != "" {
		p.buf.WriteString(lexeme)
		return
	}
	p.buf.WriteString(o.Symbol)
}

func (p *printer) stmt(s ast.Stmt) {
	switch s := s.(type) {
	case *ast.Comment:
		p.keyword(s.Keyword)
		if s.Text.Text != "" {
			p.space()
			p.buf.WriteString(s.Text.Text)
		}

	case *ast.CodeBlock:
		p.block(s)

	case *ast.FnCallStmt:
		p.fnCall(s.Call)
		p.space()
		p.keyword(s.Semi)

	case *ast.VarStoreStmt:
		p.buf.WriteString(s.Name.Name)
		p.space()
		p.keyword(s.Assign)
		p.space()
		p.expr(s.Value)
		p.space()
		p.keyword(s.Semi)

	case *ast.FnDefine:
		p.typeDefine(s.Type)
		p.space()
		p.buf.WriteString(s.Name.Name)
		p.space()
		p.keyword(s.Open)
		for i, param := range s.Params.Params {
			if i > 0 {
				p.space()
				p.keyword(s.Params.Separators[i-1])
			}
			p.space()
			p.typeDefine(param.Type)
			p.space()
			p.buf.WriteString(param.Name.Name)
		}
		p.space()
		p.keyword(s.Close)
		p.space()
		p.block(s.Body)

	case *ast.VarDefineStmt:
		p.typeDefine(s.Type)
		p.space()
		p.buf.WriteString(s.Name.Name)
		if s.Init != nil {
			p.space()
			p.keyword(s.Init.Assign)
			p.space()
			p.expr(s.Init.Value)
		}
		p.space()
		p.keyword(s.Semi)

	case *ast.If:
		for i, br := range s.Branches {
			if i > 0 {
				p.space()
				p.keyword(*br.Else)
				p.space()
			}
			p.keyword(br.If)
			p.space()
			p.conditions(br.Cond)
			p.space()
			p.block(br.Body)
		}
		if s.Else != nil {
			p.space()
			p.keyword(s.Else.Else)
			p.space()
			p.block(s.Else.Body)
		}

	case *ast.While:
		p.keyword(s.Repeat)
		p.space()
		p.conditions(s.Cond)
		p.space()
		p.block(s.Body)

	case *ast.Return:
		p.keyword(s.Keyword)
		if s.Value != nil {
			p.space()
			p.expr(s.Value)
		}
		p.space()
		p.keyword(s.Semi)
	}
}

// block writes the opening keyword, the statements one level deeper and
// the closing keyword on a line of its own.
func (p *printer) block(b *ast.CodeBlock) {
	p.keyword(b.Open)
	p.buf.WriteByte('\n')
	p.depth++
	printStmts(p, b.Stmts)
	p.depth--
	p.indent()
	p.keyword(b.Close)
}

func (p *printer) conditions(c *ast.Conditions) {
	p.keyword(c.Open)
	p.arguments(c.Args)
	p.space()
	p.keyword(c.Close)
}

// arguments writes a leading space before every value.
func (p *printer) arguments(a *ast.Arguments) {
	for i, v := range a.Values {
		if i > 0 {
			p.space()
			p.keyword(a.Separators[i-1])
		}
		p.space()
		p.expr(v)
	}
}

func (p *printer) typeDefine(t *ast.TypeDefine) {
	for _, d := range t.Decorators {
		p.keyword(d.Keyword)
		if d.Size != nil {
			p.space()
			p.buf.WriteString(d.Size.Raw)
		}
		p.space()
	}
	if t.Primitive != nil {
		p.keyword(*t.Primitive)
	} else if t.Named != nil {
		p.buf.WriteString(t.Named.Name)
	}
}

func (p *printer) fnCall(c *ast.FnCall) {
	p.buf.WriteString(c.Name.Name)
	p.space()
	p.keyword(c.Open)
	p.arguments(c.Args)
	p.space()
	p.keyword(c.Close)
}

func (p *printer) expr(e ast.Expr) {
	switch e := e.(type) {
	case *ast.Binary:
		p.expr(e.Left)
		p.space()
		p.operator(e.Op)
		p.space()
		p.expr(e.Right)

	case *ast.UnaryExpr:
		p.operator(e.Op)
		p.space()
		p.expr(e.Operand)

	case *ast.BracketExpr:
		p.keyword(e.Open)
		p.space()
		p.expr(e.Inner)
		p.space()
		p.keyword(e.Close)

	case *ast.FnCall:
		p.fnCall(e)

	case *ast.Initialization:
		p.keyword(e.Open)
		for _, v := range e.Values {
			p.space()
			p.expr(v)
		}
		p.space()
		p.keyword(e.Close)

	case *ast.Ident:
		p.buf.WriteString(e.Name)

	case *ast.NumberLiteral:
		p.buf.WriteString(e.Raw)

	case *ast.CharLiteral:
		p.formatChar(e)

	case *ast.StringLiteral:
		p.formatString(e)
	}
}
