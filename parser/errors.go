package parser

import (
	"fmt"

	"github.com/pin1yin1/pin1yin1/ast"
)

// ErrorKind classifies a parse failure.
type ErrorKind uint8

const (
	// ErrSyntax is a production that started and turned out malformed.
	ErrSyntax ErrorKind = iota
	// ErrNestingTooDeep is nesting beyond the configured depth ceiling.
	ErrNestingTooDeep
	// ErrTrailingInput is text left over after the root production.
	ErrTrailingInput
	// ErrInvalidEncoding is input that is not valid UTF-8.
	ErrInvalidEncoding
)

func (k ErrorKind) String() string {
	switch k {
	case ErrSyntax:
		return "syntax"
	case ErrNestingTooDeep:
		return "nesting-too-deep"
	case ErrTrailingInput:
		return "trailing-input"
	case ErrInvalidEncoding:
		return "invalid-encoding"
	default:
		return fmt.Sprintf("ErrorKind(%d)", uint8(k))
	}
}

// HardError is a committed failure inside the grammar. It carries no
// position information beyond its span; the driver resolves that when it
// surfaces the error as a *ParseError.
type HardError struct {
	Kind    ErrorKind
	Span    ast.Span
	Message string
}

func (e *HardError) Error() string {
	return fmt.Sprintf("%s: %s", e.Span, e.Message)
}

func newHardError(kind ErrorKind, span ast.Span, format string, args ...any) *HardError {
	return &HardError{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

// ParseError is the error returned by the parse driver.
type ParseError struct {
	Pos     ast.Position
	Span    ast.Span
	Kind    ErrorKind
	Message string
	Source  *Source
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Pos, e.Message)
}

// GetPosition returns the line and column of the start of the error span.
func (e *ParseError) GetPosition() ast.Position {
	return e.Pos
}

// GetSpan returns the rune offsets the error covers.
func (e *ParseError) GetSpan() ast.Span {
	return e.Span
}

// newParseError resolves a HardError against its source.
func newParseError(src *Source, herr *HardError) *ParseError {
	return &ParseError{
		Pos:     src.Position(herr.Span.Start),
		Span:    herr.Span,
		Kind:    herr.Kind,
		Message: herr.Message,
		Source:  src,
	}
}
