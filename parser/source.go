package parser

import (
	"github.com/pin1yin1/pin1yin1/ast"
)

// Source is the decoded program text. It is read-only for the lifetime of a
// parse and shared by every cursor copy; offsets into it are rune indices.
type Source struct {
	name  string
	runes []rune
	lines *ast.LineIndex
}

// NewSource decodes text into a Source. Invalid UTF-8 decodes to U+FFFD;
// use ParseBytes to reject it instead.
func NewSource(name, text string) *Source {
	runes := []rune(text)
	return &Source{
		name:  name,
		runes: runes,
		lines: ast.NewLineIndex(name, runes),
	}
}

// Name returns the file name the source was read from, if any.
func (s *Source) Name() string { return s.name }

// Len returns the number of runes in the source.
func (s *Source) Len() int { return len(s.runes) }

// Runes returns the decoded text. Callers must not modify it.
func (s *Source) Runes() []rune { return s.runes }

// Text returns the text covered by span.
func (s *Source) Text(span ast.Span) string { return span.Text(s.runes) }

// Position resolves a rune offset to a line and column.
func (s *Source) Position(offset int) ast.Position { return s.lines.Position(offset) }

// Lines returns the line index of the source.
func (s *Source) Lines() *ast.LineIndex { return s.lines }
