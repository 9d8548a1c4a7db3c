package formatter

import (
	"strings"

	"github.com/pin1yin1/pin1yin1/ast"
)

// escapeWord encodes a literal value as a single source word. Every rune has
// exactly one spelling, so escaping a decoded value yields the canonical word.
func escapeWord(s string) string {
	// Quick check if escaping is needed
	needsEscape := false
	for _, c := range s {
		if c == '_' || c == ' ' || c == '\n' || c == '\t' {
			needsEscape = true
			break
		}
	}

	if !needsEscape {
		return s
	}

	var buf strings.Builder
	buf.Grow(len(s) + 8)

	for _, c := range s {
		switch c {
		case '_':
			buf.WriteString("__")
		case ' ':
			buf.WriteString("_s")
		case '\n':
			buf.WriteString("_n")
		case '\t':
			buf.WriteString("_t")
		default:
			buf.WriteRune(c)
		}
	}

	return buf.String()
}

// formatChar writes a character literal with its payload re-escaped from
// the decoded value.
func (p *printer) formatChar(c *ast.CharLiteral) {
	p.keyword(c.Keyword)
	p.space()
	p.buf.WriteString(escapeWord(string(c.Value)))
}

// formatString writes a string literal with its payload re-escaped from
// the decoded value.
func (p *printer) formatString(s *ast.StringLiteral) {
	p.keyword(s.Keyword)
	p.space()
	p.buf.WriteString(escapeWord(s.Value))
}
