package parser

import (
	"strings"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/shopspring/decimal"
)

// unescape maps the rune after `_` to the rune it stands for.
func unescape(r rune) (rune, bool) {
	switch r {
	case '_':
		return '_', true
	case 't':
		return '\t', true
	case 'n':
		return '\n', true
	case 's':
		return ' ', true
	}
	return 0, false
}

// charLiteral parses `wen2 WORD` where WORD is one rune or `_` plus an
// escape letter.
func charLiteral(c *Cursor) Outcome[*ast.CharLiteral] {
	kw := Attempt(c, kwChar)
	if !kw.IsSuccess() {
		return Fail[*ast.CharLiteral](kw)
	}
	raw := MustMatch(c, word, "expected a character after `%s`", kw.Value().Lexeme)
	if !raw.IsSuccess() {
		return Fail[*ast.CharLiteral](raw)
	}

	runes := []rune(raw.Value())
	var value rune
	switch {
	case len(runes) == 1:
		value = runes[0]
	case len(runes) == 2 && runes[0] == '_':
		v, ok := unescape(runes[1])
		if !ok {
			return ThrowAt[*ast.CharLiteral](raw.Span(), "invalid or unsupported escape character %q", runes[1])
		}
		value = v
	default:
		return ThrowAt[*ast.CharLiteral](raw.Span(), "invalid character literal %q", raw.Value())
	}

	return Finish(c, &ast.CharLiteral{
		Span:    c.Span(),
		Keyword: kw.Value(),
		Raw:     ast.Word{Span: raw.Span(), Text: raw.Value()},
		Value:   value,
	})
}

// stringLiteral parses `chuan4 WORD`, decoding escapes in WORD.
func stringLiteral(c *Cursor) Outcome[*ast.StringLiteral] {
	kw := Attempt(c, kwString)
	if !kw.IsSuccess() {
		return Fail[*ast.StringLiteral](kw)
	}
	raw := MustMatch(c, word, "expected a string after `%s`", kw.Value().Lexeme)
	if !raw.IsSuccess() {
		return Fail[*ast.StringLiteral](raw)
	}

	var b strings.Builder
	escaped := false
	for _, r := range raw.Value() {
		switch {
		case escaped:
			v, ok := unescape(r)
			if !ok {
				return ThrowAt[*ast.StringLiteral](raw.Span(), "invalid or unsupported escape character %q", r)
			}
			b.WriteRune(v)
			escaped = false
		case r == '_':
			escaped = true
		default:
			b.WriteRune(r)
		}
	}
	if escaped {
		return ThrowAt[*ast.StringLiteral](raw.Span(), "invalid escape: `_` at the end of %q has no escape character", raw.Value())
	}

	return Finish(c, &ast.StringLiteral{
		Span:    c.Span(),
		Keyword: kw.Value(),
		Raw:     ast.Word{Span: raw.Span(), Text: raw.Value()},
		Value:   b.String(),
	})
}

// numberLiteral parses DIGITS ('.' DIGITS?)?. A word that starts with a digit
// and is anything else is an error.
func numberLiteral(c *Cursor) Outcome[*ast.NumberLiteral] {
	w := Attempt(c, word)
	if !w.IsSuccess() {
		return Fail[*ast.NumberLiteral](w)
	}
	raw := w.Value()
	if !isDigit(raw[0]) {
		return SoftMismatch[*ast.NumberLiteral]()
	}

	i := 0
	for i < len(raw) && isDigit(raw[i]) {
		i++
	}
	isFloat := false
	if i < len(raw) && raw[i] == '.' {
		isFloat = true
		i++
		for i < len(raw) && isDigit(raw[i]) {
			i++
		}
	}
	if i != len(raw) {
		return ThrowAt[*ast.NumberLiteral](w.Span(), "invalid number literal %q", raw)
	}

	value, err := decimal.NewFromString(strings.TrimSuffix(raw, "."))
	if err != nil {
		return ThrowAt[*ast.NumberLiteral](w.Span(), "invalid number literal %q: %v", raw, err)
	}

	return Finish(c, &ast.NumberLiteral{
		Span:    c.Span(),
		Raw:     raw,
		Value:   value,
		IsFloat: isFloat,
	})
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
