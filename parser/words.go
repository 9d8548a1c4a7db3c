package parser

import (
	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/grammar"
)

// WordKind is how the lexeme tables classify a word out of context.
type WordKind uint8

const (
	WordOther WordKind = iota
	WordKeyword
	WordOperator
	WordIdent
	WordNumber
)

func (k WordKind) String() string {
	switch k {
	case WordKeyword:
		return "KEYWORD"
	case WordOperator:
		return "OPERATOR"
	case WordIdent:
		return "IDENT"
	case WordNumber:
		return "NUMBER"
	default:
		return "WORD"
	}
}

// ScannedWord is one whitespace-delimited word of a source.
type ScannedWord struct {
	Kind WordKind
	Text string
	Span ast.Span
	Pos  ast.Position

	// Tag is set for keywords, Operator for operators.
	Tag      grammar.Tag
	Operator grammar.Operator
}

// Words splits src into words and classifies each one against cfg. The
// classification ignores context: the word after `shi4` or `chuan4` is
// reported as whatever it looks like on its own.
func Words(src *Source, cfg *grammar.Config) []ScannedWord {
	if cfg == nil {
		cfg = grammar.Default()
	}

	c := NewCursor(src, cfg, DefaultMaxDepth)
	var words []ScannedWord
	for {
		w := Attempt(c, word)
		if !w.IsSuccess() {
			return words
		}

		sw := ScannedWord{
			Text: w.Value(),
			Span: w.Span(),
			Pos:  src.Position(w.Span().Start),
		}
		if tag, ok := cfg.Keyword(sw.Text); ok {
			sw.Kind, sw.Tag = WordKeyword, tag
		} else if op, ok := cfg.Operator(sw.Text); ok {
			sw.Kind, sw.Operator = WordOperator, op
		} else if isDigit(sw.Text[0]) {
			sw.Kind = WordNumber
		} else if isIdent(sw.Text) {
			sw.Kind = WordIdent
		}
		words = append(words, sw)
	}
}
