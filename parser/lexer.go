package parser

import (
	"unicode"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/grammar"
)

// Lexemes are words: maximal runs of non-whitespace runes. Keyword and
// operator lookup always happens on a whole word, so `bu4` never matches the
// front of `bu4deng3` and `yu2` never matches `yu3`. A word that neither
// table knows is an identifier if it is spelled like one.

// word takes the next word.
func word(c *Cursor) Outcome[string] {
	c.skipSpace()
	span := c.takeWhile(scanWord)
	if span.Len() == 0 {
		return SoftMismatch[string]()
	}
	return Success(span, c.s.words.InternRunes(c.s.src.runes[span.Start:span.End]))
}

// keyword matches one word spelling tag.
func keyword(tag grammar.Tag) Rule[ast.Keyword] {
	return func(c *Cursor) Outcome[ast.Keyword] {
		w := Attempt(c, word)
		if !w.IsSuccess() {
			return Fail[ast.Keyword](w)
		}
		if got, ok := c.s.grammar.Keyword(w.Value()); !ok || got != tag {
			return SoftMismatch[ast.Keyword]()
		}
		return Finish(c, ast.Keyword{Span: w.Span(), Tag: tag, Lexeme: w.Value()})
	}
}

// keywordOf matches one word spelling any tag of class.
func keywordOf(class grammar.Class) Rule[ast.Keyword] {
	return func(c *Cursor) Outcome[ast.Keyword] {
		w := Attempt(c, word)
		if !w.IsSuccess() {
			return Fail[ast.Keyword](w)
		}
		tag, ok := c.s.grammar.Keyword(w.Value())
		if !ok || tag.Class() != class {
			return SoftMismatch[ast.Keyword]()
		}
		return Finish(c, ast.Keyword{Span: w.Span(), Tag: tag, Lexeme: w.Value()})
	}
}

var (
	kwBlock        = keyword(grammar.TagBlock)
	kwParameter    = keyword(grammar.TagParameter)
	kwEndOfBracket = keyword(grammar.TagEndOfBracket)
	kwSemicolon    = keyword(grammar.TagSemicolon)
	kwAssign       = keyword(grammar.TagAssign)
	kwChar         = keyword(grammar.TagChar)
	kwString       = keyword(grammar.TagString)
	kwComment      = keyword(grammar.TagComment)
	kwIf           = keyword(grammar.TagIf)
	kwElse         = keyword(grammar.TagElse)
	kwRepeat       = keyword(grammar.TagRepeat)
	kwReturn       = keyword(grammar.TagReturn)

	kwPrimitive = keywordOf(grammar.ClassPrimitiveType)
	kwDecorator = keywordOf(grammar.ClassDecorator)
)

// operator matches one word from the operator table.
func operator(c *Cursor) Outcome[ast.Operator] {
	w := Attempt(c, word)
	if !w.IsSuccess() {
		return Fail[ast.Operator](w)
	}
	op, ok := c.s.grammar.Operator(w.Value())
	if !ok {
		return SoftMismatch[ast.Operator]()
	}
	return Finish(c, ast.Operator{Span: w.Span(), Operator: op})
}

// binaryOperator matches an operator that joins two operands. A unary
// operator in that position is an error, not a mismatch.
func binaryOperator(c *Cursor) Outcome[ast.Operator] {
	op := Attempt(c, operator)
	if !op.IsSuccess() {
		return op
	}
	if op.Value().IsUnary() {
		return ThrowAt[ast.Operator](op.Span(),
			"operands must be joined by a binary operator, found unary `%s`", op.Value().Symbol)
	}
	return op
}

// ident matches a word that is spelled like an identifier and reserved by
// neither table.
func ident(c *Cursor) Outcome[*ast.Ident] {
	w := Attempt(c, word)
	if !w.IsSuccess() {
		return Fail[*ast.Ident](w)
	}
	name := w.Value()
	if !isIdent(name) || c.s.grammar.IsReserved(name) {
		return SoftMismatch[*ast.Ident]()
	}
	return Finish(c, &ast.Ident{Span: w.Span(), Name: name})
}

// isIdent reports whether s starts with a letter or `_` and continues with
// letters, digits and `_`.
func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || unicode.IsLetter(r):
		case i > 0 && unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}
