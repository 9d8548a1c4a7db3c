package parser

import (
	"github.com/pin1yin1/pin1yin1/ast"
)

// decorator parses one type decorator. Array and width decorators are
// followed by an integer size.
func decorator(c *Cursor) Outcome[*ast.Decorator] {
	kw := Attempt(c, kwDecorator)
	if !kw.IsSuccess() {
		return Fail[*ast.Decorator](kw)
	}

	d := &ast.Decorator{Keyword: kw.Value()}
	if kw.Value().Tag.TakesSize() {
		size := MustMatch(c, numberLiteral, "expected a size after `%s`", kw.Value().Lexeme)
		if !size.IsSuccess() {
			return Fail[*ast.Decorator](size)
		}
		if size.Value().IsFloat {
			return ThrowAt[*ast.Decorator](size.Span(), "size of `%s` must be an integer, got %s",
				kw.Value().Lexeme, size.Value().Raw)
		}
		d.Size = size.Value()
	}

	d.Span = c.Span()
	return Finish(c, d)
}

// typeDefine parses `Decorator* (PrimitiveType | Ident)`.
func typeDefine(c *Cursor) Outcome[*ast.TypeDefine] {
	t := &ast.TypeDefine{}

	for {
		d, ok, herr := Optional(c, decorator)
		if herr != nil {
			return Hard[*ast.TypeDefine](herr)
		}
		if !ok {
			break
		}
		t.Decorators = append(t.Decorators, d.Value)
	}

	if prim, ok, _ := Optional(c, kwPrimitive); ok {
		kw := prim.Value
		t.Primitive = &kw
	} else if name, ok, _ := Optional(c, ident); ok {
		t.Named = name.Value
	} else if len(t.Decorators) > 0 {
		span := c.nextWordSpan()
		c.pos = span.Start
		return Hard[*ast.TypeDefine](newHardError(ErrSyntax, span, "expected a type after decorators"))
	} else {
		return SoftMismatch[*ast.TypeDefine]()
	}

	t.Span = c.Span()
	return Finish(c, t)
}
