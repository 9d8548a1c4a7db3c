package ast

import (
	"github.com/pin1yin1/pin1yin1/grammar"
)

// Decorator modifies the type that follows it. Array and width decorators
// carry a size.
//
// Example:
//
//	she4
//	zu3 16
type Decorator struct {
	Span    Span
	Keyword Keyword
	Size    *NumberLiteral
}

// Tag returns the decorator kind.
func (d *Decorator) Tag() grammar.Tag { return d.Keyword.Tag }

// TypeDefine names a type: any number of decorators, then either a primitive
// type keyword or a user type name. Exactly one of Primitive and Named is set.
//
// Example:
//
//	she4 zhi3 zheng3
//	zu3 4 dian3
type TypeDefine struct {
	Span       Span
	Decorators []*Decorator
	Primitive  *Keyword
	Named      *Ident
}

// IsPrimitive reports whether the base type is a built in primitive.
func (t *TypeDefine) IsPrimitive() bool { return t.Primitive != nil }

// HasDecorator reports whether any decorator of the given kind is applied.
func (t *TypeDefine) HasDecorator(tag grammar.Tag) bool {
	for _, d := range t.Decorators {
		if d.Keyword.Tag == tag {
			return true
		}
	}
	return false
}

func (d *Decorator) GetSpan() Span  { return d.Span }
func (t *TypeDefine) GetSpan() Span { return t.Span }
