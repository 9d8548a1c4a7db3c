package ast

import (
	"github.com/shopspring/decimal"
)

// CharLiteral is a single character. The payload is one rune, or `_`
// followed by an escape letter.
//
// Example:
//
//	wen2 a
//	wen2 _n
type CharLiteral struct {
	Span    Span
	Keyword Keyword
	Raw     Word
	Value   rune
}

// StringLiteral is a single word of text. `_` starts an escape: `__` is an
// underscore, `_t` a tab, `_n` a newline and `_s` a space.
//
// Example:
//
//	chuan4 hello_sworld
type StringLiteral struct {
	Span    Span
	Keyword Keyword
	Raw     Word
	Value   string
}

// NumberLiteral is an unsigned integer or decimal number. The value is kept
// exactly as written.
//
// Example:
//
//	114514
//	1919.810
type NumberLiteral struct {
	Span    Span
	Raw     string
	Value   decimal.Decimal
	IsFloat bool
}

// Arguments is a semicolon separated list of expressions. An empty list has a
// zero length span at the point where the first argument was expected.
type Arguments struct {
	Span       Span
	Values     []Expr
	Separators []Keyword
}

// FnCall calls a function by name.
//
// Example:
//
//	han2shu41 can1 1919810 fen1 chuan4 acminoac jie2
type FnCall struct {
	Span  Span
	Name  *Ident
	Open  Keyword
	Args  *Arguments
	Close Keyword
}

// UnaryExpr applies a prefix operator to an atomic operand.
//
// Example:
//
//	fei1 fei1 zhen1
type UnaryExpr struct {
	Span    Span
	Op      Operator
	Operand AtomicExpr
}

// Initialization builds an aggregate value from atomic expressions.
//
// Example:
//
//	han2 1 1 4 5 1 4 jie2
type Initialization struct {
	Span   Span
	Open   Keyword
	Values []AtomicExpr
	Close  Keyword
}

// BracketExpr groups an expression to override operator priority.
//
// Example:
//
//	can1 1 jia1 2 jie2 cheng2 3
type BracketExpr struct {
	Span  Span
	Open  Keyword
	Inner Expr
	Close Keyword
}

// Binary joins two expressions with a binary operator.
type Binary struct {
	Span  Span
	Left  Expr
	Op    Operator
	Right Expr
}

func (a *Arguments) GetSpan() Span      { return a.Span }
func (c *CharLiteral) GetSpan() Span    { return c.Span }
func (s *StringLiteral) GetSpan() Span  { return s.Span }
func (n *NumberLiteral) GetSpan() Span  { return n.Span }
func (f *FnCall) GetSpan() Span         { return f.Span }
func (u *UnaryExpr) GetSpan() Span      { return u.Span }
func (i *Initialization) GetSpan() Span { return i.Span }
func (b *BracketExpr) GetSpan() Span    { return b.Span }
func (b *Binary) GetSpan() Span         { return b.Span }

func (*CharLiteral) exprNode()    {}
func (*StringLiteral) exprNode()  {}
func (*NumberLiteral) exprNode()  {}
func (*FnCall) exprNode()         {}
func (*UnaryExpr) exprNode()      {}
func (*Initialization) exprNode() {}
func (*BracketExpr) exprNode()    {}
func (*Binary) exprNode()         {}

func (*CharLiteral) atomicNode()    {}
func (*StringLiteral) atomicNode()  {}
func (*NumberLiteral) atomicNode()  {}
func (*FnCall) atomicNode()         {}
func (*UnaryExpr) atomicNode()      {}
func (*Initialization) atomicNode() {}
func (*BracketExpr) atomicNode()    {}
