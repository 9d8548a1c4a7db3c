// Package ast declares the types used to represent syntax trees for Pin1Yin1
// programs.
//
// Every node records the exact Span of source text it was parsed from. A
// composite node's span is the merge of its children's spans, never wider and
// never narrower, so downstream tools can point at any node with only the
// source and the node's offsets. The tree is created by the parser package and
// is never rewritten after parsing.
package ast

import (
	"github.com/pin1yin1/pin1yin1/grammar"
)

// Node is implemented by every syntax tree node.
type Node interface {
	GetSpan() Span
}

// Expr is a full expression: an atomic form or a binary operation.
type Expr interface {
	Node
	exprNode()
}

// AtomicExpr is an irreducible expression form that binary operators join.
type AtomicExpr interface {
	Expr
	atomicNode()
}

// Stmt is a statement inside a code block.
type Stmt interface {
	Node
	stmtNode()
}

// Item is a top-level program item.
type Item interface {
	Stmt
	itemNode()
}

// Program is the root of a parsed source file. Unlike every other node, its
// span covers the whole input, including surrounding whitespace.
type Program struct {
	Span  Span
	Items []Item
}

func (p *Program) GetSpan() Span { return p.Span }

// Keyword is a reserved word, recorded with the tag it was matched as.
type Keyword struct {
	Span   Span
	Tag    grammar.Tag
	Lexeme string
}

func (k Keyword) GetSpan() Span { return k.Span }

// Word is a raw source word whose meaning depends on the node holding it,
// such as the payload of a character or string literal.
type Word struct {
	Span Span
	Text string
}

func (w Word) GetSpan() Span { return w.Span }

// Operator is an operator occurrence together with its table entry.
type Operator struct {
	Span Span
	grammar.Operator
}

func (o Operator) GetSpan() Span { return o.Span }

// Ident is a user chosen name. As an expression it is a variable reference.
//
// Example:
//
//	han2shu41
type Ident struct {
	Span Span
	Name string
}

func (i *Ident) GetSpan() Span { return i.Span }
func (*Ident) exprNode()       {}
func (*Ident) atomicNode()     {}

// Variable is an identifier used as a value.
type Variable = Ident
