package parser

import (
	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/grammar"
)

// AtomicForm is one candidate production of an atomic expression.
type AtomicForm struct {
	Name string
	Rule Rule[ast.AtomicExpr]
}

// atomicForms is the dispatch order of atomic expressions. The order is part
// of the grammar:
//
//   - FnCall comes before Variable: both start with an identifier, and an
//     identifier followed by `can1` is always a call. Variable also refuses
//     an identifier followed by `can1`, so the rule holds in any order.
//   - Initialization (`han2`) and BracketExpr (`can1`) start with reserved
//     words, which never overlap an identifier.
//   - The literal forms start with a reserved word or a digit and overlap
//     nothing.
//
// It is filled in init because the forms refer back to atomicExpr.
var atomicForms []AtomicForm

func init() {
	atomicForms = []AtomicForm{
		{"CharLiteral", asAtomic(charLiteral)},
		{"StringLiteral", asAtomic(stringLiteral)},
		{"NumberLiteral", asAtomic(numberLiteral)},
		{"FnCall", asAtomic(fnCall)},
		{"Variable", asAtomic(variable)},
		{"UnaryExpr", asAtomic(unaryExpr)},
		{"Initialization", asAtomic(initialization)},
		{"BracketExpr", asAtomic(bracketExpr)},
	}
}

// AtomicForms returns the atomic expression forms in the order they are
// tried.
func AtomicForms() []AtomicForm {
	out := make([]AtomicForm, len(atomicForms))
	copy(out, atomicForms)
	return out
}

func asAtomic[T ast.AtomicExpr](rule Rule[T]) Rule[ast.AtomicExpr] {
	return Map(rule, func(v T) ast.AtomicExpr { return v })
}

// atomicExpr tries every atomic form in order.
func atomicExpr(c *Cursor) Outcome[ast.AtomicExpr] {
	alt := Alternate[ast.AtomicExpr](c)
	for _, form := range atomicForms {
		alt.OrTry(form.Rule)
	}
	return alt.Finish()
}

// fnCall parses `Ident can1 Arguments jie2`.
func fnCall(c *Cursor) Outcome[*ast.FnCall] {
	name := Attempt(c, ident)
	if !name.IsSuccess() {
		return Fail[*ast.FnCall](name)
	}
	open := Attempt(c, kwParameter)
	if !open.IsSuccess() {
		return Fail[*ast.FnCall](open)
	}
	if herr := c.descend("function call"); herr != nil {
		return Hard[*ast.FnCall](herr)
	}

	args := Attempt(c, arguments)
	if !args.IsSuccess() {
		return Fail[*ast.FnCall](args)
	}
	closing := MustMatch(c, kwEndOfBracket, "expected `%s` to close the call to %s",
		c.lexeme(grammar.TagEndOfBracket), name.Value().Name)
	if !closing.IsSuccess() {
		return Fail[*ast.FnCall](closing)
	}

	return Finish(c, &ast.FnCall{
		Span:  c.Span(),
		Name:  name.Value(),
		Open:  open.Value(),
		Args:  args.Value(),
		Close: closing.Value(),
	})
}

// variable parses a bare identifier that is not the head of a call.
func variable(c *Cursor) Outcome[*ast.Variable] {
	name := Attempt(c, ident)
	if !name.IsSuccess() {
		return name
	}
	if Lookahead(c, kwParameter) {
		return SoftMismatch[*ast.Variable]()
	}
	return name
}

// unaryExpr parses a unary operator followed by its operand.
func unaryExpr(c *Cursor) Outcome[*ast.UnaryExpr] {
	op := Attempt(c, operator)
	if !op.IsSuccess() {
		return Fail[*ast.UnaryExpr](op)
	}
	if !op.Value().IsUnary() {
		return ThrowAt[*ast.UnaryExpr](op.Span(),
			"expected an operand, found binary operator `%s`", op.Value().Symbol)
	}
	if herr := c.descend("unary expression"); herr != nil {
		return Hard[*ast.UnaryExpr](herr)
	}

	operand := MustMatch(c, atomicExpr, "expected an operand after `%s`", op.Value().Symbol)
	if !operand.IsSuccess() {
		return Fail[*ast.UnaryExpr](operand)
	}

	return Finish(c, &ast.UnaryExpr{
		Span:    c.Span(),
		Op:      op.Value(),
		Operand: operand.Value(),
	})
}

// initialization parses `han2 AtomicExpr* jie2`.
func initialization(c *Cursor) Outcome[*ast.Initialization] {
	open := Attempt(c, kwBlock)
	if !open.IsSuccess() {
		return Fail[*ast.Initialization](open)
	}
	if herr := c.descend("initialization"); herr != nil {
		return Hard[*ast.Initialization](herr)
	}

	var values []ast.AtomicExpr
	for {
		v, ok, herr := Optional(c, atomicExpr)
		if herr != nil {
			return Hard[*ast.Initialization](herr)
		}
		if !ok {
			break
		}
		values = append(values, v.Value)
	}

	closing := MustMatch(c, kwEndOfBracket, "expected `%s` to close the initialization",
		c.lexeme(grammar.TagEndOfBracket))
	if !closing.IsSuccess() {
		return Fail[*ast.Initialization](closing)
	}

	return Finish(c, &ast.Initialization{
		Span:   c.Span(),
		Open:   open.Value(),
		Values: values,
		Close:  closing.Value(),
	})
}

// bracketExpr parses `can1 Expr jie2`.
func bracketExpr(c *Cursor) Outcome[*ast.BracketExpr] {
	open := Attempt(c, kwParameter)
	if !open.IsSuccess() {
		return Fail[*ast.BracketExpr](open)
	}
	if herr := c.descend("bracket"); herr != nil {
		return Hard[*ast.BracketExpr](herr)
	}

	inner := MustMatch(c, expr, "expected an expression after `%s`", open.Value().Lexeme)
	if !inner.IsSuccess() {
		return Fail[*ast.BracketExpr](inner)
	}
	closing := MustMatch(c, kwEndOfBracket, "expected `%s` to close the bracket",
		c.lexeme(grammar.TagEndOfBracket))
	if !closing.IsSuccess() {
		return Fail[*ast.BracketExpr](closing)
	}

	return Finish(c, &ast.BracketExpr{
		Span:  c.Span(),
		Open:  open.Value(),
		Inner: inner.Value(),
		Close: closing.Value(),
	})
}
