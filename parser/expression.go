package parser

import (
	"github.com/pin1yin1/pin1yin1/ast"
)

// Expression parsing by precedence climbing.
//
// Grammar:
//
//	Expr := AtomicExpr (BinaryOp AtomicExpr)*
//
// Operands and operators go onto two stacks in one pass. Before an operator
// is pushed, every stacked operator whose priority value is lower or equal
// is reduced first, so lower values bind tighter and equal priorities
// associate left to right. Whatever remains on the stacks is reduced once the
// operator run ends.
//
// With the default tables:
//
//	1 jia1 2 jian3 3        → (1 jia1 2) jian3 3
//	1 jia1 2 cheng2 3       → 1 jia1 (2 cheng2 3)
//	can1 1 jia1 2 jie2 cheng2 3 → (1 jia1 2) cheng2 3
func expr(c *Cursor) Outcome[ast.Expr] {
	first := Attempt(c, atomicExpr)
	if !first.IsSuccess() {
		return Fail[ast.Expr](first)
	}

	operands := []ast.Expr{first.Value()}
	var ops []ast.Operator

	reduce := func() {
		right := operands[len(operands)-1]
		left := operands[len(operands)-2]
		op := ops[len(ops)-1]
		operands = operands[:len(operands)-2]
		ops = ops[:len(ops)-1]

		operands = append(operands, &ast.Binary{
			Span:  left.GetSpan().Merge(right.GetSpan()),
			Left:  left,
			Op:    op,
			Right: right,
		})
	}

	for {
		op := Attempt(c, binaryOperator)
		if op.IsHard() {
			return Fail[ast.Expr](op)
		}
		if op.IsSoft() {
			break
		}

		operand := MustMatch(c, atomicExpr, "expected an operand after `%s`", op.Value().Symbol)
		if !operand.IsSuccess() {
			return Fail[ast.Expr](operand)
		}

		for len(ops) > 0 && ops[len(ops)-1].Priority <= op.Value().Priority {
			reduce()
		}

		operands = append(operands, operand.Value())
		ops = append(ops, op.Value())
	}

	for len(ops) > 0 {
		reduce()
	}

	return Finish(c, operands[0])
}

// arguments parses a possibly empty list of expressions separated by `fen1`.
func arguments(c *Cursor) Outcome[*ast.Arguments] {
	args := &ast.Arguments{}

	first, ok, herr := Optional(c, expr)
	if herr != nil {
		return Hard[*ast.Arguments](herr)
	}
	if !ok {
		args.Span = c.Span()
		return Finish(c, args)
	}
	args.Values = append(args.Values, first.Value)

	for {
		semi, ok, herr := Optional(c, kwSemicolon)
		if herr != nil {
			return Hard[*ast.Arguments](herr)
		}
		if !ok {
			break
		}

		next := MustMatch(c, expr, "expected an expression after `%s`", semi.Value.Lexeme)
		if !next.IsSuccess() {
			return Fail[*ast.Arguments](next)
		}
		args.Separators = append(args.Separators, semi.Value)
		args.Values = append(args.Values, next.Value())
	}

	args.Span = c.Span()
	return Finish(c, args)
}
