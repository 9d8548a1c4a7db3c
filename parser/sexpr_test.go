package parser

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/pin1yin1/pin1yin1/ast"
)

// sexpr renders an expression with its grouping made explicit.
func sexpr(e ast.Expr) string {
	switch e := e.(type) {
	case *ast.Binary:
		return fmt.Sprintf("(%s %s %s)", sexpr(e.Left), e.Op.Symbol, sexpr(e.Right))
	case *ast.UnaryExpr:
		return fmt.Sprintf("(%s %s)", e.Op.Symbol, sexpr(e.Operand))
	case *ast.BracketExpr:
		return "[" + sexpr(e.Inner) + "]"
	case *ast.FnCall:
		args := make([]string, len(e.Args.Values))
		for i, v := range e.Args.Values {
			args[i] = sexpr(v)
		}
		return e.Name.Name + "(" + strings.Join(args, ", ") + ")"
	case *ast.Initialization:
		values := make([]string, len(e.Values))
		for i, v := range e.Values {
			values[i] = sexpr(v)
		}
		return "{" + strings.Join(values, " ") + "}"
	case *ast.Ident:
		return e.Name
	case *ast.NumberLiteral:
		return e.Raw
	case *ast.CharLiteral:
		return fmt.Sprintf("%q", e.Value)
	case *ast.StringLiteral:
		return fmt.Sprintf("%q", e.Value)
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

func mustParseExpr(t testing.TB, src string, opts ...Option) ast.Expr {
	t.Helper()
	e, err := ParseExpr(context.Background(), src, opts...)
	assert.NoError(t, err)
	return e
}

func parseErr(t testing.TB, err error) *ParseError {
	t.Helper()
	assert.Error(t, err)
	perr, ok := err.(*ParseError)
	assert.True(t, ok, "expected *ParseError, got %T: %v", err, err)
	return perr
}

// checkSpans asserts that every composite node below the root spans exactly
// its children and that every keyword span covers its own lexeme.
func checkSpans(t testing.TB, src *Source, root ast.Node) {
	t.Helper()
	ast.Inspect(root, func(n ast.Node) bool {
		span := n.GetSpan()
		assert.True(t, span.Start <= span.End, "%T has inverted span %s", n, span)
		assert.True(t, span.End <= src.Len(), "%T span %s past end", n, span)

		if kw, ok := n.(ast.Keyword); ok {
			assert.Equal(t, kw.Lexeme, src.Text(span))
		}
		if id, ok := n.(*ast.Ident); ok {
			assert.Equal(t, id.Name, src.Text(span))
		}

		children := ast.Children(n)
		if len(children) == 0 {
			return true
		}
		spans := make([]ast.Span, len(children))
		for i, c := range children {
			spans[i] = c.GetSpan()
			assert.True(t, span.Contains(spans[i]), "%T %s does not contain child %T %s", n, span, c, spans[i])
			if i > 0 {
				assert.True(t, spans[i-1].End <= spans[i].Start, "children of %T overlap or are out of order", n)
			}
		}
		if _, isRoot := n.(*ast.Program); !isRoot {
			assert.Equal(t, span, ast.MergeSpans(spans...), "%T span is not the merge of its children", n)
		}
		return true
	})
}
