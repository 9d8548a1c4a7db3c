package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pin1yin1/pin1yin1/ast"
)

// Tree writes an outline of root, one node per line, indented by depth:
//
//	Program 0..42
//	  FnDefine 0..42
//	    TypeDefine 0..6
//	      Keyword integer "zheng3" 0..6
//
// Leaves carry the text they were parsed from.
func (f *Formatter) Tree(root ast.Node, w io.Writer) error {
	var buf strings.Builder
	writeTree(&buf, root, 0)
	_, err := io.WriteString(w, buf.String())
	return err
}

func writeTree(buf *strings.Builder, n ast.Node, depth int) {
	buf.WriteString(strings.Repeat("  ", depth))
	buf.WriteString(nodeName(n))
	if detail := nodeDetail(n); detail != "" {
		buf.WriteByte(' ')
		buf.WriteString(detail)
	}
	buf.WriteByte(' ')
	buf.WriteString(n.GetSpan().String())
	buf.WriteByte('\n')

	for _, c := range ast.Children(n) {
		writeTree(buf, c, depth+1)
	}
}

func nodeName(n ast.Node) string {
	name := fmt.Sprintf("%T", n)
	name = strings.TrimPrefix(name, "*")
	return strings.TrimPrefix(name, "ast.")
}

func nodeDetail(n ast.Node) string {
	switch n := n.(type) {
	case ast.Keyword:
		return fmt.Sprintf("%s %q", n.Tag, n.Lexeme)
	case ast.Operator:
		return fmt.Sprintf("%s %q", n.Op, n.Symbol)
	case ast.Word:
		return fmt.Sprintf("%q", n.Text)
	case *ast.Ident:
		return fmt.Sprintf("%q", n.Name)
	case *ast.NumberLiteral:
		return n.Raw
	case *ast.CharLiteral:
		return fmt.Sprintf("%q", n.Value)
	case *ast.StringLiteral:
		return fmt.Sprintf("%q", n.Value)
	}
	return ""
}
