package ast

// Children returns the direct children of n in source order. Keywords,
// operators and raw words are returned as leaf nodes, so the first and last
// child of a composite node bound its span.
func Children(n Node) []Node {
	var out []Node
	add := func(nodes ...Node) {
		for _, c := range nodes {
			if c != nil {
				out = append(out, c)
			}
		}
	}

	switch n := n.(type) {
	case *Program:
		for _, it := range n.Items {
			add(it)
		}

	case *CharLiteral:
		add(n.Keyword, n.Raw)
	case *StringLiteral:
		add(n.Keyword, n.Raw)
	case *Arguments:
		for i, v := range n.Values {
			add(v)
			if i < len(n.Separators) {
				add(n.Separators[i])
			}
		}
	case *FnCall:
		add(n.Name, n.Open, n.Args, n.Close)
	case *UnaryExpr:
		add(n.Op, n.Operand)
	case *Initialization:
		add(n.Open)
		for _, v := range n.Values {
			add(v)
		}
		add(n.Close)
	case *BracketExpr:
		add(n.Open, n.Inner, n.Close)
	case *Binary:
		add(n.Left, n.Op, n.Right)

	case *Comment:
		add(n.Keyword, n.Text)
	case *CodeBlock:
		add(n.Open)
		for _, s := range n.Stmts {
			add(s)
		}
		add(n.Close)
	case *Conditions:
		add(n.Open, n.Args, n.Close)
	case *FnCallStmt:
		add(n.Call, n.Semi)
	case *VarStoreStmt:
		add(n.Name, n.Assign, n.Value, n.Semi)
	case *Param:
		add(n.Type, n.Name)
	case *Params:
		for i, p := range n.Params {
			add(p)
			if i < len(n.Separators) {
				add(n.Separators[i])
			}
		}
	case *FnDefine:
		add(n.Type, n.Name, n.Open, n.Params, n.Close, n.Body)
	case *Initializer:
		add(n.Assign, n.Value)
	case *VarDefineStmt:
		add(n.Type, n.Name)
		if n.Init != nil {
			add(n.Init)
		}
		add(n.Semi)
	case *IfBranch:
		if n.Else != nil {
			add(*n.Else)
		}
		add(n.If, n.Cond, n.Body)
	case *ElseBranch:
		add(n.Else, n.Body)
	case *If:
		for _, b := range n.Branches {
			add(b)
		}
		if n.Else != nil {
			add(n.Else)
		}
	case *While:
		add(n.Repeat, n.Cond, n.Body)
	case *Return:
		add(n.Keyword, n.Value, n.Semi)

	case *Decorator:
		add(n.Keyword)
		if n.Size != nil {
			add(n.Size)
		}
	case *TypeDefine:
		for _, d := range n.Decorators {
			add(d)
		}
		if n.Primitive != nil {
			add(*n.Primitive)
		}
		if n.Named != nil {
			add(n.Named)
		}
	}

	return out
}

// Inspect traverses the tree depth-first in source order, calling f for each
// node. If f returns false the children of that node are skipped.
func Inspect(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	for _, c := range Children(n) {
		Inspect(c, f)
	}
}

// IsLeaf reports whether n never has children.
func IsLeaf(n Node) bool {
	switch n.(type) {
	case Keyword, Word, Operator, *Ident, *NumberLiteral:
		return true
	}
	return false
}
