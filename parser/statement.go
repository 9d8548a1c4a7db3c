package parser

import (
	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/grammar"
)

// Statement parsing.
//
// Statements are tried in this order:
//
//	FnCallStmt, VarStoreStmt, FnDefine, VarDefineStmt, If, While, Return, Comment, CodeBlock
//
// FnCallStmt and VarStoreStmt both start with an identifier; the word after
// it (`can1` or `wei2`) tells them apart. FnDefine and VarDefineStmt both
// start with a type and a name; FnDefine needs `can1` next. The remaining
// statements start with their own keyword.

// statement tries every statement form in order.
func statement(c *Cursor) Outcome[ast.Stmt] {
	return Alternate[ast.Stmt](c).
		OrTry(asStmt(fnCallStmt)).
		OrTry(asStmt(varStoreStmt)).
		OrTry(asStmt(fnDefine)).
		OrTry(asStmt(varDefineStmt)).
		OrTry(asStmt(ifStmt)).
		OrTry(asStmt(whileStmt)).
		OrTry(asStmt(returnStmt)).
		OrTry(asStmt(comment)).
		OrTry(asStmt(codeBlock)).
		Finish()
}

// item parses a top-level program item.
func item(c *Cursor) Outcome[ast.Item] {
	return Alternate[ast.Item](c).
		OrTry(asItem(comment)).
		OrTry(asItem(fnDefine)).
		Finish()
}

func asStmt[T ast.Stmt](rule Rule[T]) Rule[ast.Stmt] {
	return Map(rule, func(v T) ast.Stmt { return v })
}

func asItem[T ast.Item](rule Rule[T]) Rule[ast.Item] {
	return Map(rule, func(v T) ast.Item { return v })
}

// semicolon is the mandatory `fen1` ending a statement whose head matched.
func semicolon(c *Cursor, what string) Outcome[ast.Keyword] {
	return MustMatch(c, kwSemicolon, "expected `%s` after %s", c.lexeme(grammar.TagSemicolon), what)
}

// closeBracket is the mandatory `jie2` ending an opened construct.
func closeBracket(c *Cursor, what string) Outcome[ast.Keyword] {
	return MustMatch(c, kwEndOfBracket, "expected `%s` to close the %s", c.lexeme(grammar.TagEndOfBracket), what)
}

// comment parses the comment keyword and the rest of its line.
func comment(c *Cursor) Outcome[*ast.Comment] {
	kw := Attempt(c, kwComment)
	if !kw.IsSuccess() {
		return Fail[*ast.Comment](kw)
	}
	text := c.takeRestOfLine()

	return Finish(c, &ast.Comment{
		Span:    c.Span(),
		Keyword: kw.Value(),
		Text:    ast.Word{Span: text, Text: c.s.src.Text(text)},
	})
}

// fnCallStmt parses `FnCall fen1`.
func fnCallStmt(c *Cursor) Outcome[*ast.FnCallStmt] {
	call := Attempt(c, fnCall)
	if !call.IsSuccess() {
		return Fail[*ast.FnCallStmt](call)
	}
	semi := semicolon(c, "function call")
	if !semi.IsSuccess() {
		return Fail[*ast.FnCallStmt](semi)
	}

	return Finish(c, &ast.FnCallStmt{Span: c.Span(), Call: call.Value(), Semi: semi.Value()})
}

// varStoreStmt parses `Ident wei2 Expr fen1`.
func varStoreStmt(c *Cursor) Outcome[*ast.VarStoreStmt] {
	name := Attempt(c, ident)
	if !name.IsSuccess() {
		return Fail[*ast.VarStoreStmt](name)
	}
	assign := Attempt(c, kwAssign)
	if !assign.IsSuccess() {
		return Fail[*ast.VarStoreStmt](assign)
	}
	value := MustMatch(c, expr, "expected an expression after `%s`", assign.Value().Lexeme)
	if !value.IsSuccess() {
		return Fail[*ast.VarStoreStmt](value)
	}
	semi := semicolon(c, "assignment")
	if !semi.IsSuccess() {
		return Fail[*ast.VarStoreStmt](semi)
	}

	return Finish(c, &ast.VarStoreStmt{
		Span:   c.Span(),
		Name:   name.Value(),
		Assign: assign.Value(),
		Value:  value.Value(),
		Semi:   semi.Value(),
	})
}

// param parses `TypeDefine Ident`.
func param(c *Cursor) Outcome[*ast.Param] {
	t := Attempt(c, typeDefine)
	if !t.IsSuccess() {
		return Fail[*ast.Param](t)
	}
	name := MustMatch(c, ident, "expected a parameter name")
	if !name.IsSuccess() {
		return Fail[*ast.Param](name)
	}
	return Finish(c, &ast.Param{Span: c.Span(), Type: t.Value(), Name: name.Value()})
}

// params parses a possibly empty list of parameters separated by `fen1`.
func params(c *Cursor) Outcome[*ast.Params] {
	ps := &ast.Params{}

	first, ok, herr := Optional(c, param)
	if herr != nil {
		return Hard[*ast.Params](herr)
	}
	if ok {
		ps.Params = append(ps.Params, first.Value)
		for {
			semi, ok, herr := Optional(c, kwSemicolon)
			if herr != nil {
				return Hard[*ast.Params](herr)
			}
			if !ok {
				break
			}
			next := MustMatch(c, param, "expected a parameter after `%s`", semi.Value.Lexeme)
			if !next.IsSuccess() {
				return Fail[*ast.Params](next)
			}
			ps.Separators = append(ps.Separators, semi.Value)
			ps.Params = append(ps.Params, next.Value())
		}
	}

	ps.Span = c.Span()
	return Finish(c, ps)
}

// fnDefine parses `TypeDefine Ident can1 Params jie2 CodeBlock`.
func fnDefine(c *Cursor) Outcome[*ast.FnDefine] {
	t := Attempt(c, typeDefine)
	if !t.IsSuccess() {
		return Fail[*ast.FnDefine](t)
	}
	name := Attempt(c, ident)
	if !name.IsSuccess() {
		return Fail[*ast.FnDefine](name)
	}
	open := Attempt(c, kwParameter)
	if !open.IsSuccess() {
		return Fail[*ast.FnDefine](open)
	}

	ps := Attempt(c, params)
	if !ps.IsSuccess() {
		return Fail[*ast.FnDefine](ps)
	}
	closing := closeBracket(c, "parameter list of "+name.Value().Name)
	if !closing.IsSuccess() {
		return Fail[*ast.FnDefine](closing)
	}
	body := MustMatch(c, codeBlock, "expected the body of %s", name.Value().Name)
	if !body.IsSuccess() {
		return Fail[*ast.FnDefine](body)
	}

	return Finish(c, &ast.FnDefine{
		Span:   c.Span(),
		Type:   t.Value(),
		Name:   name.Value(),
		Open:   open.Value(),
		Params: ps.Value(),
		Close:  closing.Value(),
		Body:   body.Value(),
	})
}

// initializer parses `wei2 Expr`.
func initializer(c *Cursor) Outcome[*ast.Initializer] {
	assign := Attempt(c, kwAssign)
	if !assign.IsSuccess() {
		return Fail[*ast.Initializer](assign)
	}
	value := MustMatch(c, expr, "expected an expression after `%s`", assign.Value().Lexeme)
	if !value.IsSuccess() {
		return Fail[*ast.Initializer](value)
	}
	return Finish(c, &ast.Initializer{Span: c.Span(), Assign: assign.Value(), Value: value.Value()})
}

// varDefineStmt parses `TypeDefine Ident (wei2 Expr)? fen1`.
func varDefineStmt(c *Cursor) Outcome[*ast.VarDefineStmt] {
	t := Attempt(c, typeDefine)
	if !t.IsSuccess() {
		return Fail[*ast.VarDefineStmt](t)
	}
	name := Attempt(c, ident)
	if !name.IsSuccess() {
		return Fail[*ast.VarDefineStmt](name)
	}

	stmt := &ast.VarDefineStmt{Type: t.Value(), Name: name.Value()}
	initExpr, ok, herr := Optional(c, initializer)
	if herr != nil {
		return Hard[*ast.VarDefineStmt](herr)
	}
	if ok {
		stmt.Init = initExpr.Value
	}

	semi := semicolon(c, "variable definition")
	if !semi.IsSuccess() {
		return Fail[*ast.VarDefineStmt](semi)
	}
	stmt.Semi = semi.Value()
	stmt.Span = c.Span()
	return Finish(c, stmt)
}

// conditions parses `can1 Arguments jie2`.
func conditions(c *Cursor) Outcome[*ast.Conditions] {
	open := Attempt(c, kwParameter)
	if !open.IsSuccess() {
		return Fail[*ast.Conditions](open)
	}
	args := Attempt(c, arguments)
	if !args.IsSuccess() {
		return Fail[*ast.Conditions](args)
	}
	closing := closeBracket(c, "conditions")
	if !closing.IsSuccess() {
		return Fail[*ast.Conditions](closing)
	}
	return Finish(c, &ast.Conditions{
		Span:  c.Span(),
		Open:  open.Value(),
		Args:  args.Value(),
		Close: closing.Value(),
	})
}

// guarded parses the conditions and body that follow `ruo4` or `chong2`.
func guarded(c *Cursor, head ast.Keyword) (*ast.Conditions, *ast.CodeBlock, *HardError) {
	cond := MustMatch(c, conditions, "expected `%s` and conditions after `%s`",
		c.lexeme(grammar.TagParameter), head.Lexeme)
	if !cond.IsSuccess() {
		return nil, nil, cond.Err()
	}
	body := MustMatch(c, codeBlock, "expected a code block after the conditions of `%s`", head.Lexeme)
	if !body.IsSuccess() {
		return nil, nil, body.Err()
	}
	return cond.Value(), body.Value(), nil
}

// ifBranch parses `ruo4 Conditions CodeBlock`.
func ifBranch(c *Cursor) Outcome[*ast.IfBranch] {
	kw := Attempt(c, kwIf)
	if !kw.IsSuccess() {
		return Fail[*ast.IfBranch](kw)
	}
	cond, body, herr := guarded(c, kw.Value())
	if herr != nil {
		return Hard[*ast.IfBranch](herr)
	}
	return Finish(c, &ast.IfBranch{Span: c.Span(), If: kw.Value(), Cond: cond, Body: body})
}

// elseIfBranch parses `ze2 ruo4 Conditions CodeBlock`.
func elseIfBranch(c *Cursor) Outcome[*ast.IfBranch] {
	els := Attempt(c, kwElse)
	if !els.IsSuccess() {
		return Fail[*ast.IfBranch](els)
	}
	branch := Attempt(c, ifBranch)
	if !branch.IsSuccess() {
		return branch
	}

	b := branch.Value()
	kw := els.Value()
	b.Else = &kw
	b.Span = c.Span()
	return Finish(c, b)
}

// elseBranch parses `ze2 CodeBlock`.
func elseBranch(c *Cursor) Outcome[*ast.ElseBranch] {
	els := Attempt(c, kwElse)
	if !els.IsSuccess() {
		return Fail[*ast.ElseBranch](els)
	}
	body := MustMatch(c, codeBlock, "expected `%s` or a code block after `%s`",
		c.lexeme(grammar.TagIf), els.Value().Lexeme)
	if !body.IsSuccess() {
		return Fail[*ast.ElseBranch](body)
	}
	return Finish(c, &ast.ElseBranch{Span: c.Span(), Else: els.Value(), Body: body.Value()})
}

// ifStmt parses an if chain.
func ifStmt(c *Cursor) Outcome[*ast.If] {
	first := Attempt(c, ifBranch)
	if !first.IsSuccess() {
		return Fail[*ast.If](first)
	}
	stmt := &ast.If{Branches: []*ast.IfBranch{first.Value()}}

	for {
		b, ok, herr := Optional(c, elseIfBranch)
		if herr != nil {
			return Hard[*ast.If](herr)
		}
		if !ok {
			break
		}
		stmt.Branches = append(stmt.Branches, b.Value)
	}

	els, ok, herr := Optional(c, elseBranch)
	if herr != nil {
		return Hard[*ast.If](herr)
	}
	if ok {
		stmt.Else = els.Value
	}

	stmt.Span = c.Span()
	return Finish(c, stmt)
}

// whileStmt parses `chong2 Conditions CodeBlock`.
func whileStmt(c *Cursor) Outcome[*ast.While] {
	kw := Attempt(c, kwRepeat)
	if !kw.IsSuccess() {
		return Fail[*ast.While](kw)
	}
	cond, body, herr := guarded(c, kw.Value())
	if herr != nil {
		return Hard[*ast.While](herr)
	}
	return Finish(c, &ast.While{Span: c.Span(), Repeat: kw.Value(), Cond: cond, Body: body})
}

// returnStmt parses `fan3 Expr? fen1`.
func returnStmt(c *Cursor) Outcome[*ast.Return] {
	kw := Attempt(c, kwReturn)
	if !kw.IsSuccess() {
		return Fail[*ast.Return](kw)
	}
	stmt := &ast.Return{Keyword: kw.Value()}

	value, ok, herr := Optional(c, expr)
	if herr != nil {
		return Hard[*ast.Return](herr)
	}
	if ok {
		stmt.Value = value.Value
	}

	semi := semicolon(c, "return")
	if !semi.IsSuccess() {
		return Fail[*ast.Return](semi)
	}
	stmt.Semi = semi.Value()
	stmt.Span = c.Span()
	return Finish(c, stmt)
}

// codeBlock parses `han2 Statement* jie2`.
func codeBlock(c *Cursor) Outcome[*ast.CodeBlock] {
	open := Attempt(c, kwBlock)
	if !open.IsSuccess() {
		return Fail[*ast.CodeBlock](open)
	}
	if herr := c.descend("code block"); herr != nil {
		return Hard[*ast.CodeBlock](herr)
	}

	block := &ast.CodeBlock{Open: open.Value()}
	for {
		s, ok, herr := Optional(c, statement)
		if herr != nil {
			return Hard[*ast.CodeBlock](herr)
		}
		if !ok {
			break
		}
		block.Stmts = append(block.Stmts, s.Value)
	}

	closing := closeBracket(c, "code block")
	if !closing.IsSuccess() {
		return Fail[*ast.CodeBlock](closing)
	}
	block.Close = closing.Value()
	block.Span = c.Span()
	return Finish(c, block)
}

// program parses `Item*`. Trailing input is left for the driver to report.
func program(c *Cursor) Outcome[*ast.Program] {
	prog := &ast.Program{}
	for {
		it, ok, herr := Optional(c, item)
		if herr != nil {
			return Hard[*ast.Program](herr)
		}
		if !ok {
			break
		}
		prog.Items = append(prog.Items, it.Value)
	}
	prog.Span = c.Span()
	return Finish(c, prog)
}
