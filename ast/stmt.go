package ast

// Comment runs from the comment keyword to the end of the line.
//
// Example:
//
//	shi4 this line is ignored
type Comment struct {
	Span    Span
	Keyword Keyword
	Text    Word
}

// CodeBlock is a sequence of statements.
//
// Example:
//
//	han2
//		fan3 0 fen1
//	jie2
type CodeBlock struct {
	Span  Span
	Open  Keyword
	Stmts []Stmt
	Close Keyword
}

// Conditions is the bracketed argument list that guards an if or while.
type Conditions struct {
	Span  Span
	Open  Keyword
	Args  *Arguments
	Close Keyword
}

// FnCallStmt is a function call used as a statement.
//
// Example:
//
//	da3yin4 can1 chuan4 hi jie2 fen1
type FnCallStmt struct {
	Span Span
	Call *FnCall
	Semi Keyword
}

// VarStoreStmt assigns a new value to an existing variable.
//
// Example:
//
//	a wei2 a jia1 1 fen1
type VarStoreStmt struct {
	Span   Span
	Name   *Ident
	Assign Keyword
	Value  Expr
	Semi   Keyword
}

// Param is one declared function parameter.
type Param struct {
	Span Span
	Type *TypeDefine
	Name *Ident
}

// Params is a semicolon separated parameter list. An empty list has a zero
// length span just after the opening keyword.
type Params struct {
	Span       Span
	Params     []*Param
	Separators []Keyword
}

// FnDefine declares a function with its body.
//
// Example:
//
//	zheng3 jia1fa3 can1 zheng3 a fen1 zheng3 b jie2 han2
//		fan3 a jia1 b fen1
//	jie2
type FnDefine struct {
	Span   Span
	Type   *TypeDefine
	Name   *Ident
	Open   Keyword
	Params *Params
	Close  Keyword
	Body   *CodeBlock
}

// Initializer is the optional `wei2 Expr` part of a variable definition.
type Initializer struct {
	Span   Span
	Assign Keyword
	Value  Expr
}

// VarDefineStmt declares a variable, optionally with an initial value.
//
// Example:
//
//	she4 zheng3 a wei2 114514 fen1
type VarDefineStmt struct {
	Span Span
	Type *TypeDefine
	Name *Ident
	Init *Initializer
	Semi Keyword
}

// IfBranch is one guarded branch. Every branch but the first starts with the
// else keyword.
type IfBranch struct {
	Span Span
	Else *Keyword
	If   Keyword
	Cond *Conditions
	Body *CodeBlock
}

// ElseBranch is the trailing unguarded branch.
type ElseBranch struct {
	Span Span
	Else Keyword
	Body *CodeBlock
}

// If is a chain of guarded branches with an optional fallback.
//
// Example:
//
//	ruo4 can1 a da4 1 jie2 han2 jie2
//	ze2 ruo4 can1 a xiao3 1 jie2 han2 jie2
//	ze2 han2 jie2
type If struct {
	Span     Span
	Branches []*IfBranch
	Else     *ElseBranch
}

// While repeats its body while the conditions hold.
//
// Example:
//
//	chong2 can1 a xiao3 10 jie2 han2
//		a wei2 a jia1 1 fen1
//	jie2
type While struct {
	Span   Span
	Repeat Keyword
	Cond   *Conditions
	Body   *CodeBlock
}

// Return leaves the enclosing function, optionally with a value.
type Return struct {
	Span    Span
	Keyword Keyword
	Value   Expr
	Semi    Keyword
}

func (c *Comment) GetSpan() Span       { return c.Span }
func (b *CodeBlock) GetSpan() Span     { return b.Span }
func (c *Conditions) GetSpan() Span    { return c.Span }
func (s *FnCallStmt) GetSpan() Span    { return s.Span }
func (s *VarStoreStmt) GetSpan() Span  { return s.Span }
func (p *Param) GetSpan() Span         { return p.Span }
func (p *Params) GetSpan() Span        { return p.Span }
func (f *FnDefine) GetSpan() Span      { return f.Span }
func (i *Initializer) GetSpan() Span   { return i.Span }
func (s *VarDefineStmt) GetSpan() Span { return s.Span }
func (b *IfBranch) GetSpan() Span      { return b.Span }
func (b *ElseBranch) GetSpan() Span    { return b.Span }
func (s *If) GetSpan() Span            { return s.Span }
func (s *While) GetSpan() Span         { return s.Span }
func (s *Return) GetSpan() Span        { return s.Span }

func (*Comment) stmtNode()       {}
func (*CodeBlock) stmtNode()     {}
func (*FnCallStmt) stmtNode()    {}
func (*VarStoreStmt) stmtNode()  {}
func (*FnDefine) stmtNode()      {}
func (*VarDefineStmt) stmtNode() {}
func (*If) stmtNode()            {}
func (*While) stmtNode()         {}
func (*Return) stmtNode()        {}

func (*Comment) itemNode()  {}
func (*FnDefine) itemNode() {}
