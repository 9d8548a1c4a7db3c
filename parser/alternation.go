package parser

// Alternation tries candidate productions from one starting position, in the
// order OrTry is called. The first success or hard error decides the result;
// later candidates are skipped. Only a soft mismatch lets the next one run.
//
//	out := Alternate[ast.Stmt](c).
//		OrTry(fnCallStmt).
//		OrTry(varStoreStmt).
//		Finish()
type Alternation[T any] struct {
	c       *Cursor
	out     Outcome[T]
	decided bool
}

// Alternate starts an alternation at the cursor's position.
func Alternate[T any](c *Cursor) *Alternation[T] {
	return &Alternation[T]{c: c}
}

// OrTry attempts rule unless a decision was already reached.
func (a *Alternation[T]) OrTry(rule Rule[T]) *Alternation[T] {
	if a.decided {
		return a
	}
	out := Attempt(a.c, rule)
	if !out.IsSoft() {
		a.out = out
		a.decided = true
	}
	return a
}

// OrError turns "nothing matched" into a hard error at the next word. Use it
// only where one of the candidates must apply.
func (a *Alternation[T]) OrError(format string, args ...any) *Alternation[T] {
	if a.decided {
		return a
	}
	a.out = Hard[T](newHardError(ErrSyntax, a.c.nextWordSpan(), format, args...))
	a.decided = true
	return a
}

// Finish returns the decided outcome, or a soft mismatch if no candidate
// matched and none committed.
func (a *Alternation[T]) Finish() Outcome[T] {
	if !a.decided {
		return SoftMismatch[T]()
	}
	return a.out
}
