package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/pin1yin1/pin1yin1/ast"
)

func newTestCursor(text string) *Cursor {
	return NewCursor(NewSource("", text), nil, 0)
}

func TestAttempt(t *testing.T) {
	t.Run("SoftMismatchKeepsPosition", func(t *testing.T) {
		c := newTestCursor("  han2 x")

		out := Attempt(c, kwParameter)
		assert.True(t, out.IsSoft())
		assert.Equal(t, 0, c.Pos())
		_, marked := c.Mark()
		assert.False(t, marked)
	})

	t.Run("SoftMismatchSyncsScanCache", func(t *testing.T) {
		c := newTestCursor("  han2 x")

		Attempt(c, kwParameter)
		assert.Equal(t, scanWindow{first: 0, final: 2}, c.cache[scanSpace])
		assert.Equal(t, scanWindow{first: 2, final: 6}, c.cache[scanWord])

		// The retry is served from the cached boundaries.
		c.cache[scanWord].final = 5
		out := Attempt(c, kwBlock)
		assert.True(t, out.IsSoft(), "a cache hit sees the word as `han`")
		c.cache[scanWord].final = 6
		out = Attempt(c, kwBlock)
		assert.True(t, out.IsSuccess())
		assert.Equal(t, ast.Span{Start: 2, End: 6}, out.Span())
	})

	t.Run("SuccessAdvancesAndMarks", func(t *testing.T) {
		c := newTestCursor("  han2 x")

		assert.True(t, Attempt(c, kwBlock).IsSuccess())
		assert.Equal(t, 6, c.Pos())
		mark, ok := c.Mark()
		assert.True(t, ok)
		assert.Equal(t, 2, mark)

		// A second success extends the attempt but keeps the first mark.
		name := Attempt(c, ident)
		assert.True(t, name.IsSuccess())
		assert.Equal(t, "x", name.Value().Name)
		assert.Equal(t, ast.Span{Start: 2, End: 8}, c.Span())
	})

	t.Run("HardErrorMovesToFailure", func(t *testing.T) {
		c := newTestCursor("wen2 ab")

		out := Attempt(c, charLiteral)
		assert.True(t, out.IsHard())
		assert.Equal(t, ast.Span{Start: 5, End: 7}, out.Err().Span)
		assert.Equal(t, 7, c.Pos())
		_, marked := c.Mark()
		assert.False(t, marked)
	})

	t.Run("DepthIsRestored", func(t *testing.T) {
		c := newTestCursor("can1 1 jie2")

		out := Attempt(c, bracketExpr)
		assert.True(t, out.IsSuccess())
		assert.Equal(t, 0, c.Depth())
	})
}

func TestBacktrackingIsSideEffectFree(t *testing.T) {
	// FnCallStmt matches `a` and then gives up on `wei2`; VarStoreStmt must
	// see the cursor exactly as it was.
	c := newTestCursor("a wei2 1 fen1")

	out := Attempt(c, statement)
	assert.True(t, out.IsSuccess())
	store, ok := out.Value().(*ast.VarStoreStmt)
	assert.True(t, ok, "expected *ast.VarStoreStmt, got %T", out.Value())
	assert.Equal(t, "a", store.Name.Name)
	assert.Equal(t, ast.Span{Start: 0, End: 1}, store.Name.Span)
	assert.Equal(t, ast.Span{Start: 0, End: 13}, store.Span)
}

func TestMustMatch(t *testing.T) {
	c := newTestCursor("  jia1 x")

	out := MustMatch(c, kwParameter, "expected `%s`", "can1")
	assert.True(t, out.IsHard())
	assert.Equal(t, ErrSyntax, out.Err().Kind)
	assert.Equal(t, "expected `can1`", out.Err().Message)
	assert.Equal(t, ast.Span{Start: 2, End: 6}, out.Err().Span)
	assert.Equal(t, 2, c.Pos())

	t.Run("AtEnd", func(t *testing.T) {
		c := newTestCursor("han2  ")
		Attempt(c, kwBlock)

		out := MustMatch(c, kwEndOfBracket, "expected `jie2`")
		assert.True(t, out.IsHard())
		assert.Equal(t, ast.Span{Start: 6, End: 6}, out.Err().Span)
	})
}

func TestOptionalAndLookahead(t *testing.T) {
	c := newTestCursor("fen1 jie2")

	assert.True(t, Lookahead(c, kwSemicolon))
	assert.Equal(t, 0, c.Pos())

	_, ok, herr := Optional(c, kwEndOfBracket)
	assert.False(t, ok)
	assert.Zero(t, herr)
	assert.Equal(t, 0, c.Pos())

	tok, ok, herr := Optional(c, kwSemicolon)
	assert.True(t, ok)
	assert.Zero(t, herr)
	assert.Equal(t, "fen1", tok.Value.Lexeme)
	assert.Equal(t, 4, c.Pos())

	t.Run("HardErrorPassesThrough", func(t *testing.T) {
		c := newTestCursor("chuan4 ab_")
		_, ok, herr := Optional(c, stringLiteral)
		assert.False(t, ok)
		assert.NotZero(t, herr)
	})
}

func TestOutcome(t *testing.T) {
	var zero Outcome[int]
	assert.True(t, zero.IsSoft())
	assert.Equal(t, "SoftMismatch", zero.String())

	ok := Success(ast.Span{Start: 1, End: 3}, 42)
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, 42, ok.Value())
	assert.Equal(t, "Success(1..3, 42)", ok.String())

	bad := Hard[int](newHardError(ErrSyntax, ast.Span{Start: 4, End: 5}, "boom"))
	assert.True(t, bad.IsHard())
	assert.Equal(t, `HardError(4..5, "boom")`, bad.String())

	assert.True(t, Fail[string](bad).IsHard())
	assert.True(t, Fail[string](zero).IsSoft())
	assert.Panics(t, func() { Fail[string](ok) })
}

func TestDescend(t *testing.T) {
	c := NewCursor(NewSource("", "x"), nil, 2)

	assert.Zero(t, c.descend("a"))
	assert.Zero(t, c.descend("b"))
	herr := c.descend("c")
	assert.NotZero(t, herr)
	assert.Equal(t, ErrNestingTooDeep, herr.Kind)
	assert.Equal(t, "c nested too deeply (limit 2)", herr.Message)
}

func TestScanCache(t *testing.T) {
	c := newTestCursor("bu4deng3 x")

	end := c.scan(scanWord)
	assert.Equal(t, 8, end)

	// A scan from inside the cached run is served from the cache.
	c.pos = 3
	c.cache[scanWord].final = 99
	assert.Equal(t, 99, c.scan(scanWord))

	// Each class has its own window.
	c.pos = 8
	assert.Equal(t, 9, c.scan(scanSpace))
	assert.Equal(t, scanWindow{first: 0, final: 99}, c.cache[scanWord])
}

func TestTakeRestOfLine(t *testing.T) {
	c := newTestCursor("shi4   hello  world  \nfan3")
	Attempt(c, kwComment)

	span := c.takeRestOfLine()
	assert.Equal(t, "hello  world", c.Source().Text(span))

	c = newTestCursor("shi4   \nfan3")
	Attempt(c, kwComment)
	span = c.takeRestOfLine()
	assert.Equal(t, ast.Span{Start: 4, End: 4}, span)
	assert.Equal(t, 4, c.Pos())
}

func TestInterner(t *testing.T) {
	in := NewInterner(4)
	a := in.InternRunes([]rune("jia1"))
	b := in.Intern("jia1")
	assert.Equal(t, a, b)
	assert.Equal(t, 1, in.Size())

	in.Reset()
	assert.Equal(t, 0, in.Size())
}
