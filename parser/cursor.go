package parser

import (
	"unicode"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/grammar"
)

// session is the read-only state shared by every copy of a cursor during one
// parse.
type session struct {
	src      *Source
	grammar  *grammar.Config
	maxDepth int
	words    *Interner
}

// scanClass selects the predicate of a maximal-run scan. Classes are values
// rather than functions so the scan cache can tell whether a cached window
// was produced by the same predicate.
type scanClass uint8

const (
	scanNone  scanClass = iota
	scanSpace           // any whitespace
	scanWord            // anything but whitespace

	scanClasses
)

func (k scanClass) match(r rune) bool {
	switch k {
	case scanSpace:
		return unicode.IsSpace(r)
	case scanWord:
		return !unicode.IsSpace(r)
	default:
		return false
	}
}

// scanWindow is the last maximal run scanned for one class: src[first:final]
// all belong to the class and src[final] does not. A run requested from any
// offset inside the window ends at final.
type scanWindow struct {
	first int
	final int
}

// scanCache keeps one window per class, so skipping the whitespace before a
// word does not evict the word itself.
type scanCache [scanClasses]scanWindow

func newScanCache() scanCache {
	var sc scanCache
	for i := range sc {
		sc[i] = scanWindow{first: -1, final: -1}
	}
	return sc
}

// Cursor is the mutable parse state. It is a small value: snapshot and
// restore are plain copies and never touch the source.
type Cursor struct {
	s     *session
	pos   int
	mark  int // start of the current attempt, -1 when unset
	cache scanCache
	depth int
}

// NewCursor returns a cursor at the start of src.
func NewCursor(src *Source, cfg *grammar.Config, maxDepth int) *Cursor {
	if cfg == nil {
		cfg = grammar.Default()
	}
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Cursor{
		s: &session{
			src:      src,
			grammar:  cfg,
			maxDepth: maxDepth,
			words:    NewInterner(64),
		},
		mark:  -1,
		cache: newScanCache(),
	}
}

// Pos returns the current rune offset.
func (c *Cursor) Pos() int { return c.pos }

// Mark returns the start of the current attempt, if one has been taken.
func (c *Cursor) Mark() (int, bool) { return c.mark, c.mark >= 0 }

// Depth returns the current nesting depth.
func (c *Cursor) Depth() int { return c.depth }

// Source returns the source being parsed.
func (c *Cursor) Source() *Source { return c.s.src }

// Grammar returns the tables the cursor matches against.
func (c *Cursor) Grammar() *grammar.Config { return c.s.grammar }

// AtEnd reports whether only whitespace remains.
func (c *Cursor) AtEnd() bool {
	tmp := *c
	tmp.skipSpace()
	return tmp.pos >= len(c.s.src.runes)
}

// scan returns the end of the maximal run of class starting at pos.
func (c *Cursor) scan(k scanClass) int {
	if w := c.cache[k]; w.first >= 0 && w.first <= c.pos && c.pos <= w.final {
		return w.final
	}

	runes := c.s.src.runes
	end := c.pos
	for end < len(runes) && k.match(runes[end]) {
		end++
	}
	c.cache[k] = scanWindow{first: c.pos, final: end}
	return end
}

// skipWhile advances past the maximal run of class.
func (c *Cursor) skipWhile(k scanClass) {
	c.pos = c.scan(k)
}

// skipSpace advances past whitespace.
func (c *Cursor) skipSpace() {
	c.skipWhile(scanSpace)
}

// takeWhile advances past the maximal run of class and returns its span. It
// marks the start of the current attempt if no mark is set yet.
func (c *Cursor) takeWhile(k scanClass) ast.Span {
	start := c.pos
	if c.mark < 0 {
		c.mark = start
	}
	c.skipWhile(k)
	return ast.Span{Start: start, End: c.pos}
}

// takeRestOfLine takes the rest of the current line with surrounding blanks
// trimmed. An empty remainder yields a zero length span at the cursor and
// leaves it in place.
func (c *Cursor) takeRestOfLine() ast.Span {
	runes := c.s.src.runes

	start := c.pos
	for start < len(runes) && runes[start] != '\n' && unicode.IsSpace(runes[start]) {
		start++
	}
	end := start
	for end < len(runes) && runes[end] != '\n' {
		end++
	}
	for end > start && unicode.IsSpace(runes[end-1]) {
		end--
	}
	if end == start {
		return ast.Span{Start: c.pos, End: c.pos}
	}

	if c.mark < 0 {
		c.mark = start
	}
	c.pos = end
	return ast.Span{Start: start, End: end}
}

// Span returns the text taken by the current attempt. An attempt that took
// nothing has a zero length span at the cursor.
func (c *Cursor) Span() ast.Span {
	if c.mark < 0 {
		return ast.Span{Start: c.pos, End: c.pos}
	}
	return ast.Span{Start: c.mark, End: c.pos}
}

// nextWordSpan returns the span of the next word without moving the cursor.
// At the end of input it is a zero length span at the end.
func (c *Cursor) nextWordSpan() ast.Span {
	tmp := *c
	tmp.skipSpace()
	start := tmp.pos
	end := tmp.scan(scanWord)
	c.cache = tmp.cache
	return ast.Span{Start: start, End: end}
}

// descend enters one nesting level. The counter lives in the cursor copy, so
// leaving the attempt that entered the level restores it.
func (c *Cursor) descend(what string) *HardError {
	c.depth++
	if c.depth > c.s.maxDepth {
		return newHardError(ErrNestingTooDeep, c.Span(),
			"%s nested too deeply (limit %d)", what, c.s.maxDepth)
	}
	return nil
}

// lexeme returns the canonical spelling of tag for messages.
func (c *Cursor) lexeme(tag grammar.Tag) string {
	if l := c.s.grammar.Lexeme(tag); l != "" {
		return l
	}
	return tag.String()
}
