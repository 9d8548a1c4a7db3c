package parser

import (
	"fmt"

	"github.com/pin1yin1/pin1yin1/ast"
)

// Token is a parsed value with the exact span of text it came from.
type Token[T any] struct {
	Span  ast.Span
	Value T
}

type outcomeKind uint8

const (
	kindSoftMismatch outcomeKind = iota
	kindSuccess
	kindHardError
)

// Outcome is the result of one parse attempt: exactly one of success, soft
// mismatch ("this production does not apply here") or hard error ("this
// production started and is malformed"). Combinators may swallow a soft
// mismatch but never a hard error.
//
// The zero Outcome is a soft mismatch.
type Outcome[T any] struct {
	kind outcomeKind
	tok  Token[T]
	err  *HardError
}

// Success wraps a parsed value.
func Success[T any](span ast.Span, value T) Outcome[T] {
	return Outcome[T]{kind: kindSuccess, tok: Token[T]{Span: span, Value: value}}
}

// SoftMismatch reports that a production does not apply.
func SoftMismatch[T any]() Outcome[T] {
	return Outcome[T]{}
}

// Hard reports a committed failure.
func Hard[T any](err *HardError) Outcome[T] {
	return Outcome[T]{kind: kindHardError, err: err}
}

// Fail re-types an unsuccessful outcome so a rule can pass a sub-rule's
// failure up unchanged.
func Fail[U, T any](o Outcome[T]) Outcome[U] {
	if o.kind == kindSuccess {
		panic("parser: Fail called on a successful outcome")
	}
	return Outcome[U]{kind: o.kind, err: o.err}
}

// IsSuccess reports whether the attempt produced a value.
func (o Outcome[T]) IsSuccess() bool { return o.kind == kindSuccess }

// IsSoft reports whether the production did not apply.
func (o Outcome[T]) IsSoft() bool { return o.kind == kindSoftMismatch }

// IsHard reports whether the attempt committed and failed.
func (o Outcome[T]) IsHard() bool { return o.kind == kindHardError }

// Token returns the parsed token. It is the zero Token unless IsSuccess.
func (o Outcome[T]) Token() Token[T] { return o.tok }

// Value returns the parsed value.
func (o Outcome[T]) Value() T { return o.tok.Value }

// Span returns the span of the parsed value.
func (o Outcome[T]) Span() ast.Span { return o.tok.Span }

// Err returns the hard error, or nil.
func (o Outcome[T]) Err() *HardError { return o.err }

func (o Outcome[T]) String() string {
	switch o.kind {
	case kindSuccess:
		return fmt.Sprintf("Success(%s, %v)", o.tok.Span, o.tok.Value)
	case kindHardError:
		return fmt.Sprintf("HardError(%s, %q)", o.err.Span, o.err.Message)
	default:
		return "SoftMismatch"
	}
}

// Rule is a grammar production: it consumes from the cursor and reports an
// Outcome. Rules are run through Attempt, which gives them a scratch copy of
// the cursor.
type Rule[T any] func(c *Cursor) Outcome[T]

// Attempt runs rule on a scratch copy of c with the mark cleared, then
// applies the backtracking policy:
//
//   - success: the copy's position is kept, and its mark too when c had none
//   - soft mismatch: c keeps its position; only the scan cache is synced
//   - hard error: c moves to the point of failure
func Attempt[T any](c *Cursor, rule Rule[T]) Outcome[T] {
	tmp := *c
	tmp.mark = -1

	out := rule(&tmp)

	switch out.kind {
	case kindSuccess:
		c.pos = tmp.pos
		if c.mark < 0 {
			c.mark = tmp.mark
		}
		c.cache = tmp.cache
	case kindHardError:
		c.pos = tmp.pos
	default:
		c.cache = tmp.cache
	}

	return out
}

// MustMatch attempts rule at a point where it is the only production that
// can apply, so a soft mismatch becomes a hard error at the next word.
func MustMatch[T any](c *Cursor, rule Rule[T], format string, args ...any) Outcome[T] {
	out := Attempt(c, rule)
	if !out.IsSoft() {
		return out
	}

	span := c.nextWordSpan()
	c.pos = span.Start
	return Hard[T](newHardError(ErrSyntax, span, format, args...))
}

// Optional attempts rule and turns a soft mismatch into absence. A hard
// error is still returned.
func Optional[T any](c *Cursor, rule Rule[T]) (Token[T], bool, *HardError) {
	out := Attempt(c, rule)
	switch out.kind {
	case kindSuccess:
		return out.tok, true, nil
	case kindHardError:
		return Token[T]{}, false, out.err
	default:
		return Token[T]{}, false, nil
	}
}

// Lookahead reports whether rule would succeed at c, leaving c untouched.
func Lookahead[T any](c *Cursor, rule Rule[T]) bool {
	tmp := *c
	return Attempt(&tmp, rule).IsSuccess()
}

// Finish completes the current attempt with value, spanning everything the
// attempt took.
func Finish[T any](c *Cursor, value T) Outcome[T] {
	return Success(c.Span(), value)
}

// Throw fails the current attempt with a syntax error over what it took.
func Throw[T any](c *Cursor, format string, args ...any) Outcome[T] {
	return Hard[T](newHardError(ErrSyntax, c.Span(), format, args...))
}

// ThrowAt fails the current attempt with a syntax error over span.
func ThrowAt[T any](span ast.Span, format string, args ...any) Outcome[T] {
	return Hard[T](newHardError(ErrSyntax, span, format, args...))
}

// Map converts the value of a successful outcome, keeping its span.
func Map[T, U any](rule Rule[T], f func(T) U) Rule[U] {
	return func(c *Cursor) Outcome[U] {
		out := rule(c)
		if !out.IsSuccess() {
			return Fail[U](out)
		}
		return Success(out.tok.Span, f(out.tok.Value))
	}
}
