package ast

import (
	"fmt"
	"sort"
)

// Position represents a location in the source file.
type Position struct {
	Filename string
	Offset   int // Rune offset
	Line     int // Line number (1-indexed)
	Column   int // Column number (1-indexed, in runes)
}

// Span represents a half-open range [Start, End) of rune offsets in the source.
//
// Every composite node's span is exactly the merge of its children's spans,
// so a span can always be mapped back to the text that produced the node.
type Span struct {
	Start int // Starting rune offset (inclusive)
	End   int // Ending rune offset (exclusive)
}

// IsZero returns true if this is an uninitialized span.
func (s Span) IsZero() bool {
	return s.Start == 0 && s.End == 0
}

// Len returns the number of runes covered by the span.
func (s Span) Len() int {
	return s.End - s.Start
}

// Merge returns the smallest span covering both s and other.
func (s Span) Merge(other Span) Span {
	return Span{Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

// Contains reports whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Text extracts the source text for this span.
// Returns empty string if span is invalid.
func (s Span) Text(source []rune) string {
	if s.Start < 0 || s.End <= s.Start || s.End > len(source) {
		return ""
	}
	return string(source[s.Start:s.End])
}

// String returns the span as "start..end".
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// MergeSpans merges all spans; the zero Span is returned for no input.
func MergeSpans(spans ...Span) Span {
	if len(spans) == 0 {
		return Span{}
	}
	merged := spans[0]
	for _, s := range spans[1:] {
		merged = merged.Merge(s)
	}
	return merged
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	if p.Filename != "" {
		return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// GoString returns a Go-syntax representation of the position.
func (p Position) GoString() string {
	return fmt.Sprintf("Position{Filename: %q, Line: %d, Column: %d}", p.Filename, p.Line, p.Column)
}

// LineIndex resolves rune offsets to line/column positions.
// It is built once per source and is safe for concurrent reads.
type LineIndex struct {
	filename   string
	lineStarts []int // Rune offset of the first rune of every line
	size       int
}

// NewLineIndex scans source once and records where each line starts.
func NewLineIndex(filename string, source []rune) *LineIndex {
	starts := make([]int, 1, len(source)/32+1)
	for i, r := range source {
		if r == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{filename: filename, lineStarts: starts, size: len(source)}
}

// Position returns the position of the given rune offset.
// Offsets past the end are clamped to the end of the source.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > li.size {
		offset = li.size
	}
	line := sort.Search(len(li.lineStarts), func(i int) bool {
		return li.lineStarts[i] > offset
	}) - 1

	return Position{
		Filename: li.filename,
		Offset:   offset,
		Line:     line + 1,
		Column:   offset - li.lineStarts[line] + 1,
	}
}

// LineCount returns the number of lines in the source.
func (li *LineIndex) LineCount() int {
	return len(li.lineStarts)
}

// LineSpan returns the span of the given 1-indexed line, excluding the newline.
func (li *LineIndex) LineSpan(line int) Span {
	if line < 1 || line > len(li.lineStarts) {
		return Span{}
	}
	start := li.lineStarts[line-1]
	end := li.size
	if line < len(li.lineStarts) {
		end = li.lineStarts[line] - 1
	}
	return Span{Start: start, End: end}
}
