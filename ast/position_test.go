package ast

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestSpan_Text(t *testing.T) {
	source := []rune("hello world")

	t.Run("Valid span", func(t *testing.T) {
		span := Span{Start: 0, End: 5}
		result := span.Text(source)
		assert.Equal(t, "hello", result)
	})

	t.Run("Valid span in middle", func(t *testing.T) {
		span := Span{Start: 6, End: 11}
		result := span.Text(source)
		assert.Equal(t, "world", result)
	})

	t.Run("Zero span", func(t *testing.T) {
		span := Span{Start: 0, End: 0}
		result := span.Text(source)
		assert.Equal(t, "", result, "zero span should return empty string")
	})

	t.Run("Negative start", func(t *testing.T) {
		span := Span{Start: -5, End: 3}
		result := span.Text(source)
		assert.Equal(t, "", result, "negative start should return empty string")
	})

	t.Run("Start greater than End", func(t *testing.T) {
		span := Span{Start: 10, End: 5}
		result := span.Text(source)
		assert.Equal(t, "", result, "start > end should return empty string")
	})

	t.Run("End beyond source length", func(t *testing.T) {
		span := Span{Start: 0, End: 100}
		result := span.Text(source)
		assert.Equal(t, "", result, "end > len(source) should return empty string")
	})

	t.Run("Start beyond source length", func(t *testing.T) {
		span := Span{Start: 100, End: 105}
		result := span.Text(source)
		assert.Equal(t, "", result, "start > len(source) should return empty string")
	})

	t.Run("Empty source", func(t *testing.T) {
		emptySource := []rune("")
		span := Span{Start: 0, End: 5}
		result := span.Text(emptySource)
		assert.Equal(t, "", result, "should handle empty source gracefully")
	})
}

func TestSpan_IsZero(t *testing.T) {
	t.Run("Zero span", func(t *testing.T) {
		span := Span{Start: 0, End: 0}
		assert.True(t, span.IsZero(), "zero span should be zero")
	})

	t.Run("Non-zero span", func(t *testing.T) {
		span := Span{Start: 0, End: 5}
		assert.True(t, !span.IsZero(), "non-zero span should not be zero")
	})

	t.Run("Negative values are not zero", func(t *testing.T) {
		span := Span{Start: -1, End: -1}
		assert.True(t, !span.IsZero(), "negative values should not be considered zero")
	})
}

func TestSpan_TextRunes(t *testing.T) {
	source := []rune("shi4 拼音 jia1")
	assert.Equal(t, "拼音", Span{Start: 5, End: 7}.Text(source))
}

func TestSpan_Merge(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
	}{
		{"Disjoint", Span{0, 3}, Span{5, 9}, Span{0, 9}},
		{"Reversed", Span{5, 9}, Span{0, 3}, Span{0, 9}},
		{"Nested", Span{0, 10}, Span{2, 4}, Span{0, 10}},
		{"Touching", Span{0, 4}, Span{4, 8}, Span{0, 8}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Merge(tt.b))
		})
	}

	assert.Equal(t, Span{}, MergeSpans())
	assert.Equal(t, Span{1, 12}, MergeSpans(Span{3, 4}, Span{1, 2}, Span{10, 12}))
}

func TestSpan_Contains(t *testing.T) {
	outer := Span{Start: 2, End: 10}
	assert.True(t, outer.Contains(Span{Start: 2, End: 10}))
	assert.True(t, outer.Contains(Span{Start: 5, End: 5}))
	assert.False(t, outer.Contains(Span{Start: 1, End: 5}))
	assert.False(t, outer.Contains(Span{Start: 5, End: 11}))
	assert.Equal(t, 8, outer.Len())
	assert.Equal(t, "2..10", outer.String())
}

func TestLineIndex(t *testing.T) {
	source := []rune("shi4 第一\nzheng3 a fen1\n\nfan3")
	li := NewLineIndex("main.py1", source)

	assert.Equal(t, 4, li.LineCount())

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{5, 1, 6},
		{7, 1, 8},  // the newline ends line 1
		{8, 2, 1},  // zheng3
		{15, 2, 8}, // a
		{22, 3, 1}, // empty line
		{23, 4, 1}, // fan3
		{27, 4, 5}, // end of input
		{99, 4, 5}, // clamped
		{-3, 1, 1}, // clamped
	}
	for _, tt := range tests {
		pos := li.Position(tt.offset)
		assert.Equal(t, tt.line, pos.Line, "line of offset %d", tt.offset)
		assert.Equal(t, tt.column, pos.Column, "column of offset %d", tt.offset)
		assert.Equal(t, "main.py1", pos.Filename)
	}

	assert.Equal(t, "zheng3 a fen1", li.LineSpan(2).Text(source))
	assert.Equal(t, Span{Start: 22, End: 22}, li.LineSpan(3))
	assert.Equal(t, "fan3", li.LineSpan(4).Text(source))
	assert.Equal(t, Span{}, li.LineSpan(0))
	assert.Equal(t, Span{}, li.LineSpan(5))
}

func TestPosition_String(t *testing.T) {
	assert.Equal(t, "main.py1:3:7", Position{Filename: "main.py1", Line: 3, Column: 7}.String())
	assert.Equal(t, "3:7", Position{Line: 3, Column: 7}.String())
}
