package parser

import (
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/grammar"
)

func TestWords(t *testing.T) {
	src := NewSource("w.py1", "zheng3 x wei2\n\t1 jia1 y2 fen1 +")
	words := Words(src, nil)

	type row struct {
		Kind WordKind
		Text string
		Line int
		Col  int
	}
	var got []row
	for _, w := range words {
		got = append(got, row{w.Kind, w.Text, w.Pos.Line, w.Pos.Column})
	}

	assert.Equal(t, []row{
		{WordKeyword, "zheng3", 1, 1},
		{WordIdent, "x", 1, 8},
		{WordKeyword, "wei2", 1, 10},
		{WordNumber, "1", 2, 2},
		{WordOperator, "jia1", 2, 4},
		{WordIdent, "y2", 2, 9},
		{WordKeyword, "fen1", 2, 12},
		{WordOther, "+", 2, 17},
	}, got)

	assert.Equal(t, grammar.TagInteger, words[0].Tag)
	assert.Equal(t, grammar.OpAdd, words[4].Operator.Op)
	assert.Equal(t, ast.Span{Start: 7, End: 8}, words[1].Span)
}

func TestWordsEmpty(t *testing.T) {
	assert.Equal(t, 0, len(Words(NewSource("", "  \n\t "), nil)))
}

func TestWordKindString(t *testing.T) {
	assert.Equal(t, "KEYWORD", WordKeyword.String())
	assert.Equal(t, "OPERATOR", WordOperator.String())
	assert.Equal(t, "IDENT", WordIdent.String())
	assert.Equal(t, "NUMBER", WordNumber.String())
	assert.Equal(t, "WORD", WordOther.String())
}
