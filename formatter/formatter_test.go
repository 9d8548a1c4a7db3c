package formatter

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/grammar"
	"github.com/pin1yin1/pin1yin1/parser"
)

func formatString(t testing.TB, src string, opts ...Option) string {
	t.Helper()
	prog, err := parser.ParseString(context.Background(), src)
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, New(opts...).Format(context.Background(), prog, []rune(src), &buf))
	return buf.String()
}

// shape lists every node of the tree in walk order, without spans or
// source spellings.
func shape(root ast.Node) []string {
	var out []string
	ast.Inspect(root, func(n ast.Node) bool {
		entry := nodeName(n)
		switch n := n.(type) {
		case ast.Keyword:
			entry += " " + n.Tag.String()
		case ast.Operator:
			entry += " " + n.Op.String()
		default:
			if detail := nodeDetail(n); detail != "" {
				entry += " " + detail
			}
		}
		out = append(out, entry)
		return true
	})
	return out
}

// withKeywords returns the default tables with the keyword table replaced
// by edit's result.
func withKeywords(t testing.TB, edit func(map[string]grammar.Tag)) *grammar.Config {
	t.Helper()
	def := grammar.Default()
	keywords := map[string]grammar.Tag{}
	for _, kw := range def.Keywords() {
		keywords[kw.Lexeme] = kw.Tag
	}
	edit(keywords)
	cfg, err := grammar.New(keywords, def.Operators())
	assert.NoError(t, err)
	return cfg
}

func TestFormat(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected string
	}{
		{
			name:     "Empty",
			src:      "  \n\n ",
			expected: "",
		},
		{
			name:     "Comments",
			src:      "shi4   hello   world  \nshi4",
			expected: "shi4 hello   world\nshi4\n",
		},
		{
			name:     "FunctionOnOneLine",
			src:      "zheng3   f can1 jie2 han2 fan3 1   jia1 2 fen1 jie2",
			expected: "zheng3 f can1 jie2 han2\n\tfan3 1 jia1 2 fen1\njie2\n",
		},
		{
			name:     "Params",
			src:      "zheng3 f can1 zheng3 a fen1 zu3 4 she4 zi4 b jie2 han2 jie2",
			expected: "zheng3 f can1 zheng3 a fen1 zu3 4 she4 zi4 b jie2 han2\njie2\n",
		},
		{
			name: "NestedBlocks",
			src:  "zheng3 f can1 jie2 han2 han2 han2 x wei2 1 fen1 jie2 jie2 jie2",
			expected: "zheng3 f can1 jie2 han2\n" +
				"\than2\n" +
				"\t\than2\n" +
				"\t\t\tx wei2 1 fen1\n" +
				"\t\tjie2\n" +
				"\tjie2\n" +
				"jie2\n",
		},
		{
			name: "IfChain",
			src: "zheng3 f can1 jie2 han2 ruo4 can1 a jie2 han2 fan3 fen1 jie2 ze2 ruo4 can1 b fen1 c jie2 han2 jie2 " +
				"ze2 han2 xie3 can1 jie2 fen1 jie2 jie2",
			expected: "zheng3 f can1 jie2 han2\n" +
				"\truo4 can1 a jie2 han2\n" +
				"\t\tfan3 fen1\n" +
				"\tjie2 ze2 ruo4 can1 b fen1 c jie2 han2\n" +
				"\tjie2 ze2 han2\n" +
				"\t\txie3 can1 jie2 fen1\n" +
				"\tjie2\n" +
				"jie2\n",
		},
		{
			name: "While",
			src:  "zheng3 f can1 jie2 han2\nchong2 can1 x xiao3 10 jie2 han2 x wei2 x jia1 1 fen1 jie2\njie2",
			expected: "zheng3 f can1 jie2 han2\n" +
				"\tchong2 can1 x xiao3 10 jie2 han2\n" +
				"\t\tx wei2 x jia1 1 fen1\n" +
				"\tjie2\n" +
				"jie2\n",
		},
		{
			name: "Expressions",
			src: "zheng3 f can1 jie2 han2 she4 zheng3 a wei2 fei1   can1 b   huo4 c jie2 cheng2 g can1 han2 1 2 jie2 fen1 wen2 __ jie2 fen1\n" +
				"zhi3 zi4 s wei2 chuan4 a_sb_n fen1 jie2",
			expected: "zheng3 f can1 jie2 han2\n" +
				"\tshe4 zheng3 a wei2 fei1 can1 b huo4 c jie2 cheng2 g can1 han2 1 2 jie2 fen1 wen2 __ jie2 fen1\n" +
				"\tzhi3 zi4 s wei2 chuan4 a_sb_n fen1\n" +
				"jie2\n",
		},
		{
			name: "BlankLinesCollapse",
			src:  "shi4 a\n\n\n\nshi4 b\nzheng3 f can1 jie2 han2\n\n\n  fan3 fen1\n\n  fan3 fen1\njie2",
			expected: "shi4 a\n\nshi4 b\nzheng3 f can1 jie2 han2\n" +
				"\tfan3 fen1\n\n\tfan3 fen1\njie2\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatString(t, tt.src))
		})
	}
}

func TestFormatOptions(t *testing.T) {
	src := "shi4 header\n\nzheng3 f can1 jie2 han2\n\tshi4 inside\n\n\tfan3 fen1\njie2\n"

	t.Run("WithoutComments", func(t *testing.T) {
		expected := "zheng3 f can1 jie2 han2\n\tfan3 fen1\njie2\n"
		assert.Equal(t, expected, formatString(t, src, WithPreserveComments(false)))
	})

	t.Run("WithoutBlanks", func(t *testing.T) {
		expected := "shi4 header\nzheng3 f can1 jie2 han2\n\tshi4 inside\n\tfan3 fen1\njie2\n"
		assert.Equal(t, expected, formatString(t, src, WithPreserveBlanks(false)))
	})

	t.Run("WithIndent", func(t *testing.T) {
		expected := "shi4 header\n\nzheng3 f can1 jie2 han2\n  shi4 inside\n\n  fan3 fen1\njie2\n"
		assert.Equal(t, expected, formatString(t, src, WithIndent("  ")))
	})

	t.Run("WithoutSource", func(t *testing.T) {
		prog, err := parser.ParseString(context.Background(), src)
		assert.NoError(t, err)

		var buf bytes.Buffer
		assert.NoError(t, New().Format(context.Background(), prog, nil, &buf))
		assert.Equal(t, "shi4 header\nzheng3 f can1 jie2 han2\n\tshi4 inside\n\tfan3 fen1\njie2\n", buf.String())
	})
}

func TestFormatCanonicalLexemes(t *testing.T) {
	t.Run("AliasFormatsAsCanonical", func(t *testing.T) {
		cfg := withKeywords(t, func(kw map[string]grammar.Tag) {
			kw["kuai4"] = grammar.TagBlock
		})
		src := "zheng3 f can1 jie2 kuai4 fan3 fen1 jie2"

		prog, err := parser.ParseString(context.Background(), src, parser.WithGrammar(cfg))
		assert.NoError(t, err)

		var buf bytes.Buffer
		assert.NoError(t, New(WithGrammar(cfg)).Format(context.Background(), prog, []rune(src), &buf))
		assert.Equal(t, "zheng3 f can1 jie2 han2\n\tfan3 fen1\njie2\n", buf.String())
	})

	t.Run("Translate", func(t *testing.T) {
		cfg := withKeywords(t, func(kw map[string]grammar.Tag) {
			delete(kw, "han2")
			kw["kuai4"] = grammar.TagBlock
		})
		expected := "zheng3 f can1 jie2 kuai4\n\tzu3 2 zheng3 a wei2 kuai4 1 2 jie2 fen1\njie2\n"
		assert.Equal(t, expected, formatString(t, "zheng3 f can1 jie2 han2 zu3 2 zheng3 a wei2 han2 1 2 jie2 fen1 jie2", WithGrammar(cfg)))
	})
}

func TestFormatKitchensink(t *testing.T) {
	data, err := os.ReadFile("../testdata/kitchensink.py1")
	assert.NoError(t, err)

	// The sample is already canonical.
	assert.Equal(t, string(data), formatString(t, string(data)))
}

func TestFormatPreservesShape(t *testing.T) {
	sources := []string{
		"zheng3 f can1 jie2 han2 fan3 1 jia1 2 cheng2 3 jian3 4 fen1 jie2",
		"zheng3 f can1 jie2 han2 fan3 can1 1 jia1 2 jie2 cheng2 3 fen1 jie2",
		"zheng3 f can1 jie2 han2 fan3 fu4 fu4 a huo4 b yu3 c fen1 jie2",
		"zheng3 f can1 zheng3 a jie2 han2 ruo4 can1 a jie2 han2 jie2 ze2 han2 jie2 jie2",
		"bu4 g can1 she4 zhi3 zi4 s fen1 zu3 8 zheng3 x jie2 han2 g can1 s fen1 x jie2 fen1 jie2",
		"zheng3 h can1 jie2 han2 zi4 c wei2 wen2 _s fen1 zhi3 zi4 s wei2 chuan4 __a_t fen1 jie2",
	}

	for _, src := range sources {
		t.Run(src, func(t *testing.T) {
			before, err := parser.ParseString(context.Background(), src)
			assert.NoError(t, err)

			formatted := formatString(t, src)
			after, err := parser.ParseString(context.Background(), formatted)
			assert.NoError(t, err)

			assert.Equal(t, shape(before), shape(after))
			assert.Equal(t, formatted, formatString(t, formatted), "formatting is idempotent")
		})
	}
}

func TestFormatNode(t *testing.T) {
	e, err := parser.ParseExpr(context.Background(), "can1 1   jia1 2 jie2   cheng2 x")
	assert.NoError(t, err)

	var buf strings.Builder
	assert.NoError(t, New().FormatNode(e, &buf))
	assert.Equal(t, "can1 1 jia1 2 jie2 cheng2 x", buf.String())

	assert.Error(t, New().FormatNode(&ast.Program{}, &buf))
}

func TestEscapeWord(t *testing.T) {
	tests := []struct {
		in       string
		expected string
	}{
		{"abc", "abc"},
		{"a b", "a_sb"},
		{"a_b", "a__b"},
		{"line\n", "line_n"},
		{"\tx", "_tx"},
		{"拼音", "拼音"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, escapeWord(tt.in), tt.in)
	}
}

func TestTree(t *testing.T) {
	t.Run("Expression", func(t *testing.T) {
		e, err := parser.ParseExpr(context.Background(), "1 jia1 x")
		assert.NoError(t, err)

		var buf strings.Builder
		assert.NoError(t, New().Tree(e, &buf))
		expected := "Binary 0..8\n" +
			"  NumberLiteral 1 0..1\n" +
			"  Operator add \"jia1\" 2..6\n" +
			"  Ident \"x\" 7..8\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("Program", func(t *testing.T) {
		prog, err := parser.ParseString(context.Background(), "shi4 hi\n")
		assert.NoError(t, err)

		var buf strings.Builder
		assert.NoError(t, New().Tree(prog, &buf))
		expected := "Program 0..8\n" +
			"  Comment 0..7\n" +
			"    Keyword comment \"shi4\" 0..4\n" +
			"    Word \"hi\" 5..7\n"
		assert.Equal(t, expected, buf.String())
	})

	t.Run("Literals", func(t *testing.T) {
		e, err := parser.ParseExpr(context.Background(), "chuan4 a_sb")
		assert.NoError(t, err)

		var buf strings.Builder
		assert.NoError(t, New().Tree(e, &buf))
		assert.Equal(t, "StringLiteral \"a b\" 0..11\n"+
			"  Keyword string \"chuan4\" 0..6\n"+
			"  Word \"a_sb\" 7..11\n", buf.String())
	})
}
