package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestStylesPlainWriter(t *testing.T) {
	styles := NewStyles(&bytes.Buffer{})

	tests := []struct {
		name  string
		style func(string) string
	}{
		{"Keyword", styles.Keyword},
		{"Operator", styles.Operator},
		{"Ident", styles.Ident},
		{"Literal", styles.Literal},
		{"Dim", styles.Dim},
		{"FastTiming", func(s string) string { return styles.Timing(s, false) }},
		{"SlowTiming", func(s string) string { return styles.Timing(s, true) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.style("jia1"); got != "jia1" {
				t.Errorf("%s(%q) = %q, want plain text for a non-terminal writer", tt.name, "jia1", got)
			}
		})
	}
}

func TestStylesANSI(t *testing.T) {
	styles := &Styles{output: termenv.NewOutput(&bytes.Buffer{}, termenv.WithProfile(termenv.ANSI))}

	tests := []struct {
		name string
		got  string
		seq  string
	}{
		{"Keyword", styles.Keyword("zheng3"), "1"},
		{"Operator", styles.Operator("jia1"), "34"},
		{"Ident", styles.Ident("x"), "33"},
		{"Literal", styles.Literal("1919"), "35"},
		{"Dim", styles.Dim("integer"), "2"},
		{"SlowTiming", styles.Timing("120ms", true), "31"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.HasPrefix(tt.got, "\x1b["+tt.seq+"m") {
				t.Errorf("%s = %q, want it to start with SGR %s", tt.name, tt.got, tt.seq)
			}
		})
	}

	t.Run("FastTimingIsDim", func(t *testing.T) {
		if got, want := styles.Timing("3ms", false), styles.Dim("3ms"); got != want {
			t.Errorf("Timing(fast) = %q, want %q", got, want)
		}
	})
}
