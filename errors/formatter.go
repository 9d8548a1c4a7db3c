// Package errors renders parse errors for people and for programs.
// It separates presentation from the parser, so the same *parser.ParseError
// can be shown on a terminal, returned from the web playground or emitted
// by `check --format json`.
//
// The package defines a Formatter interface and provides two implementations:
//   - TextFormatter: the message followed by the surrounding source lines and
//     a caret under the start of the offending span
//   - JSONFormatter: one flat object per error with kind, position and span
package errors

import (
	"encoding/json"
	stdErrors "errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/pin1yin1/pin1yin1/ast"
	"github.com/pin1yin1/pin1yin1/parser"
)

// Formatter formats errors for output in different formats.
type Formatter interface {
	// Format formats a single error.
	Format(err error) string

	// FormatAll formats multiple errors.
	FormatAll(errs []error) string
}

// Lines of source shown around the error line.
const (
	contextBefore = 2
	contextAfter  = 1
	tabWidth      = 4
	indent        = "   "
)

// Styles colours the parts of a text diagnostic. The zero value leaves
// every part unstyled.
type Styles struct {
	Message lipgloss.Style
	Context lipgloss.Style
	Caret   lipgloss.Style
}

// TextFormatter formats errors for command-line output.
type TextFormatter struct {
	source []rune // Optional source for errors that do not carry their own
	lines  *ast.LineIndex
	styles *Styles
}

// TextFormatterOption is an option for configuring TextFormatter.
type TextFormatterOption func(*TextFormatter)

// WithSource sets the source text used for errors that only know their
// position. Parse errors always use the source they were raised against.
func WithSource(source string) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.source = []rune(source)
		tf.lines = ast.NewLineIndex("", tf.source)
	}
}

// WithStyles renders the message, context lines and caret with styles.
func WithStyles(styles Styles) TextFormatterOption {
	return func(tf *TextFormatter) {
		tf.styles = &styles
	}
}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter(opts ...TextFormatterOption) *TextFormatter {
	tf := &TextFormatter{}
	for _, opt := range opts {
		opt(tf)
	}
	return tf
}

// Format formats a single error.
func (tf *TextFormatter) Format(err error) string {
	var perr *parser.ParseError
	if stdErrors.As(err, &perr) && perr.Source != nil {
		return tf.formatWithSourceContext(perr.Pos, err.Error(), perr.Source.Runes(), perr.Source.Lines())
	}

	var posErr interface{ GetPosition() ast.Position }
	if stdErrors.As(err, &posErr) && tf.source != nil {
		return tf.formatWithSourceContext(posErr.GetPosition(), err.Error(), tf.source, tf.lines)
	}

	return tf.render(tf.messageStyle(), err.Error())
}

// FormatAll formats multiple errors, separating them with blank lines.
func (tf *TextFormatter) FormatAll(errs []error) string {
	if len(errs) == 0 {
		return ""
	}

	var buf strings.Builder
	for i, err := range errs {
		buf.WriteString(tf.Format(err))

		if i < len(errs)-1 {
			buf.WriteString("\n\n")
		}
	}

	return buf.String()
}

// formatWithSourceContext writes the message followed by the source lines
// around pos, with a caret under pos on its own line.
func (tf *TextFormatter) formatWithSourceContext(pos ast.Position, message string, source []rune, lines *ast.LineIndex) string {
	var buf strings.Builder

	buf.WriteString(tf.render(tf.messageStyle(), message))
	buf.WriteString("\n\n")

	first := max(pos.Line-contextBefore, 1)
	last := min(pos.Line+contextAfter, lines.LineCount())

	for line := first; line <= last; line++ {
		span := lines.LineSpan(line)
		text := expandTabs(span.Text(source))

		if text == "" {
			buf.WriteByte('\n')
		} else {
			buf.WriteString(indent)
			buf.WriteString(tf.render(tf.contextStyle(), text))
			buf.WriteByte('\n')
		}

		if line == pos.Line && pos.Column > 0 {
			prefix := expandTabs(ast.Span{Start: span.Start, End: pos.Offset}.Text(source))
			buf.WriteString(indent)
			buf.WriteString(strings.Repeat(" ", runewidth.StringWidth(prefix)))
			buf.WriteString(tf.render(tf.caretStyle(), "^"))
			buf.WriteByte('\n')
		}
	}

	return buf.String()
}

func (tf *TextFormatter) render(style *lipgloss.Style, s string) string {
	if style == nil {
		return s
	}
	return style.Render(s)
}

func (tf *TextFormatter) messageStyle() *lipgloss.Style {
	if tf.styles == nil {
		return nil
	}
	return &tf.styles.Message
}

func (tf *TextFormatter) contextStyle() *lipgloss.Style {
	if tf.styles == nil {
		return nil
	}
	return &tf.styles.Context
}

func (tf *TextFormatter) caretStyle() *lipgloss.Style {
	if tf.styles == nil {
		return nil
	}
	return &tf.styles.Caret
}

// expandTabs replaces tabs with spaces up to the next tab stop so the
// caret lines up however the terminal renders tabs.
func expandTabs(s string) string {
	if !strings.ContainsRune(s, '\t') {
		return s
	}
	var buf strings.Builder
	col := 0
	for _, r := range s {
		if r == '\t' {
			n := tabWidth - col%tabWidth
			buf.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		buf.WriteRune(r)
		col += runewidth.RuneWidth(r)
	}
	return buf.String()
}

// JSONFormatter formats errors as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// ErrorJSON represents an error in JSON format. Start and End are rune
// offsets into the source.
type ErrorJSON struct {
	Kind     string `json:"kind"`
	Message  string `json:"message"`
	Filename string `json:"filename"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Start    int    `json:"start"`
	End      int    `json:"end"`
}

// Format formats a single error as JSON.
func (jf *JSONFormatter) Format(err error) string {
	data, _ := json.Marshal(jf.toJSON(err))
	return string(data)
}

// FormatAll formats multiple errors as a JSON array.
func (jf *JSONFormatter) FormatAll(errs []error) string {
	data, _ := json.MarshalIndent(jf.FormatAllToSlice(errs), "", "  ")
	return string(data)
}

// FormatAllToSlice returns errors as a slice of ErrorJSON structs.
func (jf *JSONFormatter) FormatAllToSlice(errs []error) []ErrorJSON {
	result := make([]ErrorJSON, 0, len(errs))
	for _, err := range errs {
		result = append(result, jf.toJSON(err))
	}
	return result
}

func (jf *JSONFormatter) toJSON(err error) ErrorJSON {
	var perr *parser.ParseError
	if stdErrors.As(err, &perr) {
		return ErrorJSON{
			Kind:     perr.Kind.String(),
			Message:  perr.Message,
			Filename: perr.Pos.Filename,
			Line:     perr.Pos.Line,
			Column:   perr.Pos.Column,
			Start:    perr.Span.Start,
			End:      perr.Span.End,
		}
	}

	errJSON := ErrorJSON{
		Kind:    "error",
		Message: err.Error(),
	}

	var posErr interface{ GetPosition() ast.Position }
	if stdErrors.As(err, &posErr) {
		pos := posErr.GetPosition()
		errJSON.Filename = pos.Filename
		errJSON.Line = pos.Line
		errJSON.Column = pos.Column
		errJSON.Start = pos.Offset
		errJSON.End = pos.Offset
	}

	var spanErr interface{ GetSpan() ast.Span }
	if stdErrors.As(err, &spanErr) {
		span := spanErr.GetSpan()
		errJSON.Start = span.Start
		errJSON.End = span.End
	}

	return errJSON
}
