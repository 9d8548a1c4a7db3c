package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/pin1yin1/pin1yin1/errors"
)

var (
	errCaretStyle   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#FF5F87", Dark: "#FF5F87"})
	errContextStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#808080", Dark: "#808080"})
)

// ErrorRenderer renders errors with terminal styling and source context.
type ErrorRenderer struct {
	formatter *errors.TextFormatter
}

// NewErrorRenderer creates a renderer. source is used for context around
// errors that carry a position but not their own source; parse errors always
// show the text they were raised against. source may be nil.
func NewErrorRenderer(source []byte) *ErrorRenderer {
	opts := []errors.TextFormatterOption{
		errors.WithStyles(errors.Styles{
			Message: errorStyle,
			Context: errContextStyle,
			Caret:   errCaretStyle,
		}),
	}
	if source != nil {
		opts = append(opts, errors.WithSource(string(source)))
	}
	return &ErrorRenderer{formatter: errors.NewTextFormatter(opts...)}
}

// Render formats a single error with styling and context.
func (r *ErrorRenderer) Render(err error) string {
	return r.formatter.Format(err)
}

// RenderAll formats multiple errors, separating them with blank lines.
func (r *ErrorRenderer) RenderAll(errs []error) string {
	return r.formatter.FormatAll(errs)
}
