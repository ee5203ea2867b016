package utils

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/honganh1206/datetime/datetime"
	"github.com/honganh1206/datetime/lexer"
)

// Diagnostic is the flattened form of a parse error, shared by the CLI and
// the HTTP API.
type Diagnostic struct {
	Kind    string      `json:"kind"`
	Message string      `json:"error"`
	Source  string      `json:"source,omitempty"`
	Field   string      `json:"field,omitempty"`
	Span    *lexer.Span `json:"span,omitempty"`
}

func Diagnose(err error) Diagnostic {
	d := Diagnostic{Kind: "unknown", Message: err.Error()}

	var (
		lexErr         *lexer.Error
		seqErr         *datetime.SequenceError
		shortErr       *datetime.ShortInputError
		numErr         *datetime.NumberError
		valErr         *datetime.ValueError
		unsupportedErr *datetime.UnsupportedError
	)

	switch {
	case errors.As(err, &lexErr):
		d.Kind = lexErr.Kind.String()
		d.Source = lexErr.Src
		span := lexErr.Span
		d.Span = &span
	case errors.As(err, &seqErr):
		d.Kind = "wrong_sequence"
		d.Source = seqErr.Src
		d.Span = &lexer.Span{Offset: seqErr.Offset, Length: len(seqErr.Unexpected)}
	case errors.As(err, &shortErr):
		d.Kind = "input_too_short"
		d.Source = shortErr.Src
		d.Field = shortErr.Field.String()
		d.Span = &lexer.Span{Offset: shortErr.Offset, Length: shortErr.Actual}
	case errors.As(err, &numErr):
		d.Kind = "invalid_number"
		d.Source = numErr.Src
		d.Field = numErr.Field.String()
		d.Span = &lexer.Span{Offset: numErr.Offset, Length: len(numErr.Text)}
	case errors.As(err, &valErr):
		d.Kind = "invalid_value"
		d.Field = valErr.Field.String()
	case errors.As(err, &unsupportedErr):
		d.Kind = "unsupported"
	}

	return d
}

// RenderDiagnostic draws the error in a box, underlining the offending part
// of the pattern or input when there is one.
func RenderDiagnostic(err error) string {
	return RenderDiagnosticOf(Diagnose(err))
}

// RenderDiagnosticOf renders an already flattened diagnostic, such as one
// decoded from an HTTP error body.
func RenderDiagnosticOf(d Diagnostic) string {
	title := "error"
	if d.Kind != "unknown" && d.Kind != "" {
		title = d.Kind
	}

	var lines []string
	if d.Span != nil {
		lines = append(lines, d.Source, underline(d.Source, *d.Span))
	}
	lines = append(lines, d.Message)

	return RenderBox(title, lines)
}

// underline builds a caret line under src. Columns are counted in runes.
func underline(src string, span lexer.Span) string {
	offset := min(max(span.Offset, 0), len(src))
	end := min(offset+max(span.Length, 0), len(src))

	pad := utf8.RuneCountInString(src[:offset])
	width := max(utf8.RuneCountInString(src[offset:end]), 1)

	return strings.Repeat(" ", pad) + strings.Repeat("^", width)
}
