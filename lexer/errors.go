package lexer

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidFormat     = errors.New("invalid format specifier")
	ErrInvalidWhitespace = errors.New("invalid whitespace after '%'")
	ErrUnexpectedEOF     = errors.New("unexpected end of pattern")
)

type ErrorKind int

const (
	InvalidFormat ErrorKind = iota
	InvalidWhitespace
	UnexpectedEOF
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidFormat:
		return "invalid_format"
	case InvalidWhitespace:
		return "invalid_whitespace"
	case UnexpectedEOF:
		return "unexpected_eof"
	}
	return "unknown"
}

// Span is a byte range inside the pattern.
type Span struct {
	Offset int `json:"offset"`
	Length int `json:"length"`
}

// Error reports a malformed pattern. Src is the full pattern so callers can
// point at Span when rendering.
type Error struct {
	Kind ErrorKind
	Src  string
	Span Span
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at byte %d of pattern %q", e.Unwrap(), e.Span.Offset, e.Src)
}

func (e *Error) Unwrap() error {
	switch e.Kind {
	case InvalidWhitespace:
		return ErrInvalidWhitespace
	case UnexpectedEOF:
		return ErrUnexpectedEOF
	}
	return ErrInvalidFormat
}
