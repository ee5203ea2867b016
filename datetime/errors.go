package datetime

import (
	"errors"
	"fmt"

	"github.com/honganh1206/datetime/lexer"
)

var (
	ErrInvalidValue  = errors.New("invalid value")
	ErrWrongSequence = errors.New("unexpected sequence")
	ErrInputTooShort = errors.New("input too short")
	ErrInvalidNumber = errors.New("invalid number")
)

// ValueError names the single field that failed validation.
type ValueError struct {
	Field    Field
	Expected string
	Got      int
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("invalid value: expected %s for %s but got %d", e.Expected, e.Field, e.Got)
}

func (e *ValueError) Unwrap() error { return ErrInvalidValue }

// SequenceError is returned when the input does not contain the literal text
// (or AM/PM marker) the pattern asks for. Offset is a byte offset into Src.
type SequenceError struct {
	Expected   string
	Unexpected string
	Src        string
	Offset     int
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("unexpected sequence: expected %q, got %q", e.Expected, e.Unexpected)
}

func (e *SequenceError) Unwrap() error { return ErrWrongSequence }

// ShortInputError is returned when a numeric field has fewer digits available
// than its fixed width.
type ShortInputError struct {
	Field    Field
	Expected int
	Actual   int
	Src      string
	Offset   int
}

func (e *ShortInputError) Error() string {
	return fmt.Sprintf("input too short for %s: expected %d digits but got %d", e.Field, e.Expected, e.Actual)
}

func (e *ShortInputError) Unwrap() error { return ErrInputTooShort }

type NumberError struct {
	Field  Field
	Text   string
	Src    string
	Offset int
	Err    error
}

func (e *NumberError) Error() string {
	return fmt.Sprintf("invalid number %q for %s", e.Text, e.Field)
}

func (e *NumberError) Unwrap() []error { return []error{ErrInvalidNumber, e.Err} }

// UnsupportedError is returned for tokens the parser recognizes but cannot
// handle yet, such as %B.
type UnsupportedError struct {
	Token lexer.Token
}

func (e *UnsupportedError) Error() string {
	return fmt.Sprintf("%s (%s) is not supported yet", e.Token.Specifier(), e.Token.Kind)
}

func (e *UnsupportedError) Unwrap() error { return errors.ErrUnsupported }
