package datetime

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/honganh1206/datetime/lexer"
)

// cursor tracks the unconsumed part of the input. It never moves backwards.
type cursor struct {
	src  string
	rest string
}

func (c *cursor) offset() int {
	return len(c.src) - len(c.rest)
}

func (c *cursor) advance(n int) {
	c.rest = c.rest[n:]
}

// peek returns about n bytes, widened so no UTF-8 character is split.
func (c *cursor) peek(n int) string {
	for n < len(c.rest) && !utf8.RuneStart(c.rest[n]) {
		n++
	}
	if n >= len(c.rest) {
		return c.rest
	}
	return c.rest[:n]
}

// digits consumes a fixed-width, non-negative decimal number.
func (c *cursor) digits(field Field, width int) (int, error) {
	if len(c.rest) < width {
		return 0, &ShortInputError{Field: field, Expected: width, Actual: len(c.rest), Src: c.src, Offset: c.offset()}
	}

	n := 0
	for n < width && c.rest[n] >= '0' && c.rest[n] <= '9' {
		n++
	}
	if n > 0 && n < width && atSeparator(c.rest[n:]) {
		// e.g. "23-5" for %Y: only two digits before the separator
		return 0, &ShortInputError{Field: field, Expected: width, Actual: n, Src: c.src, Offset: c.offset()}
	}

	text := c.peek(width)
	v, err := strconv.ParseUint(text, 10, 64)
	if err != nil {
		return 0, &NumberError{Field: field, Text: text, Src: c.src, Offset: c.offset(), Err: err}
	}

	c.advance(width)
	return int(v), nil
}

// atSeparator reports whether s starts with something that cannot be part of
// a number, such as '-', '/', ':' or a space.
func atSeparator(s string) bool {
	r, _ := utf8.DecodeRuneInString(s)
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

// Parse reads input according to format, e.g. Parse("2023-10-15", "%Y-%m-%d").
// Tokens are matched strictly left to right without backtracking. Input left
// over after the last token is ignored.
func Parse(input, format string) (Datetime, error) {
	c := &cursor{src: input, rest: input}
	b := NewBuilder()

	for tok, err := range lexer.New(format).All() {
		if err != nil {
			return Datetime{}, err
		}

		switch tok.Kind {
		case lexer.FullYear:
			year, err := c.digits(FieldYear, 4)
			if err != nil {
				return Datetime{}, err
			}
			b = b.Year(year)
		case lexer.HalfYear:
			y, err := c.digits(FieldYear, 2)
			if err != nil {
				return Datetime{}, err
			}
			b = b.Year(pivotYear(y))
		case lexer.FullMonth:
			month, err := c.digits(FieldMonth, 2)
			if err != nil {
				return Datetime{}, err
			}
			b = b.Month(month)
		case lexer.Day:
			day, err := c.digits(FieldDay, 2)
			if err != nil {
				return Datetime{}, err
			}
			b = b.Day(day)
		case lexer.TwentyFourHourDay, lexer.TwelveHourDay:
			hour, err := c.digits(FieldHour, 2)
			if err != nil {
				return Datetime{}, err
			}
			b = b.Hour(hour)
		case lexer.Minute:
			minute, err := c.digits(FieldMinute, 2)
			if err != nil {
				return Datetime{}, err
			}
			b = b.Minute(minute)
		case lexer.Second:
			second, err := c.digits(FieldSecond, 2)
			if err != nil {
				return Datetime{}, err
			}
			b = b.Second(second)
		case lexer.AmOrPm:
			// Relies on an earlier %I having set the hour
			switch {
			case strings.HasPrefix(c.rest, "PM"):
				c.advance(2)
				if b.hour < 12 {
					b = b.Hour(b.hour + 12)
				}
			case strings.HasPrefix(c.rest, "AM"):
				c.advance(2)
				if b.hour == 12 {
					b = b.Hour(0)
				}
			default:
				return Datetime{}, &SequenceError{Expected: "AM or PM", Unexpected: c.peek(2), Src: input, Offset: c.offset()}
			}
		case lexer.Literal:
			if !strings.HasPrefix(c.rest, tok.Pattern) {
				return Datetime{}, &SequenceError{Expected: tok.Pattern, Unexpected: c.peek(len(tok.Pattern)), Src: input, Offset: c.offset()}
			}
			c.advance(len(tok.Pattern))
		default:
			return Datetime{}, &UnsupportedError{Token: tok}
		}
	}

	return b.Build()
}

// pivotYear maps two-digit years below 25 to the 2000s, the rest to the 1900s.
func pivotYear(y int) int {
	if y < 25 {
		return y + 2000
	}
	return y + 1900
}
