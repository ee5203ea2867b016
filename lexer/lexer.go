// Package lexer splits strptime-style patterns such as "%Y-%m-%d" into tokens.
package lexer

import (
	"io"
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Lexer walks a pattern left to right. It holds no state besides its cursor,
// so two lexers over the same pattern always yield the same sequence.
type Lexer struct {
	src string
	pos int
}

func New(pattern string) *Lexer {
	return &Lexer{src: pattern}
}

// Next returns the next token, or io.EOF once the pattern is exhausted.
// A *Error does not stop the lexer; the offending specifier is skipped.
func (l *Lexer) Next() (Token, error) {
	if l.pos >= len(l.src) {
		return Token{}, io.EOF
	}

	start := l.pos
	if l.src[start] != '%' {
		// Literal run up to the next specifier
		end := strings.IndexByte(l.src[start:], '%')
		if end < 0 {
			end = len(l.src)
		} else {
			end += start
		}
		l.pos = end
		return Token{Kind: Literal, Pattern: l.src[start:end]}, nil
	}

	l.pos++
	if l.pos >= len(l.src) {
		return Token{}, &Error{Kind: UnexpectedEOF, Src: l.src, Span: Span{Offset: start, Length: 1}}
	}

	ident, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size

	if kind, ok := specifiers[ident]; ok {
		return Token{Kind: kind}, nil
	}

	span := Span{Offset: start, Length: 1 + size}
	if unicode.IsSpace(ident) {
		return Token{}, &Error{Kind: InvalidWhitespace, Src: l.src, Span: span}
	}
	return Token{}, &Error{Kind: InvalidFormat, Src: l.src, Span: span}
}

// All yields the remaining tokens. Errors are yielded in place and iteration
// continues unless the caller breaks.
func (l *Lexer) All() iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		for {
			tok, err := l.Next()
			if err == io.EOF {
				return
			}
			if !yield(tok, err) {
				return
			}
		}
	}
}

// Tokenize lexes the whole pattern and stops at the first error.
func Tokenize(pattern string) ([]Token, error) {
	var tokens []Token
	for tok, err := range New(pattern).All() {
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
	return tokens, nil
}
