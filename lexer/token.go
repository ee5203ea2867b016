package lexer

import "fmt"

type Kind int

const (
	FullYear Kind = iota
	HalfYear
	FullMonth
	WrittenMonth
	Day
	TwentyFourHourDay
	TwelveHourDay
	Minute
	Second
	AmOrPm
	Literal
)

// Token is one element of a pattern. Pattern is only set for Literal tokens
// and is never empty.
type Token struct {
	Kind    Kind
	Pattern string
}

// Width is the number of input bytes a numeric or AM/PM token consumes.
// Literals consume len(Pattern). WrittenMonth has no fixed width.
func (t Token) Width() int {
	switch t.Kind {
	case FullYear:
		return 4
	case HalfYear, FullMonth, Day, TwentyFourHourDay, TwelveHourDay, Minute, Second, AmOrPm:
		return 2
	case Literal:
		return len(t.Pattern)
	}
	return 0
}

// Specifier returns the pattern text that produced the token.
func (t Token) Specifier() string {
	if t.Kind == Literal {
		return t.Pattern
	}
	for c, k := range specifiers {
		if k == t.Kind {
			return "%" + string(c)
		}
	}
	return ""
}

func (t Token) String() string {
	if t.Kind == Literal {
		return fmt.Sprintf("Literal(%q)", t.Pattern)
	}
	return t.Kind.String()
}

func (k Kind) String() string {
	switch k {
	case FullYear:
		return "FullYear"
	case HalfYear:
		return "HalfYear"
	case FullMonth:
		return "FullMonth"
	case WrittenMonth:
		return "WrittenMonth"
	case Day:
		return "Day"
	case TwentyFourHourDay:
		return "TwentyFourHourDay"
	case TwelveHourDay:
		return "TwelveHourDay"
	case Minute:
		return "Minute"
	case Second:
		return "Second"
	case AmOrPm:
		return "AmOrPm"
	case Literal:
		return "Literal"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

var specifiers = map[rune]Kind{
	'Y': FullYear,
	'y': HalfYear,
	'm': FullMonth,
	'B': WrittenMonth,
	'd': Day,
	'H': TwentyFourHourDay,
	'I': TwelveHourDay,
	'M': Minute,
	'S': Second,
	'p': AmOrPm,
}
