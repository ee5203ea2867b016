package datetime

import (
	"fmt"
	"strings"

	"github.com/honganh1206/datetime/lexer"
)

// Format renders d using the same pattern language Parse accepts, so that
// Parse(d.Format(p), p) gives back d for any valid d and four-digit year.
func (d Datetime) Format(pattern string) (string, error) {
	var sb strings.Builder

	for tok, err := range lexer.New(pattern).All() {
		if err != nil {
			return "", err
		}

		switch tok.Kind {
		case lexer.FullYear:
			fmt.Fprintf(&sb, "%04d", d.Year)
		case lexer.HalfYear:
			fmt.Fprintf(&sb, "%02d", d.Year%100)
		case lexer.FullMonth:
			fmt.Fprintf(&sb, "%02d", d.Month)
		case lexer.Day:
			fmt.Fprintf(&sb, "%02d", d.Day)
		case lexer.TwentyFourHourDay:
			fmt.Fprintf(&sb, "%02d", d.Hour)
		case lexer.TwelveHourDay:
			h := d.Hour % 12
			if h == 0 {
				h = 12
			}
			fmt.Fprintf(&sb, "%02d", h)
		case lexer.Minute:
			fmt.Fprintf(&sb, "%02d", d.Minute)
		case lexer.Second:
			fmt.Fprintf(&sb, "%02d", d.Second)
		case lexer.AmOrPm:
			if d.Hour < 12 {
				sb.WriteString("AM")
			} else {
				sb.WriteString("PM")
			}
		case lexer.Literal:
			sb.WriteString(tok.Pattern)
		default:
			return "", &UnsupportedError{Token: tok}
		}
	}

	return sb.String(), nil
}
