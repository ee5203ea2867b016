package datetime

import (
	"log/slog"
	"slices"
)

// candidates are tried in order and the first match wins, so reordering
// changes results. Duplicates are kept on purpose.
var candidates = [...]string{
	"%Y/%m/%d",
	"%Y-%m-%d",
	"%Y/%d/%m",
	"%Y/%d/%m",
	"%d/%m/%Y",
	"%d-%m-%Y",
	"%y/%m/%d",
	"%y-%m-%d",
	"%y/%d/%m",
	"%y/%d/%m",
	"%H:%M:%S",
	"%Hh:%Mm:%Ss",
	"%H %p:%M:%S",
	"%H %p:%M:%S",
	"%H:%M",
	"%Hh:%Mm",
	"%H:%M %p",
}

// Candidates returns a copy of the patterns Guess tries, in order.
func Candidates() []string {
	return slices.Clone(candidates[:])
}

// Guess tries every candidate pattern against input and returns the first
// successful parse together with the pattern that produced it.
func Guess(input string) (Datetime, string, bool) {
	for _, format := range candidates {
		slog.Debug("trying format", "input", input, "format", format)

		dt, err := Parse(input, format)
		if err == nil {
			return dt, format, true
		}

		slog.Debug("format did not match", "input", input, "format", format, "err", err)
	}
	return Datetime{}, "", false
}

// TryGuess is Guess without the matched pattern.
func TryGuess(input string) (Datetime, bool) {
	dt, _, ok := Guess(input)
	return dt, ok
}
