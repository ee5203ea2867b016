// Package ui holds tview markup shared by the interactive views.
package ui

import (
	"fmt"

	"github.com/rivo/tview"
)

const (
	SuccessSymbol = "✓"
	ErrorSymbol   = "✗"
)

type ResultFormat struct {
	Name    string
	Detail  string
	IsError bool
}

// FormatResult renders one status line. Name and Detail are escaped so user
// text is never read as a color tag.
func FormatResult(f ResultFormat) string {
	name, detail := tview.Escape(f.Name), tview.Escape(f.Detail)

	if f.IsError {
		if detail != "" {
			return fmt.Sprintf("[red]%s [white::-]%s [blue]%s[white::-]\n", ErrorSymbol, name, detail)
		}
		return fmt.Sprintf("[red]%s [white::-]%s\n", ErrorSymbol, name)
	}

	if detail != "" {
		return fmt.Sprintf("[green]%s [white::-]%s [blue]%s[white::-]\n", SuccessSymbol, name, detail)
	}
	return fmt.Sprintf("[green]%s [white::-]%s\n", SuccessSymbol, name)
}
