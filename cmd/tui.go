package cmd

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/honganh1206/datetime/datetime"
	"github.com/honganh1206/datetime/lexer"
	"github.com/honganh1206/datetime/ui"
	"github.com/honganh1206/datetime/utils"
	"github.com/rivo/tview"
)

// TUI runs the interactive playground. An empty pattern falls back to guessing.
func TUI() error {
	app := tview.NewApplication()

	resultView := tview.NewTextView().
		SetDynamicColors(true).
		SetWordWrap(true)
	resultView.SetTitle("Result").SetBorder(true)

	inputField := tview.NewInputField().SetLabel("Input   ")
	patternField := tview.NewInputField().SetLabel("Pattern ")

	update := func(string) {
		resultView.SetText(evaluate(inputField.GetText(), patternField.GetText()))
	}
	inputField.SetChangedFunc(update)
	patternField.SetChangedFunc(update)

	formats := tview.NewList().ShowSecondaryText(false)
	formats.SetTitle("Formats (Enter to use)").SetBorder(true)
	for _, f := range datetime.Candidates() {
		formats.AddItem(tview.Escape(f), "", 0, func() {
			patternField.SetText(f)
			app.SetFocus(inputField)
		})
	}

	fields := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(inputField, 1, 0, true).
		AddItem(patternField, 1, 0, false)
	fields.SetTitle("Tab to switch, ESC for formats, Ctrl+C to quit").
		SetTitleAlign(tview.AlignLeft).
		SetBorder(true)

	focusables := []tview.Primitive{inputField, patternField}
	focused := 0

	fields.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyTab:
			focused = (focused + 1) % len(focusables)
			app.SetFocus(focusables[focused])
			return nil
		case tcell.KeyESC:
			app.SetFocus(formats)
			return nil
		}
		return event
	})

	formats.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyESC {
			app.SetFocus(focusables[focused])
			return nil
		}
		return event
	})

	left := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(fields, 4, 0, true).
		AddItem(resultView, 0, 1, false)

	mainLayout := tview.NewFlex().
		AddItem(left, 0, 3, true).
		AddItem(formats, 0, 1, false)

	update("")

	return app.SetRoot(mainLayout, true).SetFocus(inputField).Run()
}

// evaluate renders the playground result as tview-tagged text.
func evaluate(input, pattern string) string {
	if input == "" {
		return "[gray::]Type something to parse[-]"
	}

	var b strings.Builder

	if pattern == "" {
		dt, format, ok := datetime.Guess(input)
		if !ok {
			return ui.FormatResult(ui.ResultFormat{Name: "No known format matches", IsError: true})
		}
		return ui.FormatResult(ui.ResultFormat{Name: dt.String(), Detail: format})
	}

	tokens, err := lexer.Tokenize(pattern)
	if err == nil {
		names := make([]string, len(tokens))
		for i, tok := range tokens {
			names[i] = tok.String()
		}
		fmt.Fprintf(&b, "Tokens: %s\n\n", tview.Escape(strings.Join(names, " ")))
	}

	dt, err := datetime.Parse(input, pattern)
	if err != nil {
		fmt.Fprintf(&b, "[red::]%s[-]", tview.Escape(utils.RenderDiagnostic(err)))
		return b.String()
	}

	b.WriteString(ui.FormatResult(ui.ResultFormat{Name: dt.String()}))
	return b.String()
}
