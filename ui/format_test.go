package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatResult(t *testing.T) {
	tests := []struct {
		name string
		in   ResultFormat
		want string
	}{
		{"success", ResultFormat{Name: "parsed"}, "[green]✓ [white::-]parsed\n"},
		{"success with detail", ResultFormat{Name: "guessed", Detail: "%Y-%m-%d"}, "[green]✓ [white::-]guessed [blue]%Y-%m-%d[white::-]\n"},
		{"error", ResultFormat{Name: "no match", IsError: true}, "[red]✗ [white::-]no match\n"},
		{"escapes tags", ResultFormat{Name: "[red]"}, "[green]✓ [white::-][red[]\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatResult(tt.in))
		})
	}
}
