package ui

import (
	"log/slog"

	"github.com/babarot/imgsort/internal/ui/confirm"
	tea "github.com/charmbracelet/bubbletea"
)

// Confirm asks a yes/no question on the terminal. Anything but an explicit
// yes, including a failure to run the prompt, is a no.
func Confirm(prompt string) bool {
	m := confirm.New()
	m.Prompt = prompt
	m.DefaultValue = confirm.Denied

	p := tea.NewProgram(&m)
	if _, err := p.Run(); err != nil {
		slog.Error("confirm failed", "error", err)
		return false
	}

	return m.Selected().IsAccepted()
}
