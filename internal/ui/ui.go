// Package ui is the interactive grid in which images are reordered.
package ui

import (
	"errors"
	"fmt"

	"github.com/babarot/imgsort/internal/config"
	"github.com/babarot/imgsort/internal/order"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrInputCanceled is returned when the user quits without committing
var ErrInputCanceled = errors.New("input is canceled")

// Outcome is what the user decided in the grid
type Outcome struct {
	Commit bool
	Moves  int
}

// Run shows the grid until the user commits or quits. The collection is
// reordered in place.
func Run(col *order.Collection, c *config.Config, opts Options) (Outcome, error) {
	m := NewModel(col, c.UI, opts)

	returnModel, err := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	).Run()
	if err != nil {
		return Outcome{}, err
	}

	final, ok := returnModel.(Model)
	if !ok {
		return Outcome{}, fmt.Errorf("unexpected model %T", returnModel)
	}
	if final.err != nil {
		return Outcome{}, final.err
	}

	out := Outcome{Commit: final.Committed(), Moves: final.Moves()}
	if !out.Commit {
		if msg := c.UI.ExitMessage; msg != "" {
			fmt.Println(msg)
		}
		return out, ErrInputCanceled
	}
	return out, nil
}
