package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// confirmView renders the commit confirmation dialog over the grid
func (m Model) confirmView() string {
	baseView := m.gridView()
	dialogContent := m.styles.RenderDialog(
		lipgloss.JoinVertical(lipgloss.Center,
			fmt.Sprintf("Rename %d %s in this order?", m.collection.Len(), pluralize(m.collection.Len(), "file")),
			"The original names are kept in a backup manifest.",
			"",
			"(y/n)",
		),
	)
	return m.renderDialogOverBase(baseView, dialogContent)
}

// renderDialogOverBase renders dialog box centered over base view
func (m Model) renderDialogOverBase(baseView, dialogContent string) string {
	baseLines := strings.Split(baseView, "\n")
	dialogLines := strings.Split(dialogContent, "\n")

	if len(baseLines) < len(dialogLines) {
		baseLines = append(baseLines, make([]string, len(dialogLines)-len(baseLines))...)
	}
	dialogStartLine := (len(baseLines) - len(dialogLines)) / 2

	for i, line := range dialogLines {
		centeredLine := lipgloss.NewStyle().
			Width(m.width).
			Align(lipgloss.Center).
			Render(line)
		baseLines[dialogStartLine+i] = centeredLine
	}

	return strings.Join(baseLines, "\n")
}
