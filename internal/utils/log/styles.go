package log

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	charmlog "github.com/charmbracelet/log"
)

var (
	debugStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080")) // Gray
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#0000FF")) // Blue
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFF00")) // Yellow
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")) // Red

	fatalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Background(lipgloss.Color("#000000")).
			Bold(true)

	levelStyles = map[Level]lipgloss.Style{
		DebugLevel: debugStyle,
		InfoLevel:  infoStyle,
		WarnLevel:  warnStyle,
		ErrorLevel: errorStyle,
		FatalLevel: fatalStyle,
	}
)

func newStyles() *Styles {
	styles := charmlog.DefaultStyles()
	for level, style := range levelStyles {
		styles.Levels[level] = style.SetString(strings.ToUpper(level.String()))
	}
	return styles
}

// Highlight makes the given text stand out (yellow fg and dark bg)
func Highlight(text string) string {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("#F0F080")).
		Background(lipgloss.Color("#3A3A3A")).
		Bold(true).
		Render(" " + text + " ")
}
