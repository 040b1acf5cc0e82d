package styles

import (
	"github.com/babarot/imgsort/internal/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Color chart: https://github.com/muesli/termenv

var (
	AccentColor = lipgloss.ANSIColor(termenv.ANSIBrightBlack)
	DimColor    = lipgloss.ANSIColor(termenv.ANSIBlack)
	WarnColor   = lipgloss.ANSIColor(termenv.ANSIYellow)
)

// Styles holds all the styles used in the UI
type Styles struct {
	Header   lipgloss.Style
	Footer   lipgloss.Style
	Cell     lipgloss.Style
	Cursor   lipgloss.Style
	Grabbed  lipgloss.Style
	Target   lipgloss.Style
	Rank     lipgloss.Style
	Name     lipgloss.Style
	Missing  lipgloss.Style
	DropMark lipgloss.Style
	Dialog   lipgloss.Style
	Preview  lipgloss.Style
}

// New creates a new Styles instance with the given configuration
func New(cfg config.UI) *Styles {
	c := cfg.Style
	cell := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(AccentColor).
		Width(cfg.CellWidth - 2)

	return &Styles{
		Header: lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Footer: lipgloss.NewStyle().Foreground(AccentColor).Padding(0, 1),
		Cell:   cell,
		Cursor: cell.
			BorderForeground(lipgloss.Color(c.Cursor)),
		Grabbed: cell.
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(c.Grabbed)),
		Target: cell.
			BorderForeground(lipgloss.Color(c.DropMark)),
		Rank: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.Rank)).
			Bold(true),
		Name:    lipgloss.NewStyle(),
		Missing: lipgloss.NewStyle().Foreground(WarnColor).Strikethrough(true),
		DropMark: lipgloss.NewStyle().
			Foreground(lipgloss.Color(c.DropMark)).
			Bold(true),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(c.Grabbed)).
			Foreground(lipgloss.Color(c.Grabbed)).
			Bold(true).
			Padding(1, 1).
			Align(lipgloss.Center),
		Preview: lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(DimColor),
	}
}

// RenderDialog renders content in a dialog box
func (s *Styles) RenderDialog(content string) string {
	return s.Dialog.Render(content)
}
