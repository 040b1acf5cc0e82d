// Package confirm is a single-keystroke yes/no prompt.
package confirm

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/jimschubert/answer/colors"
)

// Decision is an enumeration of decisions available in the prompt
type Decision int

const (
	// Undecided indicates the user has not made a selection yet
	Undecided Decision = iota

	// Accepted indicates the user answered yes
	Accepted

	// Denied indicates the user answered no
	Denied
)

// String satisfies the fmt.Stringer interface
func (d Decision) String() string {
	return [...]string{
		"undecided",
		"accepted",
		"denied",
	}[d]
}

// IsAccepted is a helper to indicate the positive confirmation state was selected
func (d Decision) IsAccepted() bool {
	return d == Accepted
}

// Styles holds relevant styles used for rendering
type Styles struct {
	PromptPrefix lipgloss.Style
	Prompt       lipgloss.Style
	Placeholder  lipgloss.Style
}

// Model is the bubble tea model of the prompt. It decides on the first
// matching key press; enter picks the default.
type Model struct {
	PromptPrefix string
	Prompt       string

	AcceptedDecisionText string
	DeniedDecisionText   string

	DefaultValue Decision
	Styles       Styles

	selected Decision
	done     bool
	text     textinput.Model
}

// New creates a new model with default settings
func New() Model {
	return Model{
		PromptPrefix:         "? ",
		AcceptedDecisionText: "y",
		DeniedDecisionText:   "n",
		DefaultValue:         Denied,
		Styles: Styles{
			PromptPrefix: lipgloss.NewStyle().Foreground(lipgloss.Color(colors.PromptPrefix)),
			Placeholder:  lipgloss.NewStyle().Foreground(lipgloss.Color(colors.Placeholder)),
		},
	}
}

// Selected retrieves the user-selected Decision value
func (m *Model) Selected() Decision {
	return m.selected
}

// Done reports whether the user has answered
func (m *Model) Done() bool {
	return m.done
}

// Value returns the Decision in the text defined by the caller
func (m *Model) Value() string {
	switch m.selected {
	case Accepted:
		return m.AcceptedDecisionText
	case Denied:
		return m.DeniedDecisionText
	}
	return ""
}

func (m *Model) placeholder() string {
	yes, no := m.AcceptedDecisionText, m.DeniedDecisionText
	switch m.DefaultValue {
	case Accepted:
		yes = strings.ToUpper(yes)
	case Denied:
		no = strings.ToUpper(no)
	}
	return yes + "/" + no
}

// Init satisfies the tea.Model interface
func (m *Model) Init() tea.Cmd {
	input := textinput.New()
	input.Placeholder = m.placeholder()
	input.Prompt = m.Prompt
	if !strings.HasSuffix(input.Prompt, " ") {
		input.Prompt += " "
	}
	input.PromptStyle = m.Styles.Prompt
	input.PlaceholderStyle = m.Styles.Placeholder
	input.CharLimit = 1
	input.Focus()
	m.text = input
	return nil
}

func (m *Model) decide(d Decision) (tea.Model, tea.Cmd) {
	m.selected = d
	m.done = true
	return m, tea.Quit
}

// Update satisfies the tea.Model interface
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch km.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		return m.decide(Denied)
	case tea.KeyEnter:
		if m.DefaultValue != Undecided {
			return m.decide(m.DefaultValue)
		}
		return m, nil
	}
	switch strings.ToLower(km.String()) {
	case strings.ToLower(m.AcceptedDecisionText[:1]):
		return m.decide(Accepted)
	case strings.ToLower(m.DeniedDecisionText[:1]):
		return m.decide(Denied)
	}
	return m, nil
}

// View satisfies the tea.Model interface
func (m *Model) View() string {
	var b strings.Builder
	if m.PromptPrefix != "" {
		b.WriteString(m.Styles.PromptPrefix.Inline(true).Render(m.PromptPrefix))
	}
	if m.done {
		b.WriteString(m.Styles.Prompt.Inline(true).Render(m.Prompt + " "))
		b.WriteString(m.Value())
		b.WriteRune('\n')
		return b.String()
	}
	b.WriteString(m.text.View())
	return b.String()
}
