package keys

import (
	"github.com/charmbracelet/bubbles/key"
)

// Common keys shared across views
type Common struct {
	Quit key.Binding
	Help key.Binding
}

// Grid view specific keys
type Grid struct {
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Home    key.Binding
	End     key.Binding
	Grab    key.Binding
	Esc     key.Binding
	Preview key.Binding
	Commit  key.Binding
}

// Confirm view specific keys
type Confirm struct {
	Yes key.Binding
	No  key.Binding
}

// KeyMap holds all key bindings and help functions
type KeyMap struct {
	Common  Common
	Grid    Grid
	Confirm Confirm

	// grabbed switches the help text of the arrow keys
	grabbed bool
}

// NewKeyMap creates a new key map
func NewKeyMap() *KeyMap {
	km := &KeyMap{}

	km.Common = Common{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
	}

	km.Grid = Grid{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "right"),
		),
		Home: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "first"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "last"),
		),
		Grab: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "grab/drop"),
		),
		Esc: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "drop"),
		),
		Preview: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "preview"),
		),
		Commit: key.NewBinding(
			key.WithKeys("enter", "w"),
			key.WithHelp("enter", "save order"),
		),
	}

	km.Confirm = Confirm{
		Yes: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "yes"),
		),
		No: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "no"),
		),
	}

	return km
}

// SetGrabbed switches the help between cursor movement and item movement
func (k *KeyMap) SetGrabbed(grabbed bool) {
	k.grabbed = grabbed
	verb := "move"
	if grabbed {
		verb = "carry"
	}
	k.Grid.Up.SetHelp("↑/k", verb+" up")
	k.Grid.Down.SetHelp("↓/j", verb+" down")
	k.Grid.Left.SetHelp("←/h", verb+" left")
	k.Grid.Right.SetHelp("→/l", verb+" right")
	k.Grid.Esc.SetEnabled(grabbed)
}

// Help interface implementations

// ShortHelp returns condensed help view
func (k KeyMap) ShortHelp() []key.Binding {
	if k.grabbed {
		return []key.Binding{k.Grid.Left, k.Grid.Right, k.Grid.Grab, k.Grid.Esc, k.Common.Help}
	}
	return []key.Binding{k.Grid.Grab, k.Grid.Commit, k.Grid.Preview, k.Common.Quit, k.Common.Help}
}

// FullHelp returns complete help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Grid.Up, k.Grid.Down, k.Grid.Left, k.Grid.Right},
		{k.Grid.Home, k.Grid.End, k.Grid.Grab, k.Grid.Esc},
		{k.Grid.Preview, k.Grid.Commit, k.Common.Quit, k.Common.Help},
	}
}
