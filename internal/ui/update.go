package ui

import (
	"log/slog"

	"github.com/babarot/imgsort/internal/core/types"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return m.loadPreviewCmd()
}

// Update handles all UI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch m.state.current {
		case CONFIRM_VIEW:
			return m.handleConfirmKeys(msg)
		default:
			return m.handleGridKeys(msg)
		}

	case tea.MouseMsg:
		if m.state.current != GRID_VIEW {
			return m, nil
		}
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if !m.state.drag.mouse {
			m.relayout()
		}
		return m, m.loadPreviewCmd()

	case previewLoadedMsg:
		if msg.err != nil {
			m.previews.put(msg.key, "")
		} else {
			m.previews.put(msg.key, msg.content)
		}
		return m, nil

	case errorMsg:
		m.state.SetView(QUITTING)
		m.err = msg
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleGridKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	slog.Debug("key pressed", "key", msg.String())

	_, grabbed := m.state.Grabbed()

	// A mouse drag owns the grid until release: keys other than quit and
	// esc would move the item or replace the layout under the pointer
	if m.state.drag.mouse {
		switch {
		case key.Matches(msg, m.keyMap.Common.Quit):
			m.state.SetView(QUITTING)
			return m, tea.Quit
		case key.Matches(msg, m.keyMap.Grid.Esc):
			m.release()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keyMap.Common.Quit):
		m.state.SetView(QUITTING)
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Common.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()

	case key.Matches(msg, m.keyMap.Grid.Left):
		return m.step(-1, false)

	case key.Matches(msg, m.keyMap.Grid.Right):
		return m.step(1, true)

	case key.Matches(msg, m.keyMap.Grid.Up):
		return m.step(-m.layout.Cols(), false)

	case key.Matches(msg, m.keyMap.Grid.Down):
		return m.step(m.layout.Cols(), true)

	case key.Matches(msg, m.keyMap.Grid.Home):
		return m.step(-m.cursor, false)

	case key.Matches(msg, m.keyMap.Grid.End):
		return m.step(m.collection.Len()-1-m.cursor, true)

	case key.Matches(msg, m.keyMap.Grid.Grab):
		if grabbed {
			m.release()
			break
		}
		if item, ok := m.collection.At(m.cursor); ok {
			m.grab(item.ID, false)
		}

	case key.Matches(msg, m.keyMap.Grid.Esc):
		m.release()

	case key.Matches(msg, m.keyMap.Grid.Preview):
		m.state.TogglePreview()
		m.relayout()
		return m, m.loadPreviewCmd()

	case key.Matches(msg, m.keyMap.Grid.Commit):
		m.release()
		if m.opts.Confirm {
			m.state.SetView(CONFIRM_VIEW)
			return m, nil
		}
		m.committed = true
		m.state.SetView(QUITTING)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Confirm.Yes):
		m.committed = true
		m.state.SetView(QUITTING)
		return m, tea.Quit

	case key.Matches(msg, m.keyMap.Confirm.No):
		m.state.SetView(GRID_VIEW)
		return m, nil

	case msg.Type == tea.KeyCtrlC:
		m.state.SetView(QUITTING)
		return m, tea.Quit
	}
	return m, nil
}

// step moves the cursor by delta cells. While an item is grabbed the item
// travels with the cursor: it is dropped before the target cell when moving
// backwards and after it when moving forwards.
func (m Model) step(delta int, after bool) (tea.Model, tea.Cmd) {
	n := m.collection.Len()
	if n == 0 || delta == 0 {
		return m, nil
	}
	target := max(min(m.cursor+delta, n-1), 0)

	if _, grabbed := m.state.Grabbed(); grabbed {
		m.apply(types.MoveRequest{SourceIndex: m.cursor, TargetIndex: target, InsertAfter: after})
	} else {
		m.cursor = target
	}
	m.relayout()
	return m, m.loadPreviewCmd()
}

// apply performs req and moves the cursor along with the item
func (m *Model) apply(req types.MoveRequest) {
	if !m.collection.WouldMove(req) {
		return
	}
	item, _ := m.collection.At(req.SourceIndex)
	to, err := m.collection.Move(req)
	if err != nil {
		slog.Error("move failed", "request", req, "error", err)
		return
	}
	m.moves++
	m.cursor = to
	slog.Debug("moved", "id", item.ID, "name", item.Name(), "from", req.SourceIndex, "to", to)
}

func (m *Model) grab(id types.ItemID, mouse bool) {
	m.state.Grab(id, mouse)
	m.keyMap.SetGrabbed(true)
}

func (m *Model) release() {
	m.state.Release()
	m.keyMap.SetGrabbed(false)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
			// Scrolling mid-drag would move the item and invalidate the
			// layout the drag started with
			if m.state.drag.mouse {
				return m, nil
			}
			if msg.Button == tea.MouseButtonWheelUp {
				return m.step(-m.layout.Cols(), false)
			}
			return m.step(m.layout.Cols(), true)
		case tea.MouseButtonLeft:
			if !m.inGrid(msg.Y) {
				return m, nil
			}
			i, _, ok := m.layout.HitTest(msg.X, msg.Y)
			if !ok {
				return m, nil
			}
			item, _ := m.collection.At(i)
			m.cursor = i
			m.grab(item.ID, true)
			return m, m.loadPreviewCmd()
		}

	case tea.MouseActionMotion:
		if !m.state.drag.mouse {
			return m, nil
		}
		m.state.drag.hover, m.state.drag.hovered = m.dropRequest(msg.X, msg.Y)

	case tea.MouseActionRelease:
		if !m.state.drag.mouse {
			return m, nil
		}
		if req, ok := m.dropRequest(msg.X, msg.Y); ok {
			m.apply(req)
		}
		m.release()
		m.relayout()
		return m, m.loadPreviewCmd()
	}
	return m, nil
}

// dropRequest is the move a release at (x, y) would perform. ok is false
// when the release would do nothing, so no drop mark is shown for it.
func (m Model) dropRequest(x, y int) (types.MoveRequest, bool) {
	if !m.inGrid(y) {
		return types.MoveRequest{}, false
	}
	source := m.collection.IndexOf(m.state.drag.source)
	if source < 0 {
		return types.MoveRequest{}, false
	}
	req, ok := m.layout.Request(source, x, y)
	if !ok || !m.collection.WouldMove(req) {
		return types.MoveRequest{}, false
	}
	return req, true
}
