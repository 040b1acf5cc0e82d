package ui

import (
	"github.com/babarot/imgsort/internal/config"
	"github.com/babarot/imgsort/internal/core/types"
	"github.com/babarot/imgsort/internal/order"
	"github.com/babarot/imgsort/internal/ui/keys"
	"github.com/babarot/imgsort/internal/ui/styles"
	"github.com/charmbracelet/bubbles/help"
)

const (
	// cellHeight is two lines of content plus the border
	cellHeight   = 4
	headerHeight = 2
	footerHeight = 1

	defaultWidth  = 80
	defaultHeight = 24
)

// Options carries what the grid shows besides the items themselves
type Options struct {
	// Title is shown in the header, usually the target directory
	Title string

	// Size returns the size in bytes of an item, for the footer
	Size func(types.ItemID) int64

	// Confirm asks before quitting with a commit
	Confirm bool
}

// Model represents the main UI model following the Bubble Tea pattern
type Model struct {
	// Sequence being reordered; the model is its only mutator while running
	collection *order.Collection

	// State management
	state *ViewState

	// Key mappings
	keyMap *keys.KeyMap

	// Cursor position and first visible row
	cursor int
	offset int

	// Terminal size and the geometry snapshot derived from it
	width  int
	height int
	layout order.Layout

	// Number of applied moves
	moves     int
	committed bool

	// UI components and config
	config   config.UI
	opts     Options
	help     help.Model
	previews *previewCache

	// UI styles
	styles *styles.Styles

	// Error state if any
	err error
}

// NewModel creates a new UI model instance
func NewModel(col *order.Collection, cfg config.UI, opts Options) Model {
	if opts.Size == nil {
		opts.Size = func(types.ItemID) int64 { return 0 }
	}
	m := Model{
		collection: col,
		state:      NewViewState(cfg.Preview.Enabled),
		keyMap:     keys.NewKeyMap(),
		width:      defaultWidth,
		height:     defaultHeight,
		config:     cfg,
		opts:       opts,
		help:       help.New(),
		previews:   newPreviewCache(),
		styles:     styles.New(cfg),
	}
	m.keyMap.SetGrabbed(false)
	m.relayout()
	return m
}

// Committed reports whether the user asked to save the order
func (m Model) Committed() bool {
	return m.committed
}

// Moves returns the number of moves applied
func (m Model) Moves() int {
	return m.moves
}

// Cursor returns the index under the cursor
func (m Model) Cursor() int {
	return m.cursor
}

func (m Model) cellWidth() int {
	return max(m.config.CellWidth, 8)
}

func (m Model) cols() int {
	return max(m.width/m.cellWidth(), 1)
}

func (m Model) previewHeight() int {
	if !m.state.preview.enabled || m.config.Preview.Height <= 0 {
		return 0
	}
	return m.config.Preview.Height + 1 // top border
}

func (m Model) helpHeight() int {
	if m.help.ShowAll {
		return 5
	}
	return 1
}

// visibleRows is the number of grid rows that fit between header and footer
func (m Model) visibleRows() int {
	h := m.height - headerHeight - footerHeight - m.helpHeight() - m.previewHeight()
	return max(h/cellHeight, 1)
}

// relayout scrolls the cursor into view and takes a new geometry snapshot.
// It must not run during a mouse drag, so that the snapshot stays the one
// the drag started with.
func (m *Model) relayout() {
	cols := m.cols()
	rows := m.visibleRows()
	row := m.cursor / cols
	switch {
	case row < m.offset:
		m.offset = row
	case row >= m.offset+rows:
		m.offset = row - rows + 1
	}
	totalRows := (m.collection.Len() + cols - 1) / cols
	m.offset = max(min(m.offset, totalRows-rows), 0)

	m.layout = order.Snapshot(
		m.collection.Len(), cols,
		m.cellWidth(), cellHeight,
		0, headerHeight-m.offset*cellHeight,
	)
}

// inGrid reports whether screen row y shows grid cells
func (m Model) inGrid(y int) bool {
	return y >= headerHeight && y < headerHeight+m.visibleRows()*cellHeight
}
