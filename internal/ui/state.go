package ui

import "github.com/babarot/imgsort/internal/core/types"

// ViewType represents the current view state
type ViewType uint8

const (
	GRID_VIEW ViewType = iota
	CONFIRM_VIEW
	QUITTING
)

func (v ViewType) String() string {
	switch v {
	case GRID_VIEW:
		return "grid view"
	case CONFIRM_VIEW:
		return "confirm view"
	case QUITTING:
		return "quit"
	}
	return "unknown"
}

type ViewState struct {
	current  ViewType
	previous ViewType
	drag     drag
	preview  preview
}

// drag tracks a pointer or keyboard grab. The source is tracked by id so
// that it survives the index shifts of keyboard moves.
type drag struct {
	active bool
	mouse  bool
	source types.ItemID

	// hover is the pending request under the pointer, if any
	hover   types.MoveRequest
	hovered bool
}

type preview struct {
	enabled bool
}

// NewViewState creates a new ViewState with default values
func NewViewState(previewEnabled bool) *ViewState {
	return &ViewState{
		current:  GRID_VIEW,
		previous: GRID_VIEW,
		preview:  preview{enabled: previewEnabled},
	}
}

// SetView changes the current view and updates the previous view
func (v *ViewState) SetView(newView ViewType) {
	v.previous = v.current
	v.current = newView
}

// Grab starts carrying the item id
func (v *ViewState) Grab(id types.ItemID, mouse bool) {
	v.drag = drag{active: true, mouse: mouse, source: id}
}

// Release ends the current grab
func (v *ViewState) Release() {
	v.drag = drag{}
}

// Grabbed returns the carried item, if any
func (v *ViewState) Grabbed() (types.ItemID, bool) {
	return v.drag.source, v.drag.active
}

// TogglePreview switches the image preview on and off
func (v *ViewState) TogglePreview() {
	v.preview.enabled = !v.preview.enabled
}
