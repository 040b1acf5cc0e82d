package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/babarot/imgsort/internal/core/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/muesli/reflow/truncate"
)

const (
	ellipsis = "…"

	markBefore = "▌"
	markAfter  = "▐"
)

// View returns the string representation of the current UI state
func (m Model) View() string {
	defer color.Unset()

	// Handle error state
	if m.err != nil {
		slog.Error("rendering of the view has stopped", "error", m.err)
		return m.err.Error()
	}

	switch m.state.current {
	case GRID_VIEW:
		return m.gridView()

	case CONFIRM_VIEW:
		return m.confirmView()

	default:
		return ""
	}
}

func (m Model) gridView() string {
	sections := []string{
		m.headerView(),
		m.cellsView(),
		m.footerView(),
	}
	if h := m.previewHeight(); h > 0 {
		sections = append(sections, m.previewView(h-1))
	}
	sections = append(sections, m.help.View(m.keyMap))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) headerView() string {
	title := fmt.Sprintf("imgsort  %s  (%d images)", m.opts.Title, m.collection.Len())
	return m.styles.Header.Render(truncate.StringWithTail(title, uint(max(m.width-2, 1)), ellipsis)) + "\n"
}

// cellsView renders the visible rows of the grid. The rows drawn here must
// match the geometry snapshot used for hit testing.
func (m Model) cellsView() string {
	cols := m.layout.Cols()
	n := m.collection.Len()
	if n == 0 {
		return lipgloss.NewStyle().
			Height(cellHeight).
			Foreground(lipgloss.Color("240")).
			Render("  no images")
	}

	var rows []string
	first := m.offset * cols
	last := min((m.offset+m.visibleRows())*cols, n)
	for start := first; start < last; start += cols {
		var cells []string
		for i := start; i < min(start+cols, last); i++ {
			cells = append(cells, m.cellView(i))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m Model) cellView(i int) string {
	item, _ := m.collection.At(i)
	inner := m.cellWidth() - 2

	grabbedID, grabbed := m.state.Grabbed()
	hover := m.state.drag.hover
	isTarget := m.state.drag.hovered && hover.TargetIndex == i

	style := m.styles.Cell
	switch {
	case grabbed && item.ID == grabbedID:
		style = m.styles.Grabbed
	case isTarget:
		style = m.styles.Target
	case i == m.cursor:
		style = m.styles.Cursor
	}

	rank := m.styles.Rank.Render(fmt.Sprintf("#%02d", i+1))
	if item.HasThumb() {
		rank += lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render(" ▣")
	}
	name := m.styles.Name.Render(truncate.StringWithTail(item.Name(), uint(max(inner-1, 1)), ellipsis))

	lines := []string{
		lipgloss.PlaceHorizontal(inner, lipgloss.Left, rank),
		lipgloss.PlaceHorizontal(inner, lipgloss.Left, name),
	}
	if isTarget {
		mark := m.styles.DropMark.Render(markBefore)
		pos := lipgloss.Left
		if hover.InsertAfter {
			mark = m.styles.DropMark.Render(markAfter)
			pos = lipgloss.Right
		}
		lines[0] = lipgloss.PlaceHorizontal(inner, pos, mark)
	}
	return style.Render(strings.Join(lines, "\n"))
}

func (m Model) footerView() string {
	item, ok := m.collection.At(m.cursor)
	if !ok {
		return m.styles.Footer.Render("")
	}
	parts := []string{
		fmt.Sprintf("%d/%d", m.cursor+1, m.collection.Len()),
		item.Name(),
	}
	if size := m.opts.Size(item.ID); size > 0 {
		parts = append(parts, humanize.Bytes(uint64(size)))
	}
	if m.moves > 0 {
		parts = append(parts, fmt.Sprintf("%d %s", m.moves, pluralize(m.moves, "move")))
	}
	if id, grabbed := m.state.Grabbed(); grabbed {
		parts = append(parts, "carrying "+m.nameOf(id))
	}
	return m.styles.Footer.Render(truncate.StringWithTail(strings.Join(parts, " • "), uint(max(m.width-2, 1)), ellipsis))
}

func (m Model) previewView(height int) string {
	style := m.styles.Preview.Height(height).MaxHeight(height + 1)
	k, ok := m.previewKey()
	if !ok {
		return style.Render("")
	}
	content, ok := m.previews.get(k)
	switch {
	case !ok:
		content = "loading preview" + ellipsis
	case content == "":
		content = "no preview available"
	}
	return style.Render(content)
}

func (m Model) nameOf(id types.ItemID) string {
	item, ok := m.collection.At(m.collection.IndexOf(id))
	if !ok {
		return ""
	}
	return item.Name()
}

func pluralize(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
