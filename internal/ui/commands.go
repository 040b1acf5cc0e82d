package ui

import (
	"image/color"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/eliukblau/pixterm/pkg/ansimage"
)

// loadPreviewCmd renders the preview of the item under the cursor unless
// it is cached or already being rendered.
func (m Model) loadPreviewCmd() tea.Cmd {
	k, ok := m.previewKey()
	if !ok || !m.previews.claim(k) {
		return nil
	}
	return func() tea.Msg {
		// Each terminal row shows two pixel rows with half blocks
		img, err := ansimage.NewScaledFromFile(k.path, k.height*2, k.width, color.Black,
			ansimage.ScaleModeFit, ansimage.NoDithering)
		if err != nil {
			slog.Debug("cannot preview", "path", k.path, "error", err)
			return previewLoadedMsg{key: k, err: err}
		}
		return previewLoadedMsg{key: k, content: img.Render()}
	}
}
