package tui

import (
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/Zuo-Peng/wa-export/internal/render"
)

// loadCurrentPreview renders the selected message into the viewport unless it
// is already shown.
func (m *model) loadCurrentPreview() {
	if len(m.results) == 0 || m.cursor >= len(m.results) {
		return
	}
	idx := m.results[m.cursor].Index
	if idx == m.previewIdx {
		return
	}
	m.preview.SetContent(render.Message(m.msgs[idx], render.TerminalOptions{
		Me:    m.me,
		Width: m.previewWidth(),
		Query: m.query,
	}))
	m.preview.GotoTop()
	m.previewIdx = idx
}

// newViewport creates a new viewport model with the given dimensions.
func newViewport(width, height int) viewport.Model {
	vp := viewport.New(width, height)
	vp.Style = stylePanelBorder
	return vp
}
