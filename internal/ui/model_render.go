package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ducky/internal/state"
)

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.ctrl.Snapshot()

	statusBar := m.renderStatusBar(snap)
	helpLine := m.renderHelpLine(snap)

	bodyHeight := m.height - lipgloss.Height(statusBar) - lipgloss.Height(helpLine)
	if bodyHeight < 4 {
		bodyHeight = 4
	}

	main := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPanels(snap, bodyHeight),
		statusBar,
		helpLine,
	)

	// Overlay modals, innermost last
	var popups PopupStack
	for _, v := range snap.Modals {
		popups.Push(m.renderModal(v))
	}
	return popups.Composite(main)
}

func limitString(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
