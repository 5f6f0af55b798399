// internal/ui/update.go
package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ducky/internal/state"
	"github.com/nhath/ducky/internal/ui/components/table"
)

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		helpWasOpen := helpOpen(m.ctrl.Snapshot())
		cmd := m.dispatch(m.ctrl.HandleKey(msg.String()))
		m = m.syncPreview()
		if !helpWasOpen && helpOpen(m.ctrl.Snapshot()) {
			cmd = tea.Batch(cmd, m.recentActionsCmd())
		}
		return m, cmd

	case eventMsg:
		cmd := m.dispatch(m.ctrl.HandleEvent(msg.event))
		m = m.syncPreview()
		return m, cmd

	case RecentActionsMsg:
		if msg.Err != nil {
			m.log.WithError(msg.Err).Warn("reading action log")
			return m, nil
		}
		m.recent = msg.Entries
		m.recentTotal = msg.Total
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func helpOpen(s state.Snapshot) bool {
	_, ok := s.TopModal().(state.HelpView)
	return ok
}

// syncPreview rebuilds the preview table when the controller loaded a new
// result and moves its highlight with the Content panel selection
func (m Model) syncPreview() Model {
	snap := m.ctrl.Snapshot()
	if snap.Preview != m.previewFor {
		m.previewFor = snap.Preview
		m.preview = table.FromQueryResult(snap.Preview, m.previewPageSize())
	}
	if sel := snap.Panel(state.ContentPanel).Selected; sel >= 0 && m.previewFor != nil {
		m.preview = m.preview.WithHighlightedRow(sel).Focused(snap.Focus == state.ContentPanel)
	}
	return m
}

func (m Model) previewPageSize() int {
	// borders, sort line, header, footer, status bar and help line
	if rows := m.height - 11; rows > 3 {
		return rows
	}
	return 3
}
