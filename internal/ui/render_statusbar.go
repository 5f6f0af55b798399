package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ducky/internal/state"
	"github.com/nhath/ducky/internal/ui/icons"
)

func (m Model) renderStatusBar(snap state.Snapshot) string {
	var parts []string

	// 1. App badge, busy while commands are in flight
	if snap.Busy {
		parts = append(parts, BusyBadgeStyle.Render(m.spinner.View()+"DUCKY"))
	} else {
		parts = append(parts, BadgeStyle.Render("DUCKY"))
	}

	// 2. Active connection
	active := " NO DATABASE "
	for _, c := range snap.Connections {
		if c.ID == snap.Active {
			active = " " + icons.GetConnectionIcon(c) + " " + limitString(c.Label, 40) + " "
			break
		}
	}
	parts = append(parts, ConnectionStyle.Render(active))

	// 3. Status message
	if snap.Status.Text != "" {
		used := lipgloss.Width(lipgloss.JoinHorizontal(lipgloss.Left, parts...))
		text := limitString(snap.Status.Text, max(0, m.width-used-4))
		if snap.Status.Kind == state.StatusError {
			errorStyle := lipgloss.NewStyle().Background(ErrorColor()).Foreground(TextPrimary()).Padding(0, 1)
			parts = append(parts, errorStyle.Render(icons.IconError+" "+text))
		} else {
			parts = append(parts, lipgloss.NewStyle().Foreground(TextPrimary()).Padding(0, 1).Render(text))
		}
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return StatusBarStyle.Width(m.width).Render(content)
}
