package ui

import (
	"fmt"
	"strings"

	"github.com/nhath/ducky/internal/history"
	"github.com/nhath/ducky/internal/state"
	"github.com/nhath/ducky/internal/ui/icons"
)

// renderHelpLine shows the keys of whatever currently receives input
func (m Model) renderHelpLine(snap state.Snapshot) string {
	switch snap.TopModal().(type) {
	case nil:
		return m.help.ShortHelpView(m.keys.ShortHelp())
	case state.PromptView:
		return m.help.ShortHelpView(promptHints)
	case state.BrowserView:
		return m.help.ShortHelpView(browserHints)
	case state.ConfirmView:
		return m.help.ShortHelpView(confirmHints)
	}
	return ""
}

func (m Model) renderHelpPopup() string {
	var content strings.Builder

	content.WriteString(m.help.FullHelpView(m.keys.FullHelp()))

	content.WriteString("\n\n" + PanelTitleStyle.Render("Recent actions"))
	if m.recentTotal > 0 {
		content.WriteString(MetaStyle.Render(fmt.Sprintf("  %d logged", m.recentTotal)))
	}
	content.WriteString("\n")
	if m.history == nil {
		content.WriteString(MetaStyle.Render("action log disabled"))
	} else if len(m.recent) == 0 {
		content.WriteString(MetaStyle.Render("nothing yet"))
	}
	for _, e := range m.recent {
		content.WriteString(renderAction(e) + "\n")
	}

	return m.popup("Keyboard shortcuts", strings.TrimRight(content.String(), "\n"), nil, m.popupWidth(76))
}

func renderAction(e history.Entry) string {
	ts := MetaStyle.Render(e.ExecutedAt.Format("15:04:05"))
	if e.Status == history.StatusError {
		return ts + " " + ErrorStyle.Render(icons.IconError+" "+e.Summary(50))
	}
	return ts + " " + SuccessStyle.Render(icons.IconSuccess) + " " + e.Summary(50)
}
