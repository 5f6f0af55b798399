package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ducky/internal/state"
	"github.com/nhath/ducky/internal/ui/icons"
)

func (m Model) renderPanels(snap state.Snapshot, height int) string {
	leftWidth := max(24, m.width/3)
	rightWidth := max(20, m.width-leftWidth)

	dbHeight := height / 2
	tablesHeight := height - dbHeight

	dbs := snap.Panel(state.DatabasesPanel)
	labels := make([]string, len(dbs.Items))
	for i, label := range dbs.Items {
		prefix := icons.IconGeneric
		if i < len(snap.Connections) {
			prefix = icons.GetConnectionIcon(snap.Connections[i])
			if snap.Connections[i].ID == snap.Active {
				label += " " + icons.IconSuccess
			}
		}
		labels[i] = prefix + " " + label
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderPanel(snap, state.DatabasesPanel, labels, dbs.Selected, leftWidth, dbHeight, m.databasesHint()),
		m.renderPanel(snap, state.TablesPanel, snap.Panel(state.TablesPanel).Items, snap.Panel(state.TablesPanel).Selected, leftWidth, tablesHeight, m.tablesHint(snap)),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderContent(snap, rightWidth, height))
}

func (m Model) databasesHint() string {
	return m.keys.NewMemory.Help().Key + " new · " + m.keys.Open.Help().Key + " open"
}

func (m Model) tablesHint(snap state.Snapshot) string {
	if snap.Active == "" {
		return "no active database"
	}
	return m.keys.Import.Help().Key + " import a file"
}

func panelStyle(snap state.Snapshot, id state.PanelID, width, height int) lipgloss.Style {
	style := PanelStyle
	if snap.Focus == id {
		style = PanelFocusedStyle
	}
	// Width and Height exclude the border
	return style.Width(max(0, width-2)).Height(max(0, height-2))
}

func (m Model) renderPanel(snap state.Snapshot, id state.PanelID, items []string, selected, width, height int, empty string) string {
	inner := max(0, width-4)
	rows := max(0, height-3)

	var b strings.Builder
	b.WriteString(PanelTitleStyle.Render(id.String()))

	if len(items) == 0 {
		b.WriteString("\n" + MetaStyle.Render(limitString(empty, inner)))
	}
	for _, item := range visibleWindow(items, selected, rows) {
		line := limitString(item.text, inner)
		if item.index == selected {
			line = SelectionStyle.Width(inner).Render(line)
		} else {
			line = ItemStyle.Render(line)
		}
		b.WriteString("\n" + line)
	}

	return panelStyle(snap, id, width, height).Render(b.String())
}

func (m Model) renderContent(snap state.Snapshot, width, height int) string {
	inner := max(0, width-4)
	title := state.ContentPanel.String()
	if snap.PreviewTable != "" {
		title += ": " + snap.PreviewTable
	}

	body := MetaStyle.Render("Select a table and press enter to preview it")
	if snap.Preview != nil {
		body = MetaStyle.Render(limitString(sortLine(snap), inner)) + "\n" +
			m.preview.WithTargetWidth(inner).View()
	}

	return panelStyle(snap, state.ContentPanel, width, height).
		Render(PanelTitleStyle.Render(title) + "\n" + body)
}

// sortLine shows the column cursor and the sort chain of the preview
func sortLine(snap state.Snapshot) string {
	line := "column: "
	if cols := snap.Preview.Columns; snap.SortColumn < len(cols) {
		line += cols[snap.SortColumn]
	}
	if len(snap.Sort) == 0 {
		return line + " · unsorted"
	}
	terms := make([]string, len(snap.Sort))
	for i, k := range snap.Sort {
		terms[i] = k.Column + " ↑"
		if k.Desc {
			terms[i] = k.Column + " ↓"
		}
	}
	return line + " · sort: " + strings.Join(terms, ", ")
}

type windowItem struct {
	index int
	text  string
}

// visibleWindow returns at most rows items, scrolled so selected is visible
func visibleWindow(items []string, selected, rows int) []windowItem {
	if rows <= 0 || len(items) == 0 {
		return nil
	}
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	end := min(len(items), start+rows)

	out := make([]windowItem, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, windowItem{index: i, text: items[i]})
	}
	return out
}
