package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhath/ducky/internal/fs"
	"github.com/nhath/ducky/internal/state"
	"github.com/nhath/ducky/internal/ui/highlight"
	"github.com/nhath/ducky/internal/ui/icons"
)

func (m Model) renderModal(v state.ModalView) string {
	switch v := v.(type) {
	case state.ImportView:
		return m.renderImport(v)
	case state.PromptView:
		return m.renderPrompt(v)
	case state.BrowserView:
		return m.renderBrowser(v)
	case state.ConfirmView:
		return m.renderConfirm(v)
	case state.HelpView:
		return m.renderHelpPopup()
	}
	return ""
}

func (m Model) popupWidth(limit int) int {
	return min(limit, m.width-4)
}

func (m Model) popup(title, body string, hints []key.Binding, width int) string {
	content := PopupTitleStyle.Render(title) + "\n" + body
	if len(hints) > 0 {
		content += "\n\n" + m.help.ShortHelpView(hints)
	}
	return PopupStyle.Width(width).Render(content)
}

var importSteps = []struct {
	phase state.ImportPhase
	label string
}{
	{state.AwaitingTableName, "Table name"},
	{state.AwaitingFileSelection, "Source file"},
	{state.Confirming, "Confirm"},
	{state.Executing, "Import"},
}

func (m Model) renderImport(v state.ImportView) string {
	width := m.popupWidth(72)
	var b strings.Builder

	// Step tracker
	var steps []string
	for _, s := range importSteps {
		mark := icons.IconPending
		style := MetaStyle
		switch {
		case v.Phase == s.phase || (v.Phase == state.Failed && s.phase == state.Executing):
			mark = icons.IconSelect
			style = SystemMessageStyle
		case v.Phase > s.phase:
			mark = icons.IconDone
			style = SuccessStyle
		}
		steps = append(steps, style.Render(mark+" "+s.label))
	}
	b.WriteString(strings.Join(steps, "  ") + "\n\n")

	field := func(name, value string) {
		if value == "" {
			value = MetaStyle.Render("—")
		}
		b.WriteString(PanelTitleStyle.Render(fmt.Sprintf("%-7s", name)) + " " + limitString(value, width-12) + "\n")
	}
	field("Table", v.TableName)
	field("File", v.FilePath)

	if v.Statement != "" && v.Phase >= state.Confirming {
		b.WriteString("\n" + highlight.SQL(v.Statement, highlight.DefaultStyle) + "\n")
	}

	var hints []key.Binding
	switch v.Phase {
	case state.AwaitingFileSelection:
		b.WriteString("\n" + MetaStyle.Render("No file chosen yet."))
		hints = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "browse")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	case state.Confirming:
		hints = []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "import")),
			key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "change file")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	case state.Executing:
		b.WriteString("\n" + m.spinner.View() + " Importing...")
		hints = []key.Binding{
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "dismiss")),
		}
	case state.Failed:
		b.WriteString("\n" + ErrorStyle.Render(icons.IconError+" "+v.LastError))
		hints = []key.Binding{
			key.NewBinding(key.WithKeys("r", "enter"), key.WithHelp("r", "retry")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}

	return m.popup("Import into "+v.ConnLabel, strings.TrimRight(b.String(), "\n"), hints, width)
}

func (m Model) renderPrompt(v state.PromptView) string {
	width := m.popupWidth(50)

	ti := m.input
	ti.Width = width - 8
	ti.SetValue(v.Value)
	ti.CursorEnd()

	body := PanelTitleStyle.Render(v.Label) + "\n" + ti.View()
	if v.Err != "" {
		body += "\n" + ErrorStyle.Render(v.Err)
	}
	return m.popup(v.Title, body, promptHints, width)
}

func (m Model) renderBrowser(v state.BrowserView) string {
	width := m.popupWidth(70)
	rows := max(3, m.height-16)
	inner := width - 6

	title := "Choose a file to import"
	if v.Mode == state.OpenDatabase {
		title = "Open a database"
	}

	var b strings.Builder
	b.WriteString(MetaStyle.Render(limitString(v.Dir, inner)) + "\n")
	if v.Filtering || v.Filter != "" {
		b.WriteString(PromptStyle.Render("/") + v.Filter + "\n")
	}
	if v.Loading {
		b.WriteString(m.spinner.View() + " Loading...\n")
	}
	if len(v.Entries) == 0 && !v.Loading {
		b.WriteString(MetaStyle.Render("(empty)") + "\n")
	}

	names := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		names[i] = e.Name
	}
	for _, item := range visibleWindow(names, v.Selected, rows) {
		e := v.Entries[item.index]
		var matched []int
		if item.index < len(v.Matches) {
			matched = v.Matches[item.index]
		}
		b.WriteString(renderEntry(e, matched, item.index == v.Selected, inner) + "\n")
	}

	if !v.ShowHidden {
		b.WriteString(MetaStyle.Render("hidden files not shown"))
	}
	return m.popup(title, strings.TrimRight(b.String(), "\n"), browserHints, width)
}

func renderEntry(e fs.Entry, matched []int, selected bool, width int) string {
	size := ""
	if !e.IsDir {
		size = fs.HumanSize(e.Size)
	}
	nameWidth := max(1, width-lipgloss.Width(size)-4)
	name := limitString(e.Name, nameWidth)

	base := ItemStyle
	if e.IsDir {
		base = DirStyle
	}
	var rendered string
	if len(matched) > 0 {
		rendered = highlightMatches(name, matched, base)
	} else {
		rendered = base.Render(name)
	}

	line := icons.GetFileIcon(e.Name, e.IsDir) + " " + rendered
	gap := max(1, width-lipgloss.Width(line)-lipgloss.Width(size))
	line += strings.Repeat(" ", gap) + MetaStyle.Render(size)

	if selected {
		return SelectionStyle.Render(line)
	}
	return line
}

// highlightMatches styles the fuzzy-matched characters of name
func highlightMatches(name string, matched []int, base lipgloss.Style) string {
	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}
	var b strings.Builder
	for i, r := range name {
		if hit[i] {
			b.WriteString(MatchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

func (m Model) renderConfirm(v state.ConfirmView) string {
	return m.popup("Confirm", WarningStyle.Render(v.Message), confirmHints, m.popupWidth(50))
}
