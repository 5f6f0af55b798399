package state

// PanelID identifies one of the three always-visible panels
type PanelID int

const (
	DatabasesPanel PanelID = iota
	TablesPanel
	ContentPanel

	panelCount = 3
)

func (p PanelID) String() string {
	switch p {
	case DatabasesPanel:
		return "Databases"
	case TablesPanel:
		return "Tables"
	case ContentPanel:
		return "Content"
	}
	return "unknown"
}

// NoSelection is the selected index of an empty panel
const NoSelection = -1

// Panel is an ordered list of item labels with an optional selection
type Panel struct {
	Items    []string
	Selected int
}

// SelectedItem returns the selected label, if any
func (p Panel) SelectedItem() (string, bool) {
	if p.Selected < 0 || p.Selected >= len(p.Items) {
		return "", false
	}
	return p.Items[p.Selected], true
}

// Panels tracks focus and per-panel selection
type Panels struct {
	focus PanelID
	list  [panelCount]Panel
}

// NewPanels returns empty panels with the Databases panel focused
func NewPanels() *Panels {
	p := &Panels{focus: DatabasesPanel}
	for i := range p.list {
		p.list[i].Selected = NoSelection
	}
	return p
}

// Focus returns the focused panel
func (p *Panels) Focus() PanelID {
	return p.focus
}

// CycleFocus moves focus forward (dir > 0) or backward (dir < 0), wrapping
func (p *Panels) CycleFocus(dir int) {
	step := 1
	if dir < 0 {
		step = panelCount - 1
	}
	p.focus = PanelID((int(p.focus) + step) % panelCount)
}

// SetFocus focuses id
func (p *Panels) SetFocus(id PanelID) {
	p.focus = id
}

// MoveSelection moves the selection of id by delta, clamped to the items
func (p *Panels) MoveSelection(id PanelID, delta int) {
	panel := &p.list[id]
	if len(panel.Items) == 0 {
		panel.Selected = NoSelection
		return
	}
	panel.Selected = clamp(panel.Selected+delta, 0, len(panel.Items)-1)
}

// SetItems replaces the items of id. The selection keeps its index when still
// valid, falls back to the last item, and is cleared for an empty list.
func (p *Panels) SetItems(id PanelID, items []string) {
	panel := &p.list[id]
	panel.Items = append([]string(nil), items...)

	switch {
	case len(items) == 0:
		panel.Selected = NoSelection
	case panel.Selected >= 0 && panel.Selected < len(items):
		// keep
	case panel.Selected >= len(items):
		panel.Selected = len(items) - 1
	default:
		panel.Selected = 0
	}
}

// Select sets the selection of id; out of range indexes are rejected
func (p *Panels) Select(id PanelID, idx int) bool {
	panel := &p.list[id]
	if idx < 0 || idx >= len(panel.Items) {
		return false
	}
	panel.Selected = idx
	return true
}

// Panel returns a copy of panel id
func (p *Panels) Panel(id PanelID) Panel {
	panel := p.list[id]
	panel.Items = append([]string(nil), panel.Items...)
	return panel
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
