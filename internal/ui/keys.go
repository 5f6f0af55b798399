package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/nhath/ducky/internal/config"
)

// keyMap mirrors the configured panel bindings for the help views. Routing
// itself happens in the state controller.
type keyMap struct {
	NextPanel  key.Binding
	PrevPanel  key.Binding
	Up         key.Binding
	Down       key.Binding
	Select     key.Binding
	Import     key.Binding
	Open       key.Binding
	NewMemory  key.Binding
	Disconnect key.Binding
	Refresh    key.Binding
	Help       key.Binding
	Quit       key.Binding

	FocusDatabases key.Binding
	FocusTables    key.Binding
	FocusContent   key.Binding
	DropTable      key.Binding
	PrevColumn     key.Binding
	NextColumn     key.Binding
	SortAsc        key.Binding
	SortDesc       key.Binding
	ClearSort      key.Binding
}

func binding(keys []string, desc string) key.Binding {
	return key.NewBinding(key.WithKeys(keys...), key.WithHelp(strings.Join(keys, "/"), desc))
}

func newKeyMap(km config.KeyMap) keyMap {
	return keyMap{
		NextPanel:  binding(km.NextPanel, "next panel"),
		PrevPanel:  binding(km.PrevPanel, "previous panel"),
		Up:         binding(km.MoveUp, "up"),
		Down:       binding(km.MoveDown, "down"),
		Select:     binding(km.Select, "select"),
		Import:     binding(km.Import, "import file"),
		Open:       binding(km.Open, "open database"),
		NewMemory:  binding(km.NewMemory, "new in-memory"),
		Disconnect: binding(km.Disconnect, "disconnect"),
		Refresh:    binding(km.Refresh, "refresh"),
		Help:       binding(km.Help, "help"),
		Quit:       binding(km.Quit, "quit"),

		FocusDatabases: binding(km.FocusDatabases, "databases"),
		FocusTables:    binding(km.FocusTables, "tables"),
		FocusContent:   binding(km.FocusContent, "content"),
		DropTable:      binding(km.DropTable, "drop table"),
		PrevColumn:     binding(km.PrevColumn, "prev column"),
		NextColumn:     binding(km.NextColumn, "next column"),
		SortAsc:        binding(km.SortAsc, "sort asc"),
		SortDesc:       binding(km.SortDesc, "sort desc"),
		ClearSort:      binding(km.ClearSort, "clear sort"),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPanel, k.Select, k.Import, k.Open, k.NewMemory, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPanel, k.PrevPanel, k.Up, k.Down, k.Select},
		{k.FocusDatabases, k.FocusTables, k.FocusContent, k.Refresh},
		{k.Import, k.Open, k.NewMemory, k.Disconnect, k.DropTable},
		{k.PrevColumn, k.NextColumn, k.SortAsc, k.SortDesc, k.ClearSort},
		{k.Help, k.Quit},
	}
}

// Fixed keys shown under each modal
var (
	promptHints = []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
	browserHints = []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open/choose")),
		key.NewBinding(key.WithKeys("backspace"), key.WithHelp("bksp", "parent")),
		key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		key.NewBinding(key.WithKeys("."), key.WithHelp(".", "hidden")),
		key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q/esc", "cancel")),
	}
	confirmHints = []key.Binding{
		key.NewBinding(key.WithKeys("y", "enter"), key.WithHelp("y", "yes")),
		key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "no")),
	}
)
