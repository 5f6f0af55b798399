// internal/ui/model.go
// Root Model struct, constructor, and Init
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/evertras/bubble-table/table"
	"github.com/sirupsen/logrus"

	"github.com/nhath/ducky/internal/config"
	"github.com/nhath/ducky/internal/db"
	"github.com/nhath/ducky/internal/history"
	"github.com/nhath/ducky/internal/state"
)

// Options holds the collaborators of the UI
type Options struct {
	Gateway db.Gateway
	History *history.Store // optional
	Config  *config.Config
	Logger  *logrus.Logger
}

// Model is the root Bubble Tea model. All state lives in the controller;
// the model runs its commands and draws its snapshots.
type Model struct {
	ctx     context.Context
	ctrl    *state.Controller
	gateway db.Gateway
	history *history.Store
	config  *config.Config
	log     *logrus.Logger

	width, height int

	keys    keyMap
	help    help.Model
	spinner spinner.Model
	input   textinput.Model

	// Preview table, rebuilt when the controller's preview changes
	preview    table.Model
	previewFor *db.QueryResult

	// Action log entries shown in the help overlay
	recent      []history.Entry
	recentTotal int
}

// New creates the root model
func New(ctx context.Context, opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	log := opts.Logger
	if log == nil {
		log = logrus.New()
	}

	InitStyles(cfg.Theme)

	ctrl := state.NewController(state.Options{
		BrowseDir:   cfg.BrowseDir(),
		ShowHidden:  cfg.ShowHidden,
		PreviewRows: cfg.PreviewRows,
		Keys:        cfg.Keys,
	})

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(AccentColor())

	ti := textinput.New()
	ti.Prompt = "› "
	ti.PromptStyle = PromptStyle
	ti.CharLimit = 63
	ti.Focus()

	h := help.New()
	h.Styles.ShortKey = lipgloss.NewStyle().Foreground(TextPrimary()).Bold(true)
	h.Styles.ShortDesc = lipgloss.NewStyle().Foreground(TextSecondary())
	h.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(TextFaint())
	h.Styles.FullKey = h.Styles.ShortKey
	h.Styles.FullDesc = h.Styles.ShortDesc
	h.Styles.FullSeparator = h.Styles.ShortSeparator

	return Model{
		ctx:     ctx,
		ctrl:    ctrl,
		gateway: opts.Gateway,
		history: opts.History,
		config:  cfg,
		log:     log,
		keys:    newKeyMap(cfg.Keys),
		help:    h,
		spinner: s,
		input:   ti,
	}
}

// Init loads the connection set and starts the spinner
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.dispatch(m.ctrl.Start()))
}

// Snapshot returns the controller state
func (m Model) Snapshot() state.Snapshot {
	return m.ctrl.Snapshot()
}
