package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ducky/internal/config"
	"github.com/nhath/ducky/internal/db"
	"github.com/nhath/ducky/internal/history"
	"github.com/nhath/ducky/internal/state"
)

type fakeGateway struct {
	mu       sync.Mutex
	seq      int
	conns    []db.Connection
	tables   map[string][]string
	imports  int
	openErr  error
	lastSort []db.SortKey
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{tables: make(map[string][]string)}
}

func (g *fakeGateway) OpenConnection(_ context.Context, spec db.ConnectSpec) (db.Connection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.openErr != nil {
		return db.Connection{}, g.openErr
	}
	g.seq++
	conn := db.Connection{ID: fmt.Sprintf("db%d", g.seq), Label: "memory", Kind: db.InMemory, Engine: db.DuckDB}
	if !spec.InMemory {
		conn.Label, conn.Kind, conn.Path = spec.Path, db.FileBacked, spec.Path
	}
	g.conns = append(g.conns, conn)
	return conn, nil
}

func (g *fakeGateway) CloseConnection(_ context.Context, id string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i, c := range g.conns {
		if c.ID == id {
			g.conns = append(g.conns[:i], g.conns[i+1:]...)
			return nil
		}
	}
	return db.ErrUnknownConnection
}

func (g *fakeGateway) ListDatabases(context.Context) ([]db.Connection, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]db.Connection(nil), g.conns...), nil
}

func (g *fakeGateway) ListTables(_ context.Context, id string) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.tables[id]...), nil
}

func (g *fakeGateway) ImportFile(_ context.Context, id, table, path string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, err := db.DetectFormat(path); err != nil {
		return err
	}
	g.imports++
	g.tables[id] = append(g.tables[id], table)
	return nil
}

func (g *fakeGateway) PreviewTable(_ context.Context, id, table string, limit int, sort []db.SortKey) (*db.QueryResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.lastSort = sort
	return &db.QueryResult{Columns: []string{"id", "name"}, Rows: [][]string{{"1", "ann"}}, RowCount: 1}, nil
}

func (g *fakeGateway) DropTable(_ context.Context, id, table string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	kept := g.tables[id][:0]
	for _, t := range g.tables[id] {
		if t != table {
			kept = append(kept, t)
		}
	}
	g.tables[id] = kept
	return nil
}

func (g *fakeGateway) Describe(context.Context, string) (*db.DatabaseInfo, error) {
	return nil, nil
}

func (g *fakeGateway) Close() error { return nil }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestModel(t *testing.T, gw db.Gateway, store *history.Store) (Model, *config.Config) {
	t.Helper()
	cfg, err := config.LoadFrom(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)

	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "data.csv"), []byte("id\n1\n"), 0644))
	cfg.StartDir = dataDir

	m := New(context.Background(), Options{Gateway: gw, History: store, Config: cfg, Logger: quietLogger()})
	tm, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = tm.(Model)
	m, _ = run(m, m.Init())
	return m, cfg
}

// run executes cmd and every command that follows from it, feeding the
// resulting messages back into the model. Spinner ticks are not driven.
func run(m Model, cmd tea.Cmd) (Model, []tea.Msg) {
	queue := []tea.Cmd{cmd}
	var seen []tea.Msg
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil, spinner.TickMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			seen = append(seen, msg)
			tm, next := m.Update(msg)
			m = tm.(Model)
			queue = append(queue, next)
		}
	}
	return m, seen
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m Model, keys ...string) (Model, []tea.Msg) {
	var all []tea.Msg
	for _, k := range keys {
		tm, cmd := m.Update(keyMsg(k))
		var seen []tea.Msg
		m, seen = run(tm.(Model), cmd)
		all = append(all, seen...)
	}
	return m, all
}

func quits(msgs []tea.Msg) bool {
	for _, msg := range msgs {
		if _, ok := msg.(tea.QuitMsg); ok {
			return true
		}
	}
	return false
}

func TestModel_ImportFlow(t *testing.T) {
	gw := newFakeGateway()
	m, cfg := newTestModel(t, gw, nil)

	m, _ = press(m, "n")
	snap := m.Snapshot()
	assert.Equal(t, []string{"memory"}, snap.Panel(state.DatabasesPanel).Items)
	assert.Equal(t, "db1", snap.Active)

	m, _ = press(m, "i", "s", "a", "l", "e", "s", "enter")
	browser, ok := m.Snapshot().TopModal().(state.BrowserView)
	require.True(t, ok)
	assert.Equal(t, cfg.StartDir, browser.Dir)
	assert.Contains(t, m.View(), "data.csv")

	m, _ = press(m, "down", "enter")
	wizard := m.Snapshot().TopModal().(state.ImportView)
	assert.Equal(t, state.Confirming, wizard.Phase)
	assert.Equal(t, cfg.StartDir, cfg.LastDir)

	m, _ = press(m, "enter")
	snap = m.Snapshot()
	assert.Empty(t, snap.Modals)
	assert.Equal(t, []string{"sales"}, snap.Panel(state.TablesPanel).Items)
	assert.Equal(t, 1, gw.imports)
	assert.False(t, snap.Busy)
	assert.Contains(t, m.View(), "Imported data.csv into sales")
}

func TestModel_PreviewRendersTable(t *testing.T) {
	gw := newFakeGateway()
	m, _ := newTestModel(t, gw, nil)
	m, _ = press(m, "n")
	gw.tables["db1"] = []string{"orders"}
	m, _ = press(m, "r", "tab", "enter")

	snap := m.Snapshot()
	assert.Equal(t, "orders", snap.PreviewTable)
	assert.Equal(t, []string{"1 | ann"}, snap.Panel(state.ContentPanel).Items)
	assert.Contains(t, m.View(), "Content: orders")
}

func TestModel_QuitOnlyWithoutModal(t *testing.T) {
	m, _ := newTestModel(t, newFakeGateway(), nil)

	m, msgs := press(m, "o")
	assert.False(t, quits(msgs))
	m, msgs = press(m, "q")
	assert.False(t, quits(msgs), "q cancels the browser")
	assert.Empty(t, m.Snapshot().Modals)

	_, msgs = press(m, "q")
	assert.True(t, quits(msgs))
}

func TestModel_OpenFailureShowsStatus(t *testing.T) {
	gw := newFakeGateway()
	gw.openErr = db.WrapConnectionError(fmt.Errorf("database is locked"))
	m, _ := newTestModel(t, gw, nil)

	m, _ = press(m, "n")
	snap := m.Snapshot()
	assert.Equal(t, state.StatusError, snap.Status.Kind)
	assert.Contains(t, snap.Status.Text, "database is locked")
	assert.Empty(t, snap.Connections)
}

func TestModel_HelpShowsRecentActions(t *testing.T) {
	store, err := history.NewStoreAt(filepath.Join(t.TempDir(), "actions.db"))
	require.NoError(t, err)
	defer store.Close()

	m, _ := newTestModel(t, newFakeGateway(), store)
	m, _ = press(m, "n", "h")

	require.Len(t, m.recent, 1)
	assert.Equal(t, "open", m.recent[0].Action)
	view := m.View()
	assert.Contains(t, view, "Recent actions")
	assert.Contains(t, view, "open memory")
	assert.Contains(t, view, "1 logged")

	m, _ = press(m, "esc")
	assert.Empty(t, m.Snapshot().Modals)
}

func TestModel_SortPreview(t *testing.T) {
	gw := newFakeGateway()
	m, _ := newTestModel(t, gw, nil)
	m, _ = press(m, "n")
	gw.tables["db1"] = []string{"people"}
	m, _ = press(m, "r", "2", "enter", "3", "right", "A")

	assert.Equal(t, []db.SortKey{{Column: "name", Desc: true}}, gw.lastSort)
	assert.Equal(t, gw.lastSort, m.Snapshot().Sort)
	assert.Contains(t, m.View(), "sort: name ↓")
}

func TestModel_DropTable(t *testing.T) {
	store, err := history.NewStoreAt(filepath.Join(t.TempDir(), "actions.db"))
	require.NoError(t, err)
	defer store.Close()

	gw := newFakeGateway()
	m, _ := newTestModel(t, gw, store)
	m, _ = press(m, "n")
	gw.tables["db1"] = []string{"people", "sales"}
	m, _ = press(m, "r", "2", "D")

	assert.Contains(t, m.View(), "Drop table people from memory?")

	m, _ = press(m, "y")
	snap := m.Snapshot()
	assert.Empty(t, snap.Modals)
	assert.Equal(t, []string{"sales"}, snap.Panel(state.TablesPanel).Items)
	assert.Equal(t, "Dropped people", snap.Status.Text)

	recent, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, "drop", recent[0].Action)
	assert.Equal(t, "people", recent[0].Target)
}

func TestSortDetail(t *testing.T) {
	assert.Equal(t, "", sortDetail(nil))
	assert.Equal(t, "name asc, id desc", sortDetail([]db.SortKey{{Column: "name"}, {Column: "id", Desc: true}}))
}
