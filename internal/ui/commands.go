// internal/ui/commands.go
// Turns controller commands into Bubble Tea commands
package ui

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/nhath/ducky/internal/db"
	"github.com/nhath/ducky/internal/fs"
	"github.com/nhath/ducky/internal/history"
	"github.com/nhath/ducky/internal/state"
)

// dispatch runs every command off the event loop; each result comes back
// as an eventMsg
func (m Model) dispatch(cmds []state.Command) tea.Cmd {
	var batch []tea.Cmd
	for _, c := range cmds {
		if tc := m.command(c); tc != nil {
			batch = append(batch, tc)
		}
	}
	return tea.Batch(batch...)
}

func (m Model) command(c state.Command) tea.Cmd {
	switch c := c.(type) {
	case state.Quit:
		return tea.Quit
	case state.OpenConnection:
		return m.openConnectionCmd(c)
	case state.CloseConnection:
		return m.closeConnectionCmd(c)
	case state.ListDatabases:
		return m.listDatabasesCmd(c)
	case state.ListTables:
		return m.listTablesCmd(c)
	case state.ImportFile:
		return m.importFileCmd(c)
	case state.PreviewTable:
		return m.previewTableCmd(c)
	case state.DropTable:
		return m.dropTableCmd(c)
	case state.ListDirectory:
		return m.listDirectoryCmd(c)
	case state.RememberDir:
		// Small synchronous write; a failure only loses the remembered dir
		if m.config != nil {
			if err := m.config.RememberDir(c.Dir); err != nil {
				m.log.WithError(err).Warn("saving last directory")
			}
		}
	}
	return nil
}

func (m Model) openConnectionCmd(c state.OpenConnection) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		conn, err := m.gateway.OpenConnection(m.ctx, c.Spec)
		target := c.Spec.Path
		if c.Spec.InMemory {
			target = "memory"
		}
		m.record("open", target, "", start, err)
		return eventMsg{state.ConnectionOpened{Token: c.Token, Conn: conn, Err: err}}
	}
}

func (m Model) closeConnectionCmd(c state.CloseConnection) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		err := m.gateway.CloseConnection(m.ctx, c.ID)
		m.record("close", c.ID, "", start, err)
		return eventMsg{state.ConnectionClosed{Token: c.Token, ID: c.ID, Err: err}}
	}
}

func (m Model) listDatabasesCmd(c state.ListDatabases) tea.Cmd {
	return func() tea.Msg {
		conns, err := m.gateway.ListDatabases(m.ctx)
		return eventMsg{state.DatabasesListed{Token: c.Token, Conns: conns, Err: err}}
	}
}

func (m Model) listTablesCmd(c state.ListTables) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, 30*time.Second)
		defer cancel()

		start := time.Now()
		tables, err := m.gateway.ListTables(ctx, c.ConnID)
		m.log.WithFields(logrus.Fields{"conn": c.ConnID, "tables": len(tables), "took": time.Since(start)}).Debug("list tables")
		return eventMsg{state.TablesListed{Token: c.Token, ConnID: c.ConnID, Tables: tables, Err: err}}
	}
}

// importFileCmd has no timeout: large files may take minutes
func (m Model) importFileCmd(c state.ImportFile) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		err := m.gateway.ImportFile(m.ctx, c.ConnID, c.Table, c.Path)
		m.record("import", c.Table, c.Path, start, err)
		return eventMsg{state.ImportFinished{Token: c.Token, ConnID: c.ConnID, Err: err}}
	}
}

func (m Model) previewTableCmd(c state.PreviewTable) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(m.ctx, 30*time.Second)
		defer cancel()

		start := time.Now()
		res, err := m.gateway.PreviewTable(ctx, c.ConnID, c.Table, c.Limit, c.Sort)
		m.record("preview", c.Table, sortDetail(c.Sort), start, err)
		return eventMsg{state.PreviewLoaded{Token: c.Token, Table: c.Table, Result: res, Err: err}}
	}
}

func (m Model) dropTableCmd(c state.DropTable) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		err := m.gateway.DropTable(m.ctx, c.ConnID, c.Table)
		m.record("drop", c.Table, c.ConnID, start, err)
		return eventMsg{state.TableDropped{Token: c.Token, ConnID: c.ConnID, Table: c.Table, Err: err}}
	}
}

// sortDetail renders a sort chain as "name asc, id desc"
func sortDetail(keys []db.SortKey) string {
	terms := make([]string, len(keys))
	for i, k := range keys {
		terms[i] = k.Column + " asc"
		if k.Desc {
			terms[i] = k.Column + " desc"
		}
	}
	return strings.Join(terms, ", ")
}

func (m Model) listDirectoryCmd(c state.ListDirectory) tea.Cmd {
	return func() tea.Msg {
		dir := c.Dir
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
		entries, err := fs.List(dir, c.ShowHidden)
		if err != nil {
			m.log.WithError(err).WithField("dir", dir).Warn("list directory")
		}
		return eventMsg{state.DirectoryListed{Token: c.Token, Dir: dir, Entries: entries, Err: err}}
	}
}

// recentActionsCmd loads the latest action log entries
func (m Model) recentActionsCmd() tea.Cmd {
	if m.history == nil {
		return nil
	}
	store := m.history
	return func() tea.Msg {
		entries, err := store.Recent(5)
		if err != nil {
			return RecentActionsMsg{Err: err}
		}
		total, err := store.Count()
		return RecentActionsMsg{Entries: entries, Total: total, Err: err}
	}
}

// record writes a gateway action to the log file and the action log
func (m Model) record(action, target, detail string, start time.Time, err error) {
	entry := &history.Entry{
		Action:     action,
		Target:     target,
		Detail:     detail,
		ExecutedAt: start,
		DurationMs: time.Since(start).Milliseconds(),
		Status:     history.StatusSuccess,
	}
	fields := logrus.Fields{"action": action, "target": target, "duration_ms": entry.DurationMs}
	if detail != "" {
		fields["detail"] = detail
	}

	if err != nil {
		entry.Status = history.StatusError
		entry.ErrorMessage = err.Error()
		m.log.WithFields(fields).WithError(err).Error("gateway action failed")
	} else {
		m.log.WithFields(fields).Info("gateway action")
	}

	if m.history != nil {
		if herr := m.history.Add(entry); herr != nil {
			m.log.WithError(herr).Warn("writing action log")
		}
	}
}
