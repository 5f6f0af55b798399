package state

import (
	"fmt"
	"path/filepath"

	"github.com/nhath/ducky/internal/db"
)

// ImportPhase is the step an import workflow is at
type ImportPhase int

const (
	AwaitingTableName ImportPhase = iota
	AwaitingFileSelection
	Confirming
	Executing
	Failed
	Completed
)

func (p ImportPhase) String() string {
	switch p {
	case AwaitingTableName:
		return "awaiting table name"
	case AwaitingFileSelection:
		return "awaiting file selection"
	case Confirming:
		return "confirming"
	case Executing:
		return "executing"
	case Failed:
		return "failed"
	case Completed:
		return "completed"
	}
	return "unknown"
}

// ImportWizard sequences a table name prompt, a file browser and a
// confirmation, then issues exactly one ImportFile per confirmation
type ImportWizard struct {
	phase      ImportPhase
	conn       db.Connection
	tableName  string
	filePath   string
	lastErr    *EngineError
	token      Token
	tokens     *Tokens
	browseDir  string
	showHidden bool
}

// ImportView is the render state of an ImportWizard
type ImportView struct {
	Phase     ImportPhase
	ConnLabel string
	TableName string
	FilePath  string
	Statement string
	LastError string
}

// NewImportWizard starts an import into conn. The returned prompt must be
// pushed above the wizard.
func NewImportWizard(conn db.Connection, browseDir string, showHidden bool, tokens *Tokens) (*ImportWizard, *TextPrompt) {
	w := &ImportWizard{
		phase:      AwaitingTableName,
		conn:       conn,
		tokens:     tokens,
		browseDir:  browseDir,
		showHidden: showHidden,
	}
	return w, w.prompt()
}

func (*ImportWizard) isModal() {}

func (w *ImportWizard) prompt() *TextPrompt {
	return NewTextPrompt("Import into "+w.conn.Label, "Table name", ValidateTableName)
}

// Phase returns the current phase
func (w *ImportWizard) Phase() ImportPhase { return w.phase }

// TableName returns the entered table name
func (w *ImportWizard) TableName() string { return w.tableName }

// FilePath returns the chosen file
func (w *ImportWizard) FilePath() string { return w.filePath }

// ConnID returns the connection the import targets
func (w *ImportWizard) ConnID() string { return w.conn.ID }

// Pending returns the token of the in-flight import, zero if none
func (w *ImportWizard) Pending() Token { return w.token }

// LastError returns the error of the failed import
func (w *ImportWizard) LastError() error {
	if w.lastErr == nil {
		return nil
	}
	return w.lastErr
}

func (w *ImportWizard) openBrowser() Outcome {
	w.phase = AwaitingFileSelection
	b, cmd := NewFileBrowser(w.browseDir, SelectFile, w.showHidden, w.tokens)
	return Outcome{Kind: Handled, Push: b, Commands: []Command{cmd}}
}

// Resume consumes the result of the prompt or browser popped above the wizard
func (w *ImportWizard) Resume(res PopResult) Outcome {
	switch w.phase {
	case AwaitingTableName:
		if res.Cancelled {
			return cancelled()
		}
		w.tableName = res.Text
		return w.openBrowser()

	case AwaitingFileSelection:
		if res.Cancelled {
			out := handled()
			out.Status = infoStatus("No file chosen. Enter to browse again, Esc to cancel the import")
			return out
		}
		w.filePath = res.Path
		w.browseDir = filepath.Dir(res.Path)
		w.phase = Confirming
		return handled(RememberDir{Dir: w.browseDir})
	}

	out := handled()
	out.Status = errorStatus(&InternalInvariantError{What: fmt.Sprintf("import wizard resumed while %s", w.phase)})
	return out
}

// HandleKey drives the wizard while no prompt or browser is above it
func (w *ImportWizard) HandleKey(key string) Outcome {
	if key == "esc" || key == "q" {
		return cancelled()
	}

	switch w.phase {
	case AwaitingTableName:
		if key == "enter" {
			return Outcome{Kind: Handled, Push: w.prompt()}
		}
	case AwaitingFileSelection:
		if key == "enter" || key == "b" {
			return w.openBrowser()
		}
	case Confirming:
		switch key {
		case "enter", "y":
			w.phase = Executing
			w.token = w.tokens.Next()
			out := handled(ImportFile{Token: w.token, ConnID: w.conn.ID, Table: w.tableName, Path: w.filePath})
			out.Status = infoStatus(fmt.Sprintf("Importing %s into %s...", filepath.Base(w.filePath), w.tableName))
			return out
		case "b":
			return w.openBrowser()
		}
	case Failed:
		if key == "enter" || key == "r" {
			w.phase = Confirming
			w.lastErr = nil
		}
	}
	return handled()
}

// HandleImport applies the result of the wizard's ImportFile. It reports
// false for results the wizard did not ask for.
func (w *ImportWizard) HandleImport(ev ImportFinished) (Outcome, bool) {
	if ev.Token == 0 || ev.Token != w.token || w.phase != Executing {
		return Outcome{}, false
	}
	w.token = 0

	if ev.Err != nil {
		w.phase = Failed
		w.lastErr = NewEngineError("import", ev.Err)
		out := handled()
		out.Status = errorStatus(w.lastErr)
		return out, true
	}

	w.phase = Completed
	out := popWith(PopResult{Text: w.tableName})
	out.Status = infoStatus(fmt.Sprintf("Imported %s into %s", filepath.Base(w.filePath), w.tableName))
	return out, true
}

// View returns the render state
func (w *ImportWizard) View() ModalView {
	v := ImportView{
		Phase:     w.phase,
		ConnLabel: w.conn.Label,
		TableName: w.tableName,
		FilePath:  w.filePath,
	}
	if w.filePath != "" && w.conn.Engine == db.DuckDB {
		if stmt, err := db.ImportStatement(w.tableName, w.filePath); err == nil {
			v.Statement = stmt
		}
	}
	if w.lastErr != nil {
		v.LastError = w.lastErr.Error()
	}
	return v
}
