// internal/history/store.go
package history

import (
	"database/sql"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	_ "github.com/mattn/go-sqlite3"
)

// Store persists the action log
type Store struct {
	db *sql.DB
}

// NewStore creates the action log in the XDG data directory
func NewStore() (*Store, error) {
	dbPath, err := xdg.DataFile("ducky/actions.db")
	if err != nil {
		return nil, err
	}
	return NewStoreAt(dbPath)
}

// NewStoreAt creates the action log backed by the SQLite file at dbPath
func NewStoreAt(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0700); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, err
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS actions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			action TEXT NOT NULL,
			target TEXT NOT NULL,
			detail TEXT,
			executed_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			duration_ms INTEGER NOT NULL,
			status TEXT NOT NULL,
			error_message TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_actions_executed_at ON actions(executed_at);
	`)
	if err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{db: db}
	// Cleanup failure is not fatal; old rows are retried on the next Add
	_ = store.cleanup()
	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Add inserts a new action into the log
func (s *Store) Add(entry *Entry) error {
	res, err := s.db.Exec(`
		INSERT INTO actions (action, target, detail, executed_at, duration_ms, status, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		entry.Action,
		entry.Target,
		entry.Detail,
		entry.ExecutedAt,
		entry.DurationMs,
		entry.Status,
		entry.ErrorMessage,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id

	return s.cleanup()
}

// List returns paginated entries, newest first
func (s *Store) List(limit, offset int) ([]Entry, error) {
	rows, err := s.db.Query(`
		SELECT id, action, target, detail, executed_at, duration_ms, status, error_message
		FROM actions
		ORDER BY executed_at DESC, id DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanEntries(rows)
}

// Recent returns the n most recent entries
func (s *Store) Recent(n int) ([]Entry, error) {
	return s.List(n, 0)
}

// scanEntries scans rows into an Entry slice
func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var detail, errMsg sql.NullString
		if err := rows.Scan(&e.ID, &e.Action, &e.Target, &detail, &e.ExecutedAt,
			&e.DurationMs, &e.Status, &errMsg); err != nil {
			return nil, err
		}
		e.Detail = detail.String
		e.ErrorMessage = errMsg.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// cleanup removes entries older than 90 days
func (s *Store) cleanup() error {
	_, err := s.db.Exec(`
		DELETE FROM actions
		WHERE executed_at < datetime('now', '-90 days')
	`)
	return err
}

// Count returns the total number of entries
func (s *Store) Count() (int, error) {
	var count int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM actions`).Scan(&count)
	return count, err
}
