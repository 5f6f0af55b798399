// internal/history/entry.go
package history

import (
	"fmt"
	"time"
)

// Entry represents a single gateway action in the log
type Entry struct {
	ID           int64
	Action       string // "open", "close", "import", "list_tables", ...
	Target       string // connection label, table name or directory
	Detail       string
	ExecutedAt   time.Time
	DurationMs   int64
	Status       string `json:"status"` // "success", "error"
	ErrorMessage string `json:"error_message,omitempty"`
}

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Summary returns a one-line description truncated to maxLen
func (e *Entry) Summary(maxLen int) string {
	s := e.Action
	if e.Target != "" {
		s += " " + e.Target
	}
	if e.Status == StatusError {
		s += " (failed)"
	} else {
		s += fmt.Sprintf(" (%dms)", e.DurationMs)
	}
	if maxLen > 3 && len(s) > maxLen {
		return s[:maxLen-3] + "..."
	}
	return s
}
