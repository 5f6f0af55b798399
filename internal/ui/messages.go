// internal/ui/messages.go
package ui

import (
	"github.com/nhath/ducky/internal/history"
	"github.com/nhath/ducky/internal/state"
)

// eventMsg carries the result of a background command back into Update
type eventMsg struct {
	event state.Event
}

// RecentActionsMsg is sent when the action log has been read for the help overlay
type RecentActionsMsg struct {
	Entries []history.Entry
	Total   int
	Err     error
}
