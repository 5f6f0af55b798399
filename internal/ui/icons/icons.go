package icons

import "github.com/nhath/ducky/internal/db"

const (
	// Engine icons
	IconDuckDB  = "◆"
	IconSQLite  = "◇"
	IconMemory  = "◌"
	IconGeneric = "●"

	// File browser icons
	IconFolder   = "▸"
	IconParent   = "↰"
	IconDatabase = "▤"
	IconDataFile = "≡"
	IconFile     = "·"

	// Utility Icons
	IconSuccess   = "✓"
	IconError     = "⚠"
	IconSelect    = "▸"
	IconBullet    = "•"
	IconSeparator = "  •  "
	IconPending   = "○"
	IconDone      = "●"
)

// GetConnectionIcon returns the icon for a connection
func GetConnectionIcon(conn db.Connection) string {
	if conn.Kind == db.InMemory {
		return IconMemory
	}
	switch conn.Engine {
	case db.DuckDB:
		return IconDuckDB
	case db.SQLite:
		return IconSQLite
	default:
		return IconGeneric
	}
}

// GetFileIcon returns the icon for a browser entry
func GetFileIcon(name string, isDir bool) string {
	switch {
	case name == "..":
		return IconParent
	case isDir:
		return IconFolder
	case db.IsDatabaseFile(name):
		return IconDatabase
	}
	if _, err := db.DetectFormat(name); err == nil {
		return IconDataFile
	}
	return IconFile
}
