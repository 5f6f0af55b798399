package state

import (
	"github.com/nhath/ducky/internal/db"
	"github.com/nhath/ducky/internal/fs"
)

// Event is the result of a Command, delivered back to the event loop
type Event interface {
	isEvent()
}

// ConnectionOpened answers OpenConnection
type ConnectionOpened struct {
	Token Token
	Conn  db.Connection
	Err   error
}

// ConnectionClosed answers CloseConnection
type ConnectionClosed struct {
	Token Token
	ID    string
	Err   error
}

// DatabasesListed answers ListDatabases
type DatabasesListed struct {
	Token Token
	Conns []db.Connection
	Err   error
}

// TablesListed answers ListTables
type TablesListed struct {
	Token  Token
	ConnID string
	Tables []string
	Err    error
}

// ImportFinished answers ImportFile
type ImportFinished struct {
	Token  Token
	ConnID string
	Err    error
}

// TableDropped answers DropTable
type TableDropped struct {
	Token  Token
	ConnID string
	Table  string
	Err    error
}

// PreviewLoaded answers PreviewTable
type PreviewLoaded struct {
	Token  Token
	Table  string
	Result *db.QueryResult
	Err    error
}

// DirectoryListed answers ListDirectory
type DirectoryListed struct {
	Token   Token
	Dir     string
	Entries []fs.Entry
	Err     error
}

func (ConnectionOpened) isEvent() {}
func (ConnectionClosed) isEvent() {}
func (DatabasesListed) isEvent()  {}
func (TablesListed) isEvent()     {}
func (ImportFinished) isEvent()   {}
func (PreviewLoaded) isEvent()    {}
func (TableDropped) isEvent()     {}
func (DirectoryListed) isEvent()  {}
