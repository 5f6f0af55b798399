package state

import "github.com/nhath/ducky/internal/db"

// Token correlates a command with the event that reports its result
type Token uint64

// Tokens hands out increasing correlation tokens; zero is never issued
type Tokens struct {
	last Token
}

// Next returns a fresh token
func (t *Tokens) Next() Token {
	t.last++
	return t.last
}

// Command is a request for work outside the event loop. The set of commands
// is closed.
type Command interface {
	isCommand()
}

// OpenConnection opens a database
type OpenConnection struct {
	Token Token
	Spec  db.ConnectSpec
}

// CloseConnection disconnects a database
type CloseConnection struct {
	Token Token
	ID    string
}

// ListDatabases reloads the connection set from the gateway
type ListDatabases struct {
	Token Token
}

// ListTables lists the tables of a connection
type ListTables struct {
	Token  Token
	ConnID string
}

// ImportFile creates Table on ConnID from Path
type ImportFile struct {
	Token  Token
	ConnID string
	Table  string
	Path   string
}

// PreviewTable fetches the first Limit rows of Table in Sort order
type PreviewTable struct {
	Token  Token
	ConnID string
	Table  string
	Limit  int
	Sort   []db.SortKey
}

// DropTable removes Table from ConnID
type DropTable struct {
	Token  Token
	ConnID string
	Table  string
}

// ListDirectory lists Dir for a file browser
type ListDirectory struct {
	Token      Token
	Dir        string
	ShowHidden bool
}

// RememberDir persists the last directory a file was chosen from
type RememberDir struct {
	Dir string
}

// Quit ends the program
type Quit struct{}

func (OpenConnection) isCommand()  {}
func (CloseConnection) isCommand() {}
func (ListDatabases) isCommand()   {}
func (ListTables) isCommand()      {}
func (ImportFile) isCommand()      {}
func (PreviewTable) isCommand()    {}
func (DropTable) isCommand()       {}
func (ListDirectory) isCommand()   {}
func (RememberDir) isCommand()     {}
func (Quit) isCommand()            {}
