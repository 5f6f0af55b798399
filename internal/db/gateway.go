package db

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Kind distinguishes in-memory from file-backed connections
type Kind string

const (
	InMemory   Kind = "memory"
	FileBacked Kind = "file"
)

// ConnectSpec describes a connection to open. An empty Path with InMemory
// set opens a fresh in-memory DuckDB database.
type ConnectSpec struct {
	Path     string
	InMemory bool
}

// Connection is the summary of an open connection
type Connection struct {
	ID     string
	Label  string
	Kind   Kind
	Path   string
	Engine DriverType
}

// TableInfo is a table name with its column count
type TableInfo struct {
	Name    string
	Columns int
}

// DatabaseInfo summarises a connection for headless checks
type DatabaseInfo struct {
	Connection Connection
	Version    string
	Tables     []TableInfo
}

// Gateway is the boundary the application uses to reach the engines.
// Implementations must be safe for concurrent use: calls arrive from
// background commands.
type Gateway interface {
	OpenConnection(ctx context.Context, spec ConnectSpec) (Connection, error)
	CloseConnection(ctx context.Context, id string) error
	ListDatabases(ctx context.Context) ([]Connection, error)
	ListTables(ctx context.Context, id string) ([]string, error)
	ImportFile(ctx context.Context, id, tableName, filePath string) error
	PreviewTable(ctx context.Context, id, tableName string, limit int, sort []SortKey) (*QueryResult, error)
	DropTable(ctx context.Context, id, tableName string) error
	Describe(ctx context.Context, id string) (*DatabaseInfo, error)
	Close() error
}

type managedConn struct {
	conn   Connection
	driver Driver
}

// Manager owns the set of open connections
type Manager struct {
	mu        sync.RWMutex
	conns     map[string]*managedConn
	order     []string
	seq       int
	newDriver func(DriverType) (Driver, error)
}

// NewManager creates an empty connection manager
func NewManager() *Manager {
	return &Manager{
		conns:     make(map[string]*managedConn),
		newDriver: NewDriver,
	}
}

// OpenConnection opens a database and adds it to the connection set
func (m *Manager) OpenConnection(ctx context.Context, spec ConnectSpec) (Connection, error) {
	kind := FileBacked
	driverType := DriverTypeForPath(spec.Path)
	if spec.InMemory || spec.Path == "" || spec.Path == ":memory:" {
		kind = InMemory
		driverType = DuckDB
	}

	driver, err := m.newDriver(driverType)
	if err != nil {
		return Connection{}, WrapConnectionError(err)
	}

	params := ConnectParams{}
	if kind == FileBacked {
		params.Database = spec.Path
	}
	if err := driver.Connect(params); err != nil {
		return Connection{}, err
	}
	if err := driver.Ping(ctx); err != nil {
		driver.Close()
		return Connection{}, WrapConnectionError(err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	conn := Connection{
		ID:     fmt.Sprintf("db%d", m.seq),
		Kind:   kind,
		Path:   params.Database,
		Engine: driverType,
	}
	conn.Label = m.labelLocked(conn)

	m.conns[conn.ID] = &managedConn{conn: conn, driver: driver}
	m.order = append(m.order, conn.ID)
	return conn, nil
}

// labelLocked returns "memory" for the first in-memory database and
// "memory-N" for later ones; file-backed connections use their path
func (m *Manager) labelLocked(conn Connection) string {
	if conn.Kind == FileBacked {
		return conn.Path
	}
	for _, id := range m.order {
		if m.conns[id].conn.Kind == InMemory {
			return fmt.Sprintf("memory-%d", m.seq)
		}
	}
	return "memory"
}

// CloseConnection closes a connection and removes it from the set
func (m *Manager) CloseConnection(ctx context.Context, id string) error {
	m.mu.Lock()
	mc, ok := m.conns[id]
	if ok {
		delete(m.conns, id)
		for i, oid := range m.order {
			if oid == id {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("close %s: %w", id, ErrUnknownConnection)
	}
	return mc.driver.Close()
}

// ListDatabases returns the open connections in opening order
func (m *Manager) ListDatabases(ctx context.Context) ([]Connection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]Connection, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.conns[id].conn)
	}
	return out, nil
}

// ListTables returns the table names of a connection
func (m *Manager) ListTables(ctx context.Context, id string) ([]string, error) {
	driver, err := m.driver(id)
	if err != nil {
		return nil, err
	}
	return driver.GetTables(ctx)
}

// ImportFile creates tableName on connection id from filePath
func (m *Manager) ImportFile(ctx context.Context, id, tableName, filePath string) error {
	driver, err := m.driver(id)
	if err != nil {
		return err
	}
	return driver.Import(ctx, tableName, filePath)
}

// PreviewTable returns the first rows of a table
func (m *Manager) PreviewTable(ctx context.Context, id, tableName string, limit int, sort []SortKey) (*QueryResult, error) {
	driver, err := m.driver(id)
	if err != nil {
		return nil, err
	}
	return driver.Preview(ctx, tableName, limit, sort)
}

// DropTable removes a table from a connection
func (m *Manager) DropTable(ctx context.Context, id, tableName string) error {
	driver, err := m.driver(id)
	if err != nil {
		return err
	}
	return driver.DropTable(ctx, tableName)
}

// Describe gathers version and table information for a connection
func (m *Manager) Describe(ctx context.Context, id string) (*DatabaseInfo, error) {
	m.mu.RLock()
	mc, ok := m.conns[id]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("describe %s: %w", id, ErrUnknownConnection)
	}

	version, err := mc.driver.Version(ctx)
	if err != nil {
		return nil, err
	}
	tables, err := mc.driver.GetTables(ctx)
	if err != nil {
		return nil, err
	}

	info := &DatabaseInfo{Connection: mc.conn, Version: version}
	for _, t := range tables {
		cols, err := mc.driver.GetColumns(ctx, t)
		if err != nil {
			return nil, err
		}
		info.Tables = append(info.Tables, TableInfo{Name: t, Columns: len(cols)})
	}
	return info, nil
}

// Close closes every open connection
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, id := range m.order {
		if err := m.conns[id].driver.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	m.conns = make(map[string]*managedConn)
	m.order = nil
	return errors.Join(errs...)
}

func (m *Manager) driver(id string) (Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	mc, ok := m.conns[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrUnknownConnection)
	}
	return mc.driver, nil
}

var _ Gateway = (*Manager)(nil)
