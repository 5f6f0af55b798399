// internal/db/driver.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// DriverType represents supported embedded engines
type DriverType string

const (
	DuckDB DriverType = "duckdb"
	SQLite DriverType = "sqlite"
)

// Column represents table column metadata
type Column struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
	Key      string // PRI for sqlite primary keys
}

// ConnectParams holds database connection details.
// An empty Database opens an in-memory database.
type ConnectParams struct {
	Database string
}

// Driver defines the interface for engine operations
type Driver interface {
	Connect(params ConnectParams) error
	Close() error
	Ping(ctx context.Context) error
	Type() DriverType
	Version(ctx context.Context) (string, error)
	GetTables(ctx context.Context) ([]string, error)
	GetColumns(ctx context.Context, tableName string) ([]Column, error)
	Import(ctx context.Context, tableName, filePath string) error
	Preview(ctx context.Context, tableName string, limit int, sort []SortKey) (*QueryResult, error)
	DropTable(ctx context.Context, tableName string) error
}

// QueryResult holds the rows of a table preview
type QueryResult struct {
	Columns  []string
	Rows     [][]string
	RowCount int
}

// SortKey orders a preview by one column
type SortKey struct {
	Column string
	Desc   bool
}

// NewDriver creates a new driver instance by type
func NewDriver(driverType DriverType) (Driver, error) {
	switch driverType {
	case DuckDB:
		return &DuckDBDriver{}, nil
	case SQLite:
		return &SQLiteDriver{}, nil
	default:
		return nil, fmt.Errorf("unknown driver type: %s", driverType)
	}
}

// DriverTypeForPath picks the engine for a database file. SQLite files are
// recognised by extension, everything else (and in-memory) is DuckDB.
func DriverTypeForPath(path string) DriverType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".sqlite", ".sqlite3", ".db":
		return SQLite
	default:
		return DuckDB
	}
}

// IsDatabaseFile reports whether a path looks like a database either engine can open
func IsDatabaseFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".duckdb", ".ddb", ".sqlite", ".sqlite3", ".db":
		return true
	}
	return false
}

// QuoteIdent quotes an identifier for both engines
func QuoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// quoteLiteral quotes a string literal
func quoteLiteral(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// queryRows runs a query and renders every value as a string
func queryRows(ctx context.Context, db *sql.DB, query string) (*QueryResult, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, WrapQueryError(err)
	}

	var results [][]string
	for rows.Next() {
		values := make([]interface{}, len(columns))
		valuePtrs := make([]interface{}, len(columns))
		for i := range values {
			valuePtrs[i] = &values[i]
		}
		if err := rows.Scan(valuePtrs...); err != nil {
			return nil, WrapQueryError(err)
		}

		row := make([]string, len(columns))
		for i, v := range values {
			row[i] = formatValue(v)
		}
		results = append(results, row)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}

	return &QueryResult{Columns: columns, Rows: results, RowCount: len(results)}, nil
}

func dropTable(ctx context.Context, db *sql.DB, tableName string) error {
	if _, err := db.ExecContext(ctx, "DROP TABLE IF EXISTS "+QuoteIdent(tableName)); err != nil {
		return WrapQueryError(fmt.Errorf("drop %s: %w", tableName, err))
	}
	return nil
}

// queryStrings runs a single-column query and collects the values
func queryStrings(ctx context.Context, db *sql.DB, query string, args ...interface{}) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, WrapQueryError(err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, WrapQueryError(err)
	}
	return out, nil
}

func previewQuery(tableName string, limit int, sort []SortKey) string {
	if limit <= 0 {
		limit = 100
	}
	query := "SELECT * FROM " + QuoteIdent(tableName)
	if len(sort) > 0 {
		terms := make([]string, len(sort))
		for i, k := range sort {
			terms[i] = QuoteIdent(k.Column)
			if k.Desc {
				terms[i] += " DESC"
			}
		}
		query += " ORDER BY " + strings.Join(terms, ", ")
	}
	return fmt.Sprintf("%s LIMIT %d", query, limit)
}

// formatValue converts interface{} to string for display
func formatValue(v interface{}) string {
	if v == nil {
		return "NULL"
	}

	switch val := v.(type) {
	case []byte:
		return string(val)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", v)
	}
}
