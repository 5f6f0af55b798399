// internal/db/sqlite.go
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteDriver implements Driver for SQLite
type SQLiteDriver struct {
	db *sql.DB
}

// Connect establishes connection to SQLite
func (d *SQLiteDriver) Connect(params ConnectParams) error {
	// For SQLite, the database string is the filepath
	// Strip sqlite:// prefix if present
	dsn := strings.TrimPrefix(params.Database, "sqlite://")
	if dsn == "" {
		dsn = ":memory:"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return WrapConnectionError(err)
	}
	// A single connection keeps :memory: databases coherent across the pool
	db.SetMaxOpenConns(1)

	// Apply SQLite pragmas for better performance and safety
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return WrapConnectionError(fmt.Errorf("pragma foreign_keys: %w", err))
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 10000"); err != nil {
		db.Close()
		return WrapConnectionError(fmt.Errorf("pragma busy_timeout: %w", err))
	}
	// Reject files that are not sqlite databases up front
	if _, err := db.Exec("SELECT count(*) FROM sqlite_master"); err != nil {
		db.Close()
		return WrapConnectionError(err)
	}

	d.db = db
	return nil
}

// Close closes the database connection
func (d *SQLiteDriver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Ping checks if database is reachable
func (d *SQLiteDriver) Ping(ctx context.Context) error {
	if d.db == nil {
		return WrapConnectionError(ErrNotConnected)
	}
	return d.db.PingContext(ctx)
}

// Type returns the driver type
func (d *SQLiteDriver) Type() DriverType {
	return SQLite
}

// Version returns the sqlite library version
func (d *SQLiteDriver) Version(ctx context.Context) (string, error) {
	if d.db == nil {
		return "", WrapConnectionError(ErrNotConnected)
	}
	var v string
	if err := d.db.QueryRowContext(ctx, "SELECT sqlite_version()").Scan(&v); err != nil {
		return "", WrapQueryError(err)
	}
	return "SQLite " + v, nil
}

// GetTables returns a list of tables
func (d *SQLiteDriver) GetTables(ctx context.Context) ([]string, error) {
	if d.db == nil {
		return nil, WrapConnectionError(ErrNotConnected)
	}
	return queryStrings(ctx, d.db, `
		SELECT name FROM sqlite_master
		WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'
		ORDER BY name`)
}

// GetColumns returns detailed column metadata for a table
func (d *SQLiteDriver) GetColumns(ctx context.Context, tableName string) ([]Column, error) {
	if d.db == nil {
		return nil, WrapConnectionError(ErrNotConnected)
	}
	query := fmt.Sprintf("PRAGMA table_info(%s)", QuoteIdent(tableName))
	rows, err := d.db.QueryContext(ctx, query)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var cid int
		var name string
		var dataType string
		var notNull int
		var dfltValue interface{}
		var pk int
		if err := rows.Scan(&cid, &name, &dataType, &notNull, &dfltValue, &pk); err != nil {
			return nil, WrapQueryError(err)
		}

		key := ""
		if pk > 0 {
			key = "PRI"
		}

		dflt := ""
		if dfltValue != nil {
			dflt = formatValue(dfltValue)
		}

		columns = append(columns, Column{
			Name:     name,
			Type:     dataType,
			Nullable: notNull == 0,
			Default:  dflt,
			Key:      key,
		})
	}
	return columns, rows.Err()
}

// Import creates tableName from a CSV, TSV, JSON or NDJSON file. SQLite has
// no file readers of its own, so records are parsed here and inserted in a
// single transaction with every column typed TEXT.
func (d *SQLiteDriver) Import(ctx context.Context, tableName, filePath string) error {
	if d.db == nil {
		return WrapConnectionError(ErrNotConnected)
	}

	format, err := DetectFormat(filePath)
	if err != nil {
		return err
	}

	var data *records
	switch format {
	case FormatCSV:
		data, err = readDelimited(filePath, ',')
	case FormatTSV:
		data, err = readDelimited(filePath, '\t')
	case FormatJSON, FormatNDJSON:
		data, err = readJSONRecords(filePath, format)
	default:
		return &UnsupportedFormatError{Path: filePath, Format: string(format)}
	}
	if err != nil {
		return WrapQueryError(fmt.Errorf("read %s: %w", filePath, err))
	}
	if len(data.columns) == 0 {
		return WrapQueryError(fmt.Errorf("read %s: no columns found", filePath))
	}

	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return WrapQueryError(err)
	}
	defer tx.Rollback()

	colDefs := make([]string, len(data.columns))
	colNames := make([]string, len(data.columns))
	placeholders := make([]string, len(data.columns))
	for i, c := range data.columns {
		colNames[i] = QuoteIdent(c)
		colDefs[i] = QuoteIdent(c) + " TEXT"
		placeholders[i] = "?"
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)", QuoteIdent(tableName), strings.Join(colDefs, ", "))
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return WrapQueryError(err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		QuoteIdent(tableName),
		strings.Join(colNames, ", "),
		strings.Join(placeholders, ", "))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return WrapQueryError(err)
	}
	defer stmt.Close()

	for _, row := range data.rows {
		if _, err := stmt.ExecContext(ctx, row...); err != nil {
			return WrapQueryError(err)
		}
	}

	if err := tx.Commit(); err != nil {
		return WrapQueryError(err)
	}
	return nil
}

// Preview returns the first limit rows of a table, ordered by sort
func (d *SQLiteDriver) Preview(ctx context.Context, tableName string, limit int, sort []SortKey) (*QueryResult, error) {
	if d.db == nil {
		return nil, WrapConnectionError(ErrNotConnected)
	}
	return queryRows(ctx, d.db, previewQuery(tableName, limit, sort))
}

// DropTable removes a table
func (d *SQLiteDriver) DropTable(ctx context.Context, tableName string) error {
	if d.db == nil {
		return WrapConnectionError(ErrNotConnected)
	}
	return dropTable(ctx, d.db, tableName)
}
