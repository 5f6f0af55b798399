// internal/db/duckdb.go
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/marcboeker/go-duckdb"
)

// DuckDBDriver implements Driver for DuckDB
type DuckDBDriver struct {
	db *sql.DB
}

// Connect opens a DuckDB database file, or an in-memory database when no
// path is given
func (d *DuckDBDriver) Connect(params ConnectParams) error {
	dsn := params.Database
	if dsn == ":memory:" {
		dsn = ""
	}

	db, err := sql.Open("duckdb", dsn)
	if err != nil {
		return WrapConnectionError(err)
	}

	// sql.Open is lazy; make sure the file is really usable before reporting success
	if err := db.Ping(); err != nil {
		db.Close()
		return WrapConnectionError(err)
	}

	d.db = db
	return nil
}

// Close closes the database connection
func (d *DuckDBDriver) Close() error {
	if d.db != nil {
		return d.db.Close()
	}
	return nil
}

// Ping checks if database is reachable
func (d *DuckDBDriver) Ping(ctx context.Context) error {
	if d.db == nil {
		return WrapConnectionError(ErrNotConnected)
	}
	return d.db.PingContext(ctx)
}

// Type returns the driver type
func (d *DuckDBDriver) Type() DriverType {
	return DuckDB
}

// Version returns the engine version string
func (d *DuckDBDriver) Version(ctx context.Context) (string, error) {
	if d.db == nil {
		return "", WrapConnectionError(ErrNotConnected)
	}
	var v string
	if err := d.db.QueryRowContext(ctx, "SELECT version()").Scan(&v); err != nil {
		return "", WrapQueryError(err)
	}
	return v, nil
}

// GetTables returns the tables and views of the main schema
func (d *DuckDBDriver) GetTables(ctx context.Context) ([]string, error) {
	if d.db == nil {
		return nil, WrapConnectionError(ErrNotConnected)
	}
	return queryStrings(ctx, d.db, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'main'
		ORDER BY table_name`)
}

// GetColumns returns column metadata for a table
func (d *DuckDBDriver) GetColumns(ctx context.Context, tableName string) ([]Column, error) {
	if d.db == nil {
		return nil, WrapConnectionError(ErrNotConnected)
	}
	rows, err := d.db.QueryContext(ctx, `
		SELECT column_name, data_type, is_nullable, COALESCE(column_default, '')
		FROM information_schema.columns
		WHERE table_schema = 'main' AND table_name = ?
		ORDER BY ordinal_position`, tableName)
	if err != nil {
		return nil, WrapQueryError(err)
	}
	defer rows.Close()

	var columns []Column
	for rows.Next() {
		var c Column
		var nullable string
		if err := rows.Scan(&c.Name, &c.Type, &nullable, &c.Default); err != nil {
			return nil, WrapQueryError(err)
		}
		c.Nullable = nullable == "YES"
		columns = append(columns, c)
	}
	return columns, rows.Err()
}

// Import creates tableName from a CSV, TSV, JSON, NDJSON or Parquet file
// using DuckDB's schema-inferring readers
func (d *DuckDBDriver) Import(ctx context.Context, tableName, filePath string) error {
	if d.db == nil {
		return WrapConnectionError(ErrNotConnected)
	}
	stmt, err := ImportStatement(tableName, filePath)
	if err != nil {
		return err
	}
	if _, err := d.db.ExecContext(ctx, stmt); err != nil {
		return WrapQueryError(fmt.Errorf("import %s: %w", filePath, err))
	}
	return nil
}

// Preview returns the first limit rows of a table, ordered by sort
func (d *DuckDBDriver) Preview(ctx context.Context, tableName string, limit int, sort []SortKey) (*QueryResult, error) {
	if d.db == nil {
		return nil, WrapConnectionError(ErrNotConnected)
	}
	return queryRows(ctx, d.db, previewQuery(tableName, limit, sort))
}

// DropTable removes a table
func (d *DuckDBDriver) DropTable(ctx context.Context, tableName string) error {
	if d.db == nil {
		return WrapConnectionError(ErrNotConnected)
	}
	return dropTable(ctx, d.db, tableName)
}
