package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path    string
		want    FileFormat
		wantErr bool
	}{
		{"data.csv", FormatCSV, false},
		{"DATA.CSV", FormatCSV, false},
		{"data.tsv", FormatTSV, false},
		{"data.json", FormatJSON, false},
		{"data.jsonl", FormatNDJSON, false},
		{"data.parquet", FormatParquet, false},
		{"data.txt", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := DetectFormat(tt.path)
			if tt.wantErr {
				var ufe *UnsupportedFormatError
				assert.ErrorAs(t, err, &ufe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImportStatement(t *testing.T) {
	stmt, err := ImportStatement("sales", "/tmp/o'brien.csv")
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "sales" AS SELECT * FROM read_csv_auto('/tmp/o''brien.csv')`, stmt)

	stmt, err = ImportStatement("p", "x.parquet")
	require.NoError(t, err)
	assert.Equal(t, `CREATE TABLE "p" AS SELECT * FROM read_parquet('x.parquet')`, stmt)

	_, err = ImportStatement("p", "x.xlsx")
	assert.Error(t, err)
}

func TestDriverTypeForPath(t *testing.T) {
	assert.Equal(t, SQLite, DriverTypeForPath("a.sqlite"))
	assert.Equal(t, SQLite, DriverTypeForPath("a.db"))
	assert.Equal(t, DuckDB, DriverTypeForPath("a.duckdb"))
	assert.Equal(t, DuckDB, DriverTypeForPath(""))
	assert.True(t, IsDatabaseFile("x.DuckDB"))
	assert.False(t, IsDatabaseFile("x.csv"))
}

func TestManager_Lifecycle(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	defer m.Close()

	path := filepath.Join(t.TempDir(), "shop.sqlite")
	conn, err := m.OpenConnection(ctx, ConnectSpec{Path: path})
	require.NoError(t, err)
	assert.Equal(t, "db1", conn.ID)
	assert.Equal(t, path, conn.Label)
	assert.Equal(t, FileBacked, conn.Kind)
	assert.Equal(t, SQLite, conn.Engine)

	csvPath := writeFile(t, t.TempDir(), "orders.csv", "id,total\n1,9.5\n")
	require.NoError(t, m.ImportFile(ctx, conn.ID, "orders", csvPath))

	tables, err := m.ListTables(ctx, conn.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"orders"}, tables)

	info, err := m.Describe(ctx, conn.ID)
	require.NoError(t, err)
	assert.Contains(t, info.Version, "SQLite")
	assert.Equal(t, []TableInfo{{Name: "orders", Columns: 2}}, info.Tables)

	dbs, err := m.ListDatabases(ctx)
	require.NoError(t, err)
	assert.Len(t, dbs, 1)

	require.NoError(t, m.CloseConnection(ctx, conn.ID))
	dbs, _ = m.ListDatabases(ctx)
	assert.Empty(t, dbs)

	assert.ErrorIs(t, m.CloseConnection(ctx, conn.ID), ErrUnknownConnection)
	_, err = m.ListTables(ctx, conn.ID)
	assert.ErrorIs(t, err, ErrUnknownConnection)
}

type stubDriver struct {
	SQLiteDriver
	connectErr error
}

func (s *stubDriver) Connect(ConnectParams) error { return s.connectErr }
func (s *stubDriver) Ping(context.Context) error { return nil }
func (s *stubDriver) Close() error { return nil }
func (s *stubDriver) Type() DriverType { return DuckDB }

func TestManager_InMemoryLabels(t *testing.T) {
	ctx := context.Background()
	m := NewManager()
	m.newDriver = func(DriverType) (Driver, error) { return &stubDriver{}, nil }

	a, err := m.OpenConnection(ctx, ConnectSpec{InMemory: true})
	require.NoError(t, err)
	b, err := m.OpenConnection(ctx, ConnectSpec{InMemory: true})
	require.NoError(t, err)

	assert.Equal(t, "memory", a.Label)
	assert.Equal(t, "memory-2", b.Label)
	assert.Equal(t, InMemory, b.Kind)
	assert.Equal(t, DuckDB, b.Engine)
}

func TestManager_OpenFailure(t *testing.T) {
	m := NewManager()
	m.newDriver = func(DriverType) (Driver, error) {
		return &stubDriver{connectErr: WrapConnectionError(assert.AnError)}, nil
	}

	_, err := m.OpenConnection(context.Background(), ConnectSpec{Path: "broken.duckdb"})
	var ce *ConnectionError
	require.ErrorAs(t, err, &ce)

	dbs, _ := m.ListDatabases(context.Background())
	assert.Empty(t, dbs)
}
