package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectDuckDB(t *testing.T) *DuckDBDriver {
	t.Helper()
	d := &DuckDBDriver{}
	require.NoError(t, d.Connect(ConnectParams{}))
	t.Cleanup(func() { d.Close() })
	return d
}

func TestDuckDBDriver_InMemory(t *testing.T) {
	ctx := context.Background()
	d := connectDuckDB(t)

	require.NoError(t, d.Ping(ctx))
	assert.Equal(t, DuckDB, d.Type())

	v, err := d.Version(ctx)
	require.NoError(t, err)
	assert.Regexp(t, `^v\d+\.\d+`, v)

	tables, err := d.GetTables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestDuckDBDriver_Import(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name    string
		file    string
		content string
		columns []string
		rows    [][]string
	}{
		{
			name:    "csv",
			file:    "sales.csv",
			content: "id,name\n1,a\n2,b\n",
			columns: []string{"id", "name"},
			rows:    [][]string{{"1", "a"}, {"2", "b"}},
		},
		{
			name:    "tsv",
			file:    "sales.tsv",
			content: "id\tname\n1\ta\n",
			columns: []string{"id", "name"},
			rows:    [][]string{{"1", "a"}},
		},
		{
			name:    "ndjson",
			file:    "events.ndjson",
			content: "{\"id\":1,\"kind\":\"click\"}\n{\"id\":2,\"kind\":\"view\"}\n",
			columns: []string{"id", "kind"},
			rows:    [][]string{{"1", "click"}, {"2", "view"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			d := connectDuckDB(t)
			path := writeFile(t, dir, tt.file, tt.content)

			require.NoError(t, d.Import(ctx, "t", path))

			tables, err := d.GetTables(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"t"}, tables)

			res, err := d.Preview(ctx, "t", 10, []SortKey{{Column: "id"}})
			require.NoError(t, err)
			assert.Equal(t, tt.columns, res.Columns)
			assert.Equal(t, tt.rows, res.Rows)
			assert.Equal(t, len(tt.rows), res.RowCount)

			cols, err := d.GetColumns(ctx, "t")
			require.NoError(t, err)
			assert.Len(t, cols, len(tt.columns))
		})
	}
}

func TestDuckDBDriver_ImportRejectsUnknownFormat(t *testing.T) {
	d := connectDuckDB(t)
	p := writeFile(t, t.TempDir(), "sheet.xlsx", "PK")

	err := d.Import(context.Background(), "sheet", p)
	var ufe *UnsupportedFormatError
	require.ErrorAs(t, err, &ufe)
	assert.Equal(t, "xlsx", ufe.Format)
}

func TestDuckDBDriver_ImportExistingTableFails(t *testing.T) {
	ctx := context.Background()
	d := connectDuckDB(t)
	p := writeFile(t, t.TempDir(), "a.csv", "x\n1\n")

	require.NoError(t, d.Import(ctx, "a", p))
	var qe *QueryError
	assert.ErrorAs(t, d.Import(ctx, "a", p), &qe)
}

func TestDuckDBDriver_SortedPreviewAndDrop(t *testing.T) {
	ctx := context.Background()
	d := connectDuckDB(t)
	p := writeFile(t, t.TempDir(), "people.csv", "name,age\nbob,30\nann,30\ncid,25\n")
	require.NoError(t, d.Import(ctx, "people", p))

	res, err := d.Preview(ctx, "people", 2, []SortKey{{Column: "age", Desc: true}, {Column: "name"}})
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"ann", "30"}, {"bob", "30"}}, res.Rows)

	require.NoError(t, d.DropTable(ctx, "people"))
	tables, err := d.GetTables(ctx)
	require.NoError(t, err)
	assert.Empty(t, tables)
}

func TestManager_RoutesByExtension(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	m := NewManager()
	defer m.Close()

	lite, err := m.OpenConnection(ctx, ConnectSpec{Path: filepath.Join(dir, "shop.sqlite")})
	require.NoError(t, err)
	assert.Equal(t, SQLite, lite.Engine)

	duckPath := filepath.Join(dir, "warehouse.duckdb")
	duck, err := m.OpenConnection(ctx, ConnectSpec{Path: duckPath})
	require.NoError(t, err)
	assert.Equal(t, DuckDB, duck.Engine)
	assert.Equal(t, FileBacked, duck.Kind)

	mem, err := m.OpenConnection(ctx, ConnectSpec{InMemory: true})
	require.NoError(t, err)
	assert.Equal(t, DuckDB, mem.Engine)
	assert.Equal(t, "memory", mem.Label)

	csvPath := writeFile(t, dir, "data.csv", "id,name\n1,a\n")
	require.NoError(t, m.ImportFile(ctx, duck.ID, "sales", csvPath))
	require.NoError(t, m.ImportFile(ctx, mem.ID, "sales", csvPath))

	info, err := m.Describe(ctx, mem.ID)
	require.NoError(t, err)
	assert.Regexp(t, `^v\d`, info.Version)
	assert.Equal(t, []TableInfo{{Name: "sales", Columns: 2}}, info.Tables)

	// A file-backed DuckDB database keeps its tables across connections
	require.NoError(t, m.CloseConnection(ctx, duck.ID))
	again, err := m.OpenConnection(ctx, ConnectSpec{Path: duckPath})
	require.NoError(t, err)
	tables, err := m.ListTables(ctx, again.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"sales"}, tables)

	require.NoError(t, m.DropTable(ctx, again.ID, "sales"))
	tables, err = m.ListTables(ctx, again.ID)
	require.NoError(t, err)
	assert.Empty(t, tables)
}
