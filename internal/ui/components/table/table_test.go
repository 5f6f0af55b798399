package table

import (
	"testing"

	"github.com/nhath/ducky/internal/db"
	"github.com/stretchr/testify/assert"
)

func TestCalculateColumnWidths(t *testing.T) {
	widths := calculateColumnWidths([]string{"id", "name"}, [][]string{{"1", "Jane"}, {"22", "Bo"}})
	assert.Equal(t, []int{4, 6}, widths)
}

func TestFromQueryResult_DuplicateHeaders(t *testing.T) {
	tbl := FromQueryResult(&db.QueryResult{
		Columns:  []string{"id", "id"},
		Rows:     [][]string{{"1", "2"}},
		RowCount: 1,
	}, 10)

	view := tbl.View()
	assert.Contains(t, view, "id")
	assert.Contains(t, view, "1 rows")
}

func TestFromQueryResult_Nil(t *testing.T) {
	assert.NotPanics(t, func() { _ = FromQueryResult(nil, 10).View() })
}
