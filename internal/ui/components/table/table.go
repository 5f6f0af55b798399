// Package table renders query results with bubble-table.
package table

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"
	"github.com/nhath/ducky/internal/db"
)

// Nord colors
const (
	ColorForeground = "#D8DEE9" // Nord4: Light gray
	ColorComment    = "#4C566A" // Nord3: Dark gray
	ColorGreen      = "#A3BE8C" // Nord14: Green
	ColorOrange     = "#D08770" // Nord12: Orange
	ColorPurple     = "#B48EAD" // Nord15: Purple
	ColorYellow     = "#EBCB8B" // Nord13: Yellow
	ColorTeal       = "#8FBCBB" // Nord7: Teal
)

// MaxColumnWidth caps a single column
const MaxColumnWidth = 40

// New creates a new bubble-table with Nord theme (no background)
func New(cols []bbtable.Column) bbtable.Model {
	return bbtable.New(cols).
		WithBaseStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorForeground))).
		HeaderStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorTeal)).
			Bold(true)).
		HighlightStyle(lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorGreen)).
			Bold(true)).
		BorderRounded()
}

// FromQueryResult builds a table from a QueryResult with type-specific coloring
func FromQueryResult(res *db.QueryResult, pageSize int) bbtable.Model {
	if res == nil {
		return bbtable.New(nil)
	}

	// Column keys must be unique; headers may repeat
	keys := make([]string, len(res.Columns))
	for i := range res.Columns {
		keys[i] = strconv.Itoa(i)
	}

	widths := calculateColumnWidths(res.Columns, res.Rows)
	cols := make([]bbtable.Column, 0, len(res.Columns))
	for i, c := range res.Columns {
		cols = append(cols, bbtable.NewColumn(keys[i], c, min(widths[i], MaxColumnWidth)))
	}

	rows := make([]bbtable.Row, 0, len(res.Rows))
	for _, r := range res.Rows {
		rowData := bbtable.RowData{}
		for i, val := range r {
			if i < len(keys) {
				rowData[keys[i]] = bbtable.NewStyledCell(val, GetValueStyle(val))
			}
		}
		rows = append(rows, bbtable.NewRow(rowData))
	}

	t := New(cols).WithRows(rows)
	if pageSize > 0 {
		t = t.WithPageSize(pageSize)
	}
	return t.WithStaticFooter(fmt.Sprintf("%d rows", res.RowCount))
}

func calculateColumnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
	}

	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], lipgloss.Width(val))
			}
		}
	}

	// Add padding
	for i := range widths {
		widths[i] += 2
	}

	return widths
}

// GetValueStyle returns a lipgloss style based on value content
func GetValueStyle(val string) lipgloss.Style {
	if val == "" || strings.ToUpper(val) == "NULL" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorComment)).Italic(true)
	}
	if _, err := strconv.ParseFloat(val, 64); err == nil {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPurple))
	}
	lower := strings.ToLower(val)
	if lower == "true" || lower == "false" {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow))
}
