package highlight

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestSQL_KeepsText(t *testing.T) {
	sql := `CREATE TABLE "sales" AS SELECT * FROM read_csv_auto('data.csv')`
	out := SQL(sql, DefaultStyle)

	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, sql, ansi.ReplaceAllString(out, ""))
}

func TestSQL_UnknownStyleFallsBack(t *testing.T) {
	out := SQL("SELECT 1", "no-such-style")
	assert.Equal(t, "SELECT 1", ansi.ReplaceAllString(out, ""))
}
