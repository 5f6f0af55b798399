// Package highlight renders SQL with terminal colors.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle matches the Nord theme of the default config
const DefaultStyle = "nord"

var (
	sqlLexer  chroma.Lexer
	formatter chroma.Formatter
)

func init() {
	sqlLexer = lexers.Get("sql")
	if sqlLexer == nil {
		sqlLexer = lexers.Fallback
	}
	sqlLexer = chroma.Coalesce(sqlLexer)

	// Use terminal256 formatter for ANSI output
	formatter = formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}
}

// SQL returns sql highlighted with the named chroma style. On any error the
// input is returned unchanged.
func SQL(sql, styleName string) string {
	style := styles.Get(styleName)
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := sqlLexer.Tokenise(nil, sql)
	if err != nil {
		return sql
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return sql
	}

	// Remove trailing newline added by chroma
	return strings.TrimSuffix(buf.String(), "\n")
}
