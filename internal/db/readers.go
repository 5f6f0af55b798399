package db

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// records is a parsed data file ready for insertion
type records struct {
	columns []string
	rows    [][]interface{}
}

// readDelimited reads a CSV-like file whose first row is the header
func readDelimited(path string, delim rune) (*records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(bufio.NewReader(f))
	reader.Comma = delim
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("file is empty")
	}
	if err != nil {
		return nil, err
	}

	out := &records{columns: normalizeColumns(header)}
	for {
		rec, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		row := make([]interface{}, len(out.columns))
		for i := range row {
			if i < len(rec) && rec[i] != "" {
				row[i] = rec[i]
			}
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

// readJSONRecords reads either a JSON array of objects or newline-delimited
// objects. Columns are the union of keys in sorted order.
func readJSONRecords(path string, format FileFormat) (*records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var objects []map[string]interface{}
	br := bufio.NewReader(f)

	if format == FormatJSON && startsWithArray(br) {
		if err := json.NewDecoder(br).Decode(&objects); err != nil {
			return nil, err
		}
	} else {
		dec := json.NewDecoder(br)
		for {
			var obj map[string]interface{}
			if err := dec.Decode(&obj); err == io.EOF {
				break
			} else if err != nil {
				return nil, err
			}
			objects = append(objects, obj)
		}
	}

	seen := make(map[string]bool)
	var columns []string
	for _, obj := range objects {
		for k := range obj {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)

	out := &records{columns: columns}
	for _, obj := range objects {
		row := make([]interface{}, len(columns))
		for i, c := range columns {
			row[i] = jsonCell(obj[c])
		}
		out.rows = append(out.rows, row)
	}
	return out, nil
}

// startsWithArray peeks past leading whitespace for '['
func startsWithArray(br *bufio.Reader) bool {
	for {
		b, err := br.Peek(1)
		if err != nil {
			return false
		}
		switch b[0] {
		case ' ', '\t', '\r', '\n':
			br.ReadByte()
		default:
			return b[0] == '['
		}
	}
}

func jsonCell(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return val
	case map[string]interface{}, []interface{}:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	default:
		return fmt.Sprint(val)
	}
}

// normalizeColumns fills blank header cells and de-duplicates names
func normalizeColumns(header []string) []string {
	out := make([]string, len(header))
	used := make(map[string]int)
	for i, h := range header {
		name := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		if name == "" {
			name = fmt.Sprintf("column%d", i)
		}
		if n := used[name]; n > 0 {
			used[name] = n + 1
			name = fmt.Sprintf("%s_%d", name, n)
		} else {
			used[name] = 1
		}
		out[i] = name
	}
	return out
}
