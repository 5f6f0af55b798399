package db

import (
	"path/filepath"
	"strings"
)

// FileFormat is an importable data file format
type FileFormat string

const (
	FormatCSV     FileFormat = "csv"
	FormatTSV     FileFormat = "tsv"
	FormatJSON    FileFormat = "json"
	FormatNDJSON  FileFormat = "ndjson"
	FormatParquet FileFormat = "parquet"
)

// DetectFormat maps a file extension to a FileFormat
func DetectFormat(path string) (FileFormat, error) {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch ext {
	case "csv":
		return FormatCSV, nil
	case "tsv", "tab":
		return FormatTSV, nil
	case "json":
		return FormatJSON, nil
	case "ndjson", "jsonl":
		return FormatNDJSON, nil
	case "parquet":
		return FormatParquet, nil
	default:
		return "", &UnsupportedFormatError{Path: path, Format: ext}
	}
}

// ImportStatement returns the DuckDB statement that creates tableName from
// filePath. The file is read with the engine's auto-detecting readers.
func ImportStatement(tableName, filePath string) (string, error) {
	format, err := DetectFormat(filePath)
	if err != nil {
		return "", err
	}

	var reader string
	switch format {
	case FormatCSV:
		reader = "read_csv_auto(" + quoteLiteral(filePath) + ")"
	case FormatTSV:
		reader = "read_csv_auto(" + quoteLiteral(filePath) + ", delim='\\t')"
	case FormatJSON, FormatNDJSON:
		reader = "read_json_auto(" + quoteLiteral(filePath) + ")"
	case FormatParquet:
		reader = "read_parquet(" + quoteLiteral(filePath) + ")"
	}
	return "CREATE TABLE " + QuoteIdent(tableName) + " AS SELECT * FROM " + reader, nil
}
