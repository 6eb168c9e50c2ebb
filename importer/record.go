package importer

import (
	"strings"
)

// Table is one raw worksheet: the header texts in sheet order and one
// Record per data row.
type Table struct {
	Columns  []string
	Records  []Record
	Date1904 bool
}

// HasColumn reports whether the header row contains name, compared after
// header normalization.
func (t *Table) HasColumn(name string) bool {
	normalized := normalizeHeader(name)
	for _, column := range t.Columns {
		if normalizeHeader(column) == normalized {
			return true
		}
	}
	return false
}

type Record struct {
	RowNumber int
	Values    map[string]string
}

func (r Record) Get(keys ...string) string {
	for _, key := range keys {
		normalized := normalizeHeader(key)
		if value, ok := r.Values[normalized]; ok {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

func newRecord(rowNumber int, headers []string, row []string) Record {
	values := make(map[string]string, len(headers))
	for col, header := range headers {
		if header == "" {
			continue
		}
		if col < len(row) {
			values[header] = row[col]
		} else {
			values[header] = ""
		}
	}
	return Record{RowNumber: rowNumber, Values: values}
}

func normalizeHeaders(headers []string) []string {
	normalized := make([]string, len(headers))
	for i, header := range headers {
		normalized[i] = normalizeHeader(header)
	}
	return normalized
}

func normalizeHeader(input string) string {
	trimmed := strings.TrimSpace(strings.ToLower(input))
	trimmed = strings.ReplaceAll(trimmed, "_", "")
	trimmed = strings.ReplaceAll(trimmed, "-", "")
	trimmed = strings.ReplaceAll(trimmed, " ", "")
	return trimmed
}
