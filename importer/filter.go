package importer

import (
	"strings"

	"billsheet/config"
)

// FilterStats counts dropped rows per reason.
type FilterStats struct {
	RowsRead     int
	RowsKept     int
	InvalidHours int
	ZeroHours    int
	Excluded     int
}

type exclusion struct {
	column        string
	needle        string
	caseSensitive bool
}

func (e exclusion) matches(record Record) bool {
	value := record.Get(e.column)
	if value == "" {
		return false
	}
	if e.caseSensitive {
		return strings.Contains(value, e.needle)
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(e.needle))
}

func compileExclusions(rules []config.ExclusionRule) []exclusion {
	compiled := make([]exclusion, 0, len(rules))
	for _, rule := range rules {
		column := ColumnActivityName
		if rule.Field == config.FieldActivityCode {
			column = ColumnActivityCode
		}
		compiled = append(compiled, exclusion{
			column:        column,
			needle:        rule.Contains,
			caseSensitive: rule.CaseSensitive,
		})
	}
	return compiled
}

// Filter keeps rows with a numeric, non-zero Hours value that match none of
// the exclusion rules. Row order is preserved.
func Filter(table Table, rules []config.ExclusionRule) (Table, FilterStats) {
	exclusions := compileExclusions(rules)
	stats := FilterStats{RowsRead: len(table.Records)}

	kept := make([]Record, 0, len(table.Records))
	for _, record := range table.Records {
		hours, err := parseHours(record.Get(ColumnHours))
		if err != nil {
			stats.InvalidHours++
			continue
		}
		if hours.IsZero() {
			stats.ZeroHours++
			continue
		}
		if excluded(record, exclusions) {
			stats.Excluded++
			continue
		}
		kept = append(kept, record)
	}

	stats.RowsKept = len(kept)
	return Table{Columns: table.Columns, Records: kept, Date1904: table.Date1904}, stats
}

func excluded(record Record, exclusions []exclusion) bool {
	for _, rule := range exclusions {
		if rule.matches(record) {
			return true
		}
	}
	return false
}
