package importer

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"billsheet/timesheet"
)

// parseHours reads a decimal hour value. A comma decimal separator is
// accepted, and dots are then treated as thousands separators. A lone comma
// followed by exactly three digits ("1,234") could be either and is rejected.
func parseHours(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty hours")
	}
	if strings.Contains(cleaned, ",") {
		if ambiguousComma(cleaned) {
			return decimal.Zero, fmt.Errorf("parse hours %q: ambiguous comma separator", raw)
		}
		if strings.Contains(cleaned, ".") {
			cleaned = strings.ReplaceAll(cleaned, ".", "")
		}
		cleaned = strings.ReplaceAll(cleaned, ",", ".")
	}

	hours, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse hours %q: %w", raw, err)
	}
	return hours, nil
}

func ambiguousComma(value string) bool {
	if strings.Contains(value, ".") || strings.Count(value, ",") != 1 {
		return false
	}
	_, fraction, _ := strings.Cut(value, ",")
	if len(fraction) != 3 {
		return false
	}
	for _, r := range fraction {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseSignal reads the optional billable cell. Anything that is not a
// number or a spreadsheet boolean yields an absent signal.
func parseSignal(raw string) timesheet.Signal {
	cleaned := strings.TrimSpace(raw)
	switch strings.ToLower(cleaned) {
	case "":
		return timesheet.Signal{}
	case "true":
		return timesheet.Signal{Value: decimal.NewFromInt(1), Present: true}
	case "false":
		return timesheet.Signal{Value: decimal.Zero, Present: true}
	}

	value, err := parseHours(cleaned)
	if err != nil {
		return timesheet.Signal{}
	}
	return timesheet.Signal{Value: value, Present: true}
}
