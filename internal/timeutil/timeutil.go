package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// maxExcelSerial is 9999-12-31 in the 1900 date system.
const maxExcelSerial = 2958465

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2.1.2006",
	"2.1.2006 15:04",
	"2006/01/02",
	"2006/1/2",
}

// DateOnly drops the clock part and returns midnight UTC of the same
// calendar day.
func DateOnly(value time.Time) time.Time {
	return time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)
}

func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// FromExcelSerial converts a spreadsheet serial day number to a date.
func FromExcelSerial(serial float64, date1904 bool) (time.Time, error) {
	if serial < 1 || serial > maxExcelSerial {
		return time.Time{}, fmt.Errorf("excel serial %v out of range", serial)
	}
	value, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return time.Time{}, fmt.Errorf("convert excel serial %v: %w", serial, err)
	}
	return DateOnly(value), nil
}

// ParseDate accepts spreadsheet serial numbers, ISO dates and timestamps,
// dotted day-first dates and slash dates. Slash dates with the year last are
// only accepted when day and month cannot be confused.
func ParseDate(raw string, date1904 bool) (time.Time, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}

	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		return FromExcelSerial(serial, date1904)
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, value); err == nil {
			return DateOnly(parsed), nil
		}
	}

	if parsed, ok := parseSlashDate(value); ok {
		return parsed, nil
	}

	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}

func parseSlashDate(value string) (time.Time, bool) {
	datePart, _, _ := strings.Cut(value, " ")
	parts := strings.Split(datePart, "/")
	if len(parts) != 3 || len(parts[2]) != 4 {
		return time.Time{}, false
	}

	first, err1 := strconv.Atoi(parts[0])
	second, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}

	var day, month int
	switch {
	case first == second:
		day, month = first, second
	case first > 12 && second <= 12:
		day, month = first, second
	case second > 12 && first <= 12:
		day, month = second, first
	default:
		return time.Time{}, false
	}

	parsed := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if parsed.Day() != day || int(parsed.Month()) != month {
		return time.Time{}, false
	}
	return parsed, true
}
