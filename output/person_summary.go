package output

import (
	"fmt"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"billsheet/internal/selection"
	"billsheet/timesheet"
)

// PersonSummary totals the classified hours of one person.
type PersonSummary struct {
	ID               string          `json:"id" csv:"PersonId"`
	Name             string          `json:"name" csv:"PersonName"`
	RecordCount      int             `json:"records" csv:"Records"`
	Hours            decimal.Decimal `json:"hours" csv:"Hours"`
	BillableHours    decimal.Decimal `json:"billableHours" csv:"BillableHours"`
	NonBillableHours decimal.Decimal `json:"nonBillableHours" csv:"NonBillableHours"`
	Default          bool            `json:"default" csv:"Default"`
	Selected         bool            `json:"selected" csv:"Selected"`
}

// BuildPersonSummaries returns one summary per candidate, in candidate
// order. selected marks the persons that will be exported.
func BuildPersonSummaries(records []timesheet.Record, candidates []selection.Candidate, selected selection.Set) []PersonSummary {
	index := make(map[timesheet.Person]int, len(candidates))
	summaries := make([]PersonSummary, 0, len(candidates))
	for i, candidate := range candidates {
		index[candidate.Person] = i
		summaries = append(summaries, PersonSummary{
			ID:       candidate.ID,
			Name:     candidate.Name,
			Default:  candidate.Included,
			Selected: selected.Contains(candidate.ID),
		})
	}

	for _, record := range records {
		i, ok := index[record.Person()]
		if !ok {
			continue
		}
		summary := &summaries[i]
		summary.RecordCount++
		summary.Hours = summary.Hours.Add(record.Hours)
		if record.Billable.Bool() {
			summary.BillableHours = summary.BillableHours.Add(record.Hours)
		} else {
			summary.NonBillableHours = summary.NonBillableHours.Add(record.Hours)
		}
	}

	return summaries
}

func RenderPersonSummaries(summaries []PersonSummary) string {
	headers := []string{"PersonId", "PersonName", "Records", "Hours", "Billable", "NonBillable", "Default", "Selected"}
	rows := make([][]string, 0, len(summaries))
	for _, summary := range summaries {
		rows = append(rows, []string{
			summary.ID,
			summary.Name,
			fmt.Sprintf("%d", summary.RecordCount),
			summary.Hours.StringFixed(2),
			summary.BillableHours.StringFixed(2),
			summary.NonBillableHours.StringFixed(2),
			checkmark(summary.Default),
			checkmark(summary.Selected),
		})
	}
	return RenderTable(headers, rows)
}

func checkmark(value bool) string {
	if value {
		return "x"
	}
	return ""
}

func WritePersonSummaries(path, format string, summaries []PersonSummary) error {
	var (
		content []byte
		err     error
	)
	switch normalizeFormat(format) {
	case "csv":
		content, err = encodePersonSummariesCSV(summaries)
	case "excel", "xlsx":
		content, err = encodePersonSummariesExcel(summaries)
	default:
		return fmt.Errorf("unsupported output format for person summaries: %s", format)
	}
	if err != nil {
		return err
	}
	return WriteFile(path, content)
}

func encodePersonSummariesCSV(summaries []PersonSummary) ([]byte, error) {
	content, err := gocsv.MarshalBytes(&summaries)
	if err != nil {
		return nil, fmt.Errorf("encode person summaries csv: %w", err)
	}
	return content, nil
}

func encodePersonSummariesExcel(summaries []PersonSummary) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	headers := []string{"PersonId", "PersonName", "Records", "Hours", "BillableHours", "NonBillableHours", "Default", "Selected"}

	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellValue(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, summary := range summaries {
		row := i + 2
		values := []any{
			summary.ID,
			summary.Name,
			summary.RecordCount,
			summary.Hours.InexactFloat64(),
			summary.BillableHours.InexactFloat64(),
			summary.NonBillableHours.InexactFloat64(),
			summary.Default,
			summary.Selected,
		}

		for col, value := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				return nil, fmt.Errorf("set excel value %s: %w", cell, err)
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("encode person summaries workbook: %w", err)
	}
	return canonicalZip(buf.Bytes())
}
