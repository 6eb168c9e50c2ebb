package importer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var rawHeader = []string{
	"Activity #", "Activity Name", "Hours", "Employee Name",
	"Employee #", "Project #", "Project Name", "Date", "Billable",
}

func buildWorkbook(t *testing.T, sheet string, rows [][]any) []byte {
	t.Helper()

	file := excelize.NewFile()
	defer file.Close()

	if sheet != "" && sheet != "Sheet1" {
		require.NoError(t, file.SetSheetName("Sheet1", sheet))
	} else {
		sheet = "Sheet1"
	}

	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			require.NoError(t, err)
			require.NoError(t, file.SetCellValue(sheet, cell, value))
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))
	return buf.Bytes()
}

func tableFromRows(header []string, rows ...[]string) Table {
	normalized := normalizeHeaders(header)
	records := make([]Record, 0, len(rows))
	for i, row := range rows {
		records = append(records, newRecord(i+2, normalized, row))
	}
	return Table{Columns: header, Records: records}
}
