package importer

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// ExcelReader reads one worksheet of an xlsx workbook. Cells are read raw,
// so date cells arrive as serial numbers rather than locale formatted text.
type ExcelReader struct {
	Sheet string
}

func (r *ExcelReader) Read(src io.Reader) (*Table, error) {
	file, err := excelize.OpenReader(src)
	if err != nil {
		return nil, fmt.Errorf("open excel workbook: %w", err)
	}
	defer file.Close()

	sheetName := r.Sheet
	if sheetName == "" {
		sheetName = file.GetSheetName(0)
	}
	if sheetName == "" {
		return nil, fmt.Errorf("excel workbook has no sheets")
	}
	if index, err := file.GetSheetIndex(sheetName); err != nil || index < 0 {
		return nil, fmt.Errorf("excel workbook has no sheet %q", sheetName)
	}

	rows, err := file.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %s is empty", sheetName)
	}

	date1904 := false
	if props, err := file.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}

	headers := rows[0]
	normalizedHeaders := normalizeHeaders(headers)

	records := make([]Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		records = append(records, newRecord(i+2, normalizedHeaders, row))
	}

	return &Table{Columns: headers, Records: records, Date1904: date1904}, nil
}
