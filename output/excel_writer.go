package output

import (
	"archive/zip"
	"bytes"
	"fmt"
	"io"
	"sort"

	"github.com/xuri/excelize/v2"

	"billsheet/timesheet"
)

const DefaultSheet = "Filtered Data"

const dateNumberFormat = "yyyy-mm-dd"

// ExcelWriter writes records to a single sheet workbook. Identical records
// always produce identical bytes.
type ExcelWriter struct {
	Sheet string
}

func (w *ExcelWriter) ContentType() string {
	return ContentTypeXLSX
}

func (w *ExcelWriter) Encode(records []timesheet.Record) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := w.Sheet
	if sheet == "" {
		sheet = DefaultSheet
	}
	if err := file.SetSheetName(file.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("name excel sheet %q: %w", sheet, err)
	}

	for col, header := range timesheet.Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := file.SetCellStr(sheet, cell, header); err != nil {
			return nil, fmt.Errorf("set excel header %s: %w", cell, err)
		}
	}

	for i, record := range records {
		if err := writeRecordRow(file, sheet, i+2, record); err != nil {
			return nil, err
		}
	}

	if len(records) > 0 {
		style, err := file.NewStyle(&excelize.Style{CustomNumFmt: stringPtr(dateNumberFormat)})
		if err != nil {
			return nil, fmt.Errorf("create date style: %w", err)
		}
		last, _ := excelize.CoordinatesToCellName(1, len(records)+1)
		if err := file.SetCellStyle(sheet, "A2", last, style); err != nil {
			return nil, fmt.Errorf("apply date style: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("encode excel workbook: %w", err)
	}
	return canonicalZip(buf.Bytes())
}

func writeRecordRow(file *excelize.File, sheet string, row int, record timesheet.Record) error {
	texts := record.Values()
	for col := range timesheet.Columns {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)

		var err error
		switch col {
		case 0:
			if record.Date.IsZero() {
				continue
			}
			err = file.SetCellValue(sheet, cell, record.Date)
		case 4:
			err = file.SetCellFloat(sheet, cell, record.Hours.InexactFloat64(), -1, 64)
		default:
			if texts[col] == "" {
				continue
			}
			err = file.SetCellStr(sheet, cell, texts[col])
		}
		if err != nil {
			return fmt.Errorf("set excel value %s: %w", cell, err)
		}
	}
	return nil
}

// canonicalZip re-packs an OOXML package with entries in a fixed order and
// zeroed timestamps.
func canonicalZip(content []byte) ([]byte, error) {
	reader, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, fmt.Errorf("read workbook package: %w", err)
	}

	files := append([]*zip.File(nil), reader.File...)
	sort.Slice(files, func(i, j int) bool {
		return entryOrder(files[i].Name) < entryOrder(files[j].Name)
	})

	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, entry := range files {
		target, err := writer.CreateHeader(&zip.FileHeader{Name: entry.Name, Method: zip.Deflate})
		if err != nil {
			return nil, fmt.Errorf("create package entry %s: %w", entry.Name, err)
		}
		source, err := entry.Open()
		if err != nil {
			return nil, fmt.Errorf("open package entry %s: %w", entry.Name, err)
		}
		_, err = io.Copy(target, source)
		source.Close()
		if err != nil {
			return nil, fmt.Errorf("copy package entry %s: %w", entry.Name, err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("finish workbook package: %w", err)
	}
	return buf.Bytes(), nil
}

func entryOrder(name string) string {
	if name == "[Content_Types].xml" {
		return ""
	}
	return "1" + name
}

func stringPtr(value string) *string {
	return &value
}
