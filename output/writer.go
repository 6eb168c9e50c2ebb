package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"billsheet/timesheet"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypeCSV  = "text/csv; charset=utf-8"
)

// Writer encodes a complete export in memory. Nothing reaches a file or a
// response until encoding succeeded.
type Writer interface {
	Encode(records []timesheet.Record) ([]byte, error)
	ContentType() string
}

func WriterForFormat(format, sheet string) (Writer, error) {
	switch normalizeFormat(format) {
	case "csv":
		return &CSVWriter{}, nil
	case "", "excel", "xlsx":
		return &ExcelWriter{Sheet: sheet}, nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// FormatForPath infers the output format from the file extension.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return "csv"
	}
	return "excel"
}

// Write encodes records and replaces path with the result. The file is
// written next to path first and renamed, so a failed run leaves any
// previous export untouched.
func Write(path string, writer Writer, records []timesheet.Record) error {
	content, err := writer.Encode(records)
	if err != nil {
		return err
	}
	return WriteFile(path, content)
}

func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp output in %s: %w", dir, err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return fmt.Errorf("write output %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close output %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod output %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("replace output %s: %w", path, err)
	}
	return nil
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}
