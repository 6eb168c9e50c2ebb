package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

type Reader interface {
	Read(src io.Reader) (*Table, error)
}

// ReaderForFormat returns the reader for format. sheet only applies to
// Excel input.
func ReaderForFormat(format, sheet string) (Reader, error) {
	switch normalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{Sheet: sheet}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// ReadFile reads path with the reader matching format, inferring the format
// from the file extension when format is empty.
func ReadFile(path, format, sheet string) (*Table, error) {
	sourceFormat, err := InferFormat(path, format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(sourceFormat, sheet)
	if err != nil {
		return nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input file %s: %w", path, err)
	}
	defer file.Close()

	table, err := reader.Read(file)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return table, nil
}

func InferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}
