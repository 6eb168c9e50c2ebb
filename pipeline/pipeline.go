// Package pipeline runs one timesheet through filtering, mapping,
// classification and person selection, and encodes the export.
package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"billsheet/config"
	"billsheet/importer"
	"billsheet/internal/classify"
	"billsheet/internal/selection"
	"billsheet/output"
	"billsheet/timesheet"
)

// Result holds everything an operator needs to decide on the export: the
// classified records of every person and the default person list.
type Result struct {
	RunID        string
	Filter       importer.FilterStats
	SignalColumn string
	Records      []timesheet.Record
	Candidates   []selection.Candidate

	classifier *classify.Classifier
	previewMax int
}

// Process runs the pipeline over an already read table. It keeps no state
// between calls.
func Process(table importer.Table, cfg config.Config) (*Result, error) {
	runID := uuid.NewString()
	logger := slog.With("run_id", runID)

	imported, err := importer.Run(table, cfg)
	if err != nil {
		logger.Warn("pipeline aborted", "error", err)
		return nil, err
	}

	classifier := classify.New(cfg.Rules)
	records := classifier.Classify(imported.Records)
	candidates := selection.Candidates(records, cfg.Selection)

	logger.Info("timesheet processed",
		"rows", imported.Filter.RowsRead,
		"records", len(records),
		"persons", len(candidates),
		"signal_column", imported.SignalColumn,
	)

	return &Result{
		RunID:        runID,
		Filter:       imported.Filter,
		SignalColumn: imported.SignalColumn,
		Records:      records,
		Candidates:   candidates,
		classifier:   classifier,
		previewMax:   cfg.Export.PreviewRows,
	}, nil
}

// ProcessReader reads src in the given format ("excel" or "csv") and runs
// the pipeline over it.
func ProcessReader(src io.Reader, format string, cfg config.Config) (*Result, error) {
	reader, err := importer.ReaderForFormat(format, cfg.Input.Sheet)
	if err != nil {
		return nil, err
	}
	table, err := reader.Read(src)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Process(*table, cfg)
}

func ProcessFile(path, format string, cfg config.Config) (*Result, error) {
	table, err := importer.ReadFile(path, format, cfg.Input.Sheet)
	if err != nil {
		return nil, err
	}
	return Process(*table, cfg)
}

// Defaults returns the person ids selected without operator changes.
func (r *Result) Defaults() selection.Set {
	return selection.Defaults(r.Candidates)
}

// Select applies operator toggles over the default selection.
func (r *Result) Select(overrides map[string]bool) selection.Set {
	return selection.Resolve(r.Candidates, overrides)
}

// Selected returns the records of the selected persons, in input order.
func (r *Result) Selected(selected selection.Set) []timesheet.Record {
	return selection.Filter(r.Records, selected)
}

func (r *Result) Explain(record timesheet.Record) classify.Reason {
	return r.classifier.Explain(record)
}

// Preview returns at most limit selected records for display. A negative
// limit falls back to the configured preview size; zero means no cap.
func (r *Result) Preview(selected selection.Set, limit int) []output.PreviewRow {
	if limit < 0 {
		limit = r.previewMax
	}
	records := r.Selected(selected)
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	rows := make([]output.PreviewRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, output.PreviewRow{Record: record, Reason: string(r.Explain(record))})
	}
	return rows
}

func (r *Result) Summaries(selected selection.Set) []output.PersonSummary {
	return output.BuildPersonSummaries(r.Records, r.Candidates, selected)
}

// Export encodes every selected record. The preview cap never applies.
func Export(result *Result, selected selection.Set, writer output.Writer) ([]byte, error) {
	records := result.Selected(selected)
	content, err := writer.Encode(records)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}

	slog.Info("export encoded",
		"run_id", result.RunID,
		"records", len(records),
		"persons", len(selected),
		"bytes", len(content),
	)
	return content, nil
}
