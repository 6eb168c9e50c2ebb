package importer

import (
	"fmt"
	"log/slog"

	"billsheet/config"
	"billsheet/timesheet"
)

type Result struct {
	Filter       FilterStats
	SignalColumn string
	Records      []timesheet.Record
}

// Run validates the header, filters rows and maps the survivors. Any error
// aborts the run; no partial result is returned.
func Run(table Table, cfg config.Config) (*Result, error) {
	if err := RequireColumns(table); err != nil {
		return nil, err
	}

	filtered, stats := Filter(table, cfg.Rules.ActivityExclusions)
	slog.Debug("rows filtered",
		"read", stats.RowsRead,
		"kept", stats.RowsKept,
		"invalid_hours", stats.InvalidHours,
		"zero_hours", stats.ZeroHours,
		"excluded", stats.Excluded,
	)

	signalColumn, ok := ResolveSignalColumn(filtered, cfg.Input.BillableColumns)
	if !ok {
		slog.Debug("no billable column found, every record starts non-billable",
			"candidates", cfg.Input.BillableColumns)
	}

	records, err := Map(filtered, signalColumn)
	if err != nil {
		return nil, fmt.Errorf("map records: %w", err)
	}

	return &Result{Filter: stats, SignalColumn: signalColumn, Records: records}, nil
}
