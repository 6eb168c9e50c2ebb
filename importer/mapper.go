package importer

import (
	"billsheet/internal/timeutil"
	"billsheet/timesheet"
)

const (
	ColumnActivityCode = "Activity #"
	ColumnActivityName = "Activity Name"
	ColumnHours        = "Hours"
	ColumnEmployeeName = "Employee Name"
	ColumnEmployeeID   = "Employee #"
	ColumnProjectCode  = "Project #"
	ColumnProjectName  = "Project Name"
	ColumnDate         = "Date"
)

// RequiredColumns lists the raw columns every input must provide.
var RequiredColumns = []string{
	ColumnActivityCode,
	ColumnActivityName,
	ColumnHours,
	ColumnEmployeeName,
	ColumnEmployeeID,
	ColumnProjectCode,
	ColumnProjectName,
	ColumnDate,
}

// RequireColumns fails with a MissingColumnError naming the first required
// column the table lacks.
func RequireColumns(table Table) error {
	for _, column := range RequiredColumns {
		if !table.HasColumn(column) {
			return &MissingColumnError{Column: column}
		}
	}
	return nil
}

// ResolveSignalColumn returns the first candidate present in the table.
func ResolveSignalColumn(table Table, candidates []string) (string, bool) {
	for _, candidate := range candidates {
		if table.HasColumn(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// Map projects filtered rows into canonical records. Billable is left FALSE
// until the classifier runs; the raw signal is carried on the record.
// signalColumn may be empty when the input has no billable column.
func Map(table Table, signalColumn string) ([]timesheet.Record, error) {
	records := make([]timesheet.Record, 0, len(table.Records))
	for _, row := range table.Records {
		record, err := mapRow(row, signalColumn, table.Date1904)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func mapRow(row Record, signalColumn string, date1904 bool) (timesheet.Record, error) {
	personID := row.Get(ColumnEmployeeID)
	project := row.Get(ColumnActivityName)

	malformed := func(field, value string, err error) *MalformedInputError {
		return &MalformedInputError{
			Row:      row.RowNumber,
			Field:    field,
			Value:    value,
			PersonID: personID,
			Project:  project,
			Err:      err,
		}
	}

	rawDate := row.Get(ColumnDate)
	date, err := timeutil.ParseDate(rawDate, date1904)
	if err != nil {
		return timesheet.Record{}, malformed(ColumnDate, rawDate, err)
	}

	rawHours := row.Get(ColumnHours)
	hours, err := parseHours(rawHours)
	if err != nil {
		return timesheet.Record{}, malformed(ColumnHours, rawHours, err)
	}

	var signal timesheet.Signal
	if signalColumn != "" {
		signal = parseSignal(row.Get(signalColumn))
	}

	clientID := row.Get(ColumnProjectCode)
	return timesheet.Record{
		Date:       date,
		PersonName: row.Get(ColumnEmployeeName),
		PersonID:   personID,
		Billable:   timesheet.BillableFalse,
		Hours:      hours,
		Project:    project,
		ProjectID:  row.Get(ColumnActivityCode) + clientID,
		Client:     row.Get(ColumnProjectName),
		ClientID:   clientID,
		RowNumber:  row.RowNumber,
		Signal:     signal,
	}, nil
}
