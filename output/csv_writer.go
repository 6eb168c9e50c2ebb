package output

import (
	"fmt"

	"github.com/gocarina/gocsv"

	"billsheet/timesheet"
)

type CSVWriter struct{}

type csvRow struct {
	Date        string `csv:"Date"`
	PersonName  string `csv:"PersonName"`
	PersonID    string `csv:"PersonId"`
	Billable    string `csv:"Billable"`
	Hours       string `csv:"Hours"`
	Project     string `csv:"Project"`
	ProjectID   string `csv:"ProjectId"`
	Client      string `csv:"Client"`
	ClientID    string `csv:"ClientId"`
	Task        string `csv:"Task"`
	TaskID      string `csv:"TaskId"`
	Description string `csv:"Description"`
}

func (w *CSVWriter) ContentType() string {
	return ContentTypeCSV
}

func (w *CSVWriter) Encode(records []timesheet.Record) ([]byte, error) {
	rows := make([]*csvRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, &csvRow{
			Date:        timesheet.FormatDate(record.Date),
			PersonName:  record.PersonName,
			PersonID:    record.PersonID,
			Billable:    string(record.Billable),
			Hours:       record.Hours.String(),
			Project:     record.Project,
			ProjectID:   record.ProjectID,
			Client:      record.Client,
			ClientID:    record.ClientID,
			Task:        record.Task,
			TaskID:      record.TaskID,
			Description: record.Description,
		})
	}

	content, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return content, nil
}
