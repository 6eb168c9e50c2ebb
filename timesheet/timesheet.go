package timesheet

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Billable is the exported billability flag. It is written as text so the
// sheet keeps the literal TRUE/FALSE values downstream invoicing expects.
type Billable string

const (
	BillableTrue  Billable = "TRUE"
	BillableFalse Billable = "FALSE"
)

func BillableFromBool(value bool) Billable {
	if value {
		return BillableTrue
	}
	return BillableFalse
}

func (b Billable) Bool() bool {
	return b == BillableTrue
}

// Columns is the exported header row, in output order.
var Columns = []string{
	"Date",
	"PersonName",
	"PersonId",
	"Billable",
	"Hours",
	"Project",
	"ProjectId",
	"Client",
	"ClientId",
	"Task",
	"TaskId",
	"Description",
}

// Signal is the raw billable indicator read from the source sheet before
// any rule is applied. Present is false when the sheet had no billable
// column or the cell could not be read as a number.
type Signal struct {
	Value   decimal.Decimal
	Present bool
}

func (s Signal) Positive() bool {
	return s.Present && s.Value.IsPositive()
}

// Record is the normalized timesheet row used across the pipeline and the
// exporters.
type Record struct {
	Date        time.Time       `json:"date"`
	PersonName  string          `json:"personName"`
	PersonID    string          `json:"personId"`
	Billable    Billable        `json:"billable"`
	Hours       decimal.Decimal `json:"hours"`
	Project     string          `json:"project"`
	ProjectID   string          `json:"projectId"`
	Client      string          `json:"client"`
	ClientID    string          `json:"clientId"`
	Task        string          `json:"task"`
	TaskID      string          `json:"taskId"`
	Description string          `json:"description"`

	// Pipeline metadata, never exported.
	RowNumber int    `json:"-"`
	Signal    Signal `json:"-"`
}

func (r Record) Person() Person {
	return Person{ID: r.PersonID, Name: r.PersonName}
}

// Values returns the exported cell texts in Columns order.
func (r Record) Values() []string {
	return []string{
		FormatDate(r.Date),
		r.PersonName,
		r.PersonID,
		string(r.Billable),
		r.Hours.String(),
		r.Project,
		r.ProjectID,
		r.Client,
		r.ClientID,
		r.Task,
		r.TaskID,
		r.Description,
	}
}

type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

const DateLayout = "2006-01-02"

func FormatDate(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(DateLayout)
}

// CanonicalID returns id with surrounding space removed and, for all-digit
// ids, leading zeros dropped, so "0042" and "42" compare equal.
func CanonicalID(id string) string {
	trimmed := strings.TrimSpace(id)
	if trimmed == "" || strings.TrimLeft(trimmed, "0123456789") != "" {
		return trimmed
	}
	stripped := strings.TrimLeft(trimmed, "0")
	if stripped == "" {
		return "0"
	}
	return stripped
}
