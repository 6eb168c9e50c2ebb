package classify

import (
	"strings"

	"billsheet/config"
	"billsheet/timesheet"
)

// Reason names the rule layer that decided a record's final Billable value.
type Reason string

const (
	ReasonSignal              Reason = "signal"
	ReasonNoSignal            Reason = "no_signal"
	ReasonProjectCode         Reason = "project_code"
	ReasonNonBillableClient   Reason = "non_billable_client"
	ReasonNonBillableActivity Reason = "non_billable_activity"
)

// Decision is the outcome of classifying one record.
type Decision struct {
	Billable  timesheet.Billable
	ProjectID string
	Remapped  bool
	Reason    Reason
}

type projectCode struct {
	match string
	code  string
}

// Classifier applies the billability rule layers. It holds no mutable
// state and is safe for concurrent use.
type Classifier struct {
	codes      []projectCode
	clients    map[string]struct{}
	activities map[string]struct{}
}

func New(rules config.Rules) *Classifier {
	codes := make([]projectCode, 0, len(rules.ProjectCodes))
	for _, code := range rules.ProjectCodes {
		codes = append(codes, projectCode{
			match: strings.ToLower(code.Match),
			code:  code.Code,
		})
	}

	return &Classifier{
		codes:      codes,
		clients:    idSet(rules.NonBillableClients),
		activities: idSet(rules.NonBillableActivities),
	}
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[timesheet.CanonicalID(id)] = struct{}{}
	}
	return set
}

// Classify returns classified copies of records in the same order.
func (c *Classifier) Classify(records []timesheet.Record) []timesheet.Record {
	classified := make([]timesheet.Record, len(records))
	for i, record := range records {
		decision := c.Decide(record)
		record.Billable = decision.Billable
		record.ProjectID = decision.ProjectID
		classified[i] = record
	}
	return classified
}

// Explain reports which layer decided the record. It gives the same answer
// for a record before and after Classify.
func (c *Classifier) Explain(record timesheet.Record) Reason {
	return c.Decide(record).Reason
}

// Decide runs the four layers in order: signal, project code remap,
// remapped override, then client and activity suppression, which always
// has the last word.
func (c *Classifier) Decide(record timesheet.Record) Decision {
	decision := Decision{
		Billable:  timesheet.BillableFalse,
		ProjectID: record.ProjectID,
		Reason:    ReasonNoSignal,
	}
	if record.Signal.Positive() {
		decision.Billable = timesheet.BillableTrue
		decision.Reason = ReasonSignal
	}

	if code, ok := c.projectCode(record.Project); ok {
		decision.ProjectID = code
		decision.Remapped = true
		decision.Billable = timesheet.BillableFalse
		decision.Reason = ReasonProjectCode
	}

	if _, ok := c.clients[timesheet.CanonicalID(record.ClientID)]; ok {
		decision.Billable = timesheet.BillableFalse
		decision.Reason = ReasonNonBillableClient
		return decision
	}

	activity := activityDigits(decision.ProjectID, record.ClientID, decision.Remapped)
	if _, ok := c.activities[timesheet.CanonicalID(activity)]; ok && activity != "" {
		decision.Billable = timesheet.BillableFalse
		decision.Reason = ReasonNonBillableActivity
	}

	return decision
}

// projectCode returns the code of the last table entry whose match text
// occurs in project.
func (c *Classifier) projectCode(project string) (string, bool) {
	if project == "" {
		return "", false
	}
	lower := strings.ToLower(project)

	code, found := "", false
	for _, candidate := range c.codes {
		if strings.Contains(lower, candidate.match) {
			code, found = candidate.code, true
		}
	}
	return code, found
}

// activityDigits extracts the leading digit run of the Activity # part of a
// project id. Mapped ids carry no client suffix and are used whole. An empty
// Activity # yields no digits, even when the client id alone is numeric.
func activityDigits(projectID, clientID string, remapped bool) string {
	activity := projectID
	if !remapped && clientID != "" {
		activity = strings.TrimSuffix(projectID, clientID)
	}

	end := 0
	for end < len(activity) && activity[end] >= '0' && activity[end] <= '9' {
		end++
	}
	return activity[:end]
}
