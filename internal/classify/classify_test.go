package classify

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billsheet/config"
	"billsheet/timesheet"
)

func positive() timesheet.Signal {
	return timesheet.Signal{Value: decimal.NewFromInt(1), Present: true}
}

func record(project, activity, clientID string, signal timesheet.Signal) timesheet.Record {
	return timesheet.Record{
		PersonID:  "2001",
		Project:   project,
		ProjectID: activity + clientID,
		ClientID:  clientID,
		Hours:     decimal.NewFromInt(8),
		Signal:    signal,
	}
}

func TestClassify_Layers(t *testing.T) {
	t.Parallel()

	classifier := New(config.Default().Rules)

	tests := []struct {
		name          string
		record        timesheet.Record
		wantBillable  timesheet.Billable
		wantProjectID string
		wantReason    Reason
	}{
		{
			name:          "positive signal is billable",
			record:        record("Consulting", "22", "3001", positive()),
			wantBillable:  timesheet.BillableTrue,
			wantProjectID: "223001",
			wantReason:    ReasonSignal,
		},
		{
			name:          "zero signal is not billable",
			record:        record("Consulting", "22", "3001", timesheet.Signal{Value: decimal.Zero, Present: true}),
			wantBillable:  timesheet.BillableFalse,
			wantProjectID: "223001",
			wantReason:    ReasonNoSignal,
		},
		{
			name:          "absent signal is not billable",
			record:        record("Consulting", "22", "3001", timesheet.Signal{}),
			wantBillable:  timesheet.BillableFalse,
			wantProjectID: "223001",
			wantReason:    ReasonNoSignal,
		},
		{
			name:          "project code remap forces false",
			record:        record("Knowledge Transfer", "22", "3001", positive()),
			wantBillable:  timesheet.BillableFalse,
			wantProjectID: "4400",
			wantReason:    ReasonProjectCode,
		},
		{
			name:          "remap matches substring case-insensitively",
			record:        record("Q1 customer success management review", "22", "3001", positive()),
			wantBillable:  timesheet.BillableFalse,
			wantProjectID: "6800",
			wantReason:    ReasonProjectCode,
		},
		{
			name:          "non-billable client suppresses",
			record:        record("Consulting", "22", "1001", positive()),
			wantBillable:  timesheet.BillableFalse,
			wantProjectID: "221001",
			wantReason:    ReasonNonBillableClient,
		},
		{
			name:          "client ids compare as integers",
			record:        record("Consulting", "22", "004", positive()),
			wantBillable:  timesheet.BillableFalse,
			wantProjectID: "22004",
			wantReason:    ReasonNonBillableClient,
		},
		{
			name:          "non-billable activity suppresses",
			record:        record("Consulting", "44", "3001", positive()),
			wantBillable:  timesheet.BillableFalse,
			wantProjectID: "443001",
			wantReason:    ReasonNonBillableActivity,
		},
		{
			name:          "activity prefix only counts as a whole code",
			record:        record("Consulting", "440", "3001", positive()),
			wantBillable:  timesheet.BillableTrue,
			wantProjectID: "4403001",
			wantReason:    ReasonSignal,
		},
		{
			name:          "non-numeric client keeps the activity digits",
			record:        record("Consulting", "17", "P-9", positive()),
			wantBillable:  timesheet.BillableFalse,
			wantProjectID: "17P-9",
			wantReason:    ReasonNonBillableActivity,
		},
		{
			name:          "empty activity never borrows client digits",
			record:        record("Consulting", "", "44", positive()),
			wantBillable:  timesheet.BillableTrue,
			wantProjectID: "44",
			wantReason:    ReasonSignal,
		},
		{
			name:          "empty activity with non-billable activity client id",
			record:        record("Consulting", "", "41", positive()),
			wantBillable:  timesheet.BillableTrue,
			wantProjectID: "41",
			wantReason:    ReasonSignal,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got := classifier.Classify([]timesheet.Record{tc.record})
			require.Len(t, got, 1)
			assert.Equal(t, tc.wantBillable, got[0].Billable)
			assert.Equal(t, tc.wantProjectID, got[0].ProjectID)
			assert.Equal(t, tc.wantReason, classifier.Explain(tc.record))
		})
	}
}

func TestClassify_LastMatchingProjectCodeWins(t *testing.T) {
	t.Parallel()

	rules := config.Default().Rules
	rules.ProjectCodes = []config.ProjectCode{
		{Match: "transfer", Code: "1111"},
		{Match: "knowledge transfer", Code: "2222"},
	}

	got := New(rules).Classify([]timesheet.Record{record("Knowledge transfer", "22", "3001", positive())})
	assert.Equal(t, "2222", got[0].ProjectID)
}

func TestClassify_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := []timesheet.Record{record("Knowledge transfer", "22", "3001", positive())}
	input[0].Billable = timesheet.BillableTrue

	_ = New(config.Default().Rules).Classify(input)

	assert.Equal(t, "223001", input[0].ProjectID)
	assert.Equal(t, timesheet.BillableTrue, input[0].Billable)
}

func TestClassify_IsIdempotent(t *testing.T) {
	t.Parallel()

	classifier := New(config.Default().Rules)
	input := []timesheet.Record{
		record("Consulting", "22", "3001", positive()),
		record("Sales existing customer", "22", "3001", positive()),
		record("Consulting", "14", "3001", positive()),
	}

	once := classifier.Classify(input)
	twice := classifier.Classify(once)
	assert.Equal(t, once, twice)
	for i := range input {
		assert.Equal(t, classifier.Explain(input[i]), classifier.Explain(once[i]))
	}
}

func TestClassify_SuppressionOverridesEveryLayer(t *testing.T) {
	t.Parallel()

	classifier := New(config.Default().Rules)
	for _, clientID := range []string{"1002", "1001", "4"} {
		got := classifier.Classify([]timesheet.Record{record("Consulting", "22", clientID, positive())})
		assert.Equal(t, timesheet.BillableFalse, got[0].Billable, clientID)
	}
	for _, activity := range []string{"44", "14", "15", "16", "17", "41"} {
		got := classifier.Classify([]timesheet.Record{record("Consulting", activity, "3001", positive())})
		assert.Equal(t, timesheet.BillableFalse, got[0].Billable, activity)
	}
}

func TestActivityDigits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		projectID string
		clientID  string
		remapped  bool
		want      string
	}{
		{projectID: "443001", clientID: "3001", want: "44"},
		{projectID: "44", clientID: "44", want: ""},
		{projectID: "4400", clientID: "3001", remapped: true, want: "4400"},
		{projectID: "41X9", clientID: "9", want: "41"},
		{projectID: "22", clientID: "", want: "22"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, activityDigits(tc.projectID, tc.clientID, tc.remapped), "%s/%s", tc.projectID, tc.clientID)
	}
}
