package timesheet

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRecordValues_FollowColumnOrder(t *testing.T) {
	t.Parallel()

	record := Record{
		Date:       time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC),
		PersonName: "Alice",
		PersonID:   "2001",
		Billable:   BillableTrue,
		Hours:      decimal.RequireFromString("7.5"),
		Project:    "Consulting",
		ProjectID:  "223001",
		Client:     "Acme",
		ClientID:   "3001",
	}

	values := record.Values()
	assert.Len(t, values, len(Columns))
	assert.Equal(t, []string{"2024-01-05", "Alice", "2001", "TRUE", "7.5", "Consulting", "223001", "Acme", "3001", "", "", ""}, values)
}

func TestCanonicalID(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"42":    "42",
		"0042":  "42",
		" 7 ":   "7",
		"000":   "0",
		"":      "",
		"A-007": "A-007",
		"12.0":  "12.0",
	}
	for input, want := range tests {
		assert.Equal(t, want, CanonicalID(input), input)
	}
}

func TestBillable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, BillableTrue, BillableFromBool(true))
	assert.Equal(t, BillableFalse, BillableFromBool(false))
	assert.True(t, BillableTrue.Bool())
	assert.False(t, BillableFalse.Bool())
}

func TestSignalPositive(t *testing.T) {
	t.Parallel()

	assert.False(t, Signal{}.Positive())
	assert.False(t, Signal{Value: decimal.NewFromInt(1)}.Positive(), "absent signal is never positive")
	assert.True(t, Signal{Value: decimal.NewFromInt(1), Present: true}.Positive())
	assert.False(t, Signal{Value: decimal.Zero, Present: true}.Positive())
}
