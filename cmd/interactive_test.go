package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"billsheet/internal/selection"
	"billsheet/timesheet"
)

func TestPersonOptions(t *testing.T) {
	t.Parallel()

	candidates := []selection.Candidate{
		{Person: timesheet.Person{ID: "1008", Name: "Dave"}, Included: true},
		{Person: timesheet.Person{ID: "2112", Name: "Erin"}, Included: false},
	}

	options := personOptions(candidates, selection.NewSet("1008"))
	assert.Len(t, options, 2)
	assert.Equal(t, "Dave (1008)", options[0].Key)
	assert.Equal(t, "1008", options[0].Value)
	assert.Equal(t, "Erin (2112) - excluded by default", options[1].Key)
}
