package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crimechain/report-api/models"
)

func TestValidStatus(t *testing.T) {
	for _, s := range ValidStatuses() {
		assert.True(t, ValidStatus(s), s)
	}
	assert.False(t, ValidStatus("Archived"))
	assert.False(t, ValidStatus(""))
	assert.False(t, ValidStatus("verified"))
}

func TestCanTransitionWorkflow(t *testing.T) {
	tests := []struct {
		from, to string
		ok       bool
	}{
		{models.StatusPending, models.StatusUnderInvestigation, true},
		{models.StatusSubmitted, models.StatusUnderInvestigation, true},
		{models.StatusUnderInvestigation, models.StatusVerified, true},
		{models.StatusVerified, models.StatusResolved, true},
		{models.StatusResolved, models.StatusClosed, true},

		// Fake is reachable from any non-terminal state
		{models.StatusPending, models.StatusFake, true},
		{models.StatusUnderInvestigation, models.StatusFake, true},
		{models.StatusVerified, models.StatusFake, true},
		{models.StatusResolved, models.StatusFake, true},

		// no skipping ahead
		{models.StatusPending, models.StatusVerified, false},
		{models.StatusPending, models.StatusResolved, false},
		{models.StatusUnderInvestigation, models.StatusClosed, false},

		// no going back
		{models.StatusVerified, models.StatusUnderInvestigation, false},
		{models.StatusResolved, models.StatusVerified, false},

		// terminal states stay terminal
		{models.StatusClosed, models.StatusFake, false},
		{models.StatusClosed, models.StatusUnderInvestigation, false},
		{models.StatusFake, models.StatusClosed, false},
		{models.StatusFake, models.StatusPending, false},

		// self transitions are not a thing
		{models.StatusPending, models.StatusPending, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, CanTransition(tt.from, tt.to), "%s -> %s", tt.from, tt.to)
	}
}
