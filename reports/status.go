package reports

import "github.com/crimechain/report-api/models"

// transitions is the allowed workflow graph. Fake is an alternate terminal
// outcome reachable from any non-terminal state.
var transitions = map[string][]string{
	models.StatusSubmitted:          {models.StatusUnderInvestigation, models.StatusFake},
	models.StatusPending:            {models.StatusUnderInvestigation, models.StatusFake},
	models.StatusUnderInvestigation: {models.StatusVerified, models.StatusFake},
	models.StatusVerified:           {models.StatusResolved, models.StatusFake},
	models.StatusResolved:           {models.StatusClosed, models.StatusFake},
	models.StatusClosed:             {},
	models.StatusFake:               {},
}

// ValidStatus reports whether s is a known workflow status
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition reports whether the workflow allows moving from one status
// to the other
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidStatuses lists every known workflow status, for error messages
func ValidStatuses() []string {
	return []string{
		models.StatusSubmitted,
		models.StatusPending,
		models.StatusUnderInvestigation,
		models.StatusVerified,
		models.StatusResolved,
		models.StatusClosed,
		models.StatusFake,
	}
}
