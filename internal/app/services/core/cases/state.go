package cases

import (
	"patholab-service/internal/pkg/constvars"
	"patholab-service/internal/pkg/exceptions"
)

// caseStateOrder ranks the lifecycle states. Transitions only move forward,
// one step at a time; there is no reopen path.
var caseStateOrder = map[string]int{
	constvars.CaseStateInProcess: 0,
	constvars.CaseStateToSign:    1,
	constvars.CaseStateToDeliver: 2,
	constvars.CaseStateCompleted: 3,
}

func validateStateTransition(from, to string) error {
	fromRank, fromOK := caseStateOrder[from]
	toRank, toOK := caseStateOrder[to]
	if !fromOK || !toOK {
		return exceptions.ErrInvalidStateTransition(from, to)
	}
	if toRank != fromRank+1 {
		return exceptions.ErrInvalidStateTransition(from, to)
	}
	return nil
}
