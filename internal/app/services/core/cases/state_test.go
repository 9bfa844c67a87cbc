package cases

import (
	"patholab-service/internal/pkg/constvars"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStateTransition(t *testing.T) {
	t.Run("Forward Steps Are Allowed", func(t *testing.T) {
		assert.NoError(t, validateStateTransition(constvars.CaseStateInProcess, constvars.CaseStateToSign))
		assert.NoError(t, validateStateTransition(constvars.CaseStateToSign, constvars.CaseStateToDeliver))
		assert.NoError(t, validateStateTransition(constvars.CaseStateToDeliver, constvars.CaseStateCompleted))
	})

	t.Run("Skipping A State Is Rejected", func(t *testing.T) {
		err := validateStateTransition(constvars.CaseStateInProcess, constvars.CaseStateToDeliver)
		assert.Error(t, err)

		err = validateStateTransition(constvars.CaseStateInProcess, constvars.CaseStateCompleted)
		assert.Error(t, err)
	})

	t.Run("Backward Moves Are Rejected", func(t *testing.T) {
		err := validateStateTransition(constvars.CaseStateToSign, constvars.CaseStateInProcess)
		assert.Error(t, err)

		err = validateStateTransition(constvars.CaseStateCompleted, constvars.CaseStateToDeliver)
		assert.Error(t, err)
	})

	t.Run("Self Transition Is Rejected", func(t *testing.T) {
		err := validateStateTransition(constvars.CaseStateInProcess, constvars.CaseStateInProcess)
		assert.Error(t, err)
	})

	t.Run("Unknown States Are Rejected", func(t *testing.T) {
		assert.Error(t, validateStateTransition("Archived", constvars.CaseStateToSign))
		assert.Error(t, validateStateTransition(constvars.CaseStateInProcess, "Archived"))
	})

	t.Run("Completed Is Terminal", func(t *testing.T) {
		for _, to := range []string{
			constvars.CaseStateInProcess,
			constvars.CaseStateToSign,
			constvars.CaseStateToDeliver,
			constvars.CaseStateCompleted,
		} {
			assert.Error(t, validateStateTransition(constvars.CaseStateCompleted, to))
		}
	})
}
