package bookings

import (
	"testing"

	"cineops/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		from   Status
		action Action
		to     Status
		noop   bool
		kind   apperror.Kind // empty when the move is allowed
	}{
		{StatusActive, ActionConfirm, StatusCompleted, false, ""},
		{StatusActive, ActionCancel, StatusCancelled, false, ""},
		{StatusCompleted, ActionConfirm, StatusCompleted, true, ""},
		{StatusCompleted, ActionCancel, StatusCompleted, false, apperror.KindInvalidTransition},
		{StatusCancelled, ActionCancel, StatusCancelled, true, ""},
		{StatusCancelled, ActionConfirm, StatusCancelled, false, apperror.KindInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"/"+string(tt.action), func(t *testing.T) {
			to, noop, err := Transition(tt.from, tt.action)

			if tt.kind != "" {
				assert.Equal(t, tt.kind, apperror.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.to, to)
			assert.Equal(t, tt.noop, noop)
		})
	}
}

func TestTransitionUnknownStatus(t *testing.T) {
	_, _, err := Transition(Status("pending"), ActionConfirm)

	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
}

func TestInvalidTransitionMessage(t *testing.T) {
	_, _, err := Transition(StatusCompleted, ActionCancel)

	assert.EqualError(t, err, "cannot cancel a booking that is completed")
}

func TestHoldsSeats(t *testing.T) {
	assert.True(t, StatusActive.HoldsSeats())
	assert.True(t, StatusCompleted.HoldsSeats())
	assert.False(t, StatusCancelled.HoldsSeats())
}
