package bookings

import (
	"cineops/internal/shared/apperror"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

func (s Status) String() string {
	return string(s)
}

// HoldsSeats reports whether bookings in this status count against capacity.
func (s Status) HoldsSeats() bool {
	return s == StatusActive || s == StatusCompleted
}

type Action string

const (
	ActionConfirm Action = "confirm"
	ActionCancel  Action = "cancel"
)

// Transition applies action to a booking in status from. Repeating the
// action that produced the current status is a no-op, and any other move
// out of a terminal status is rejected.
func Transition(from Status, action Action) (to Status, noop bool, err error) {
	switch from {
	case StatusActive:
		switch action {
		case ActionConfirm:
			return StatusCompleted, false, nil
		case ActionCancel:
			return StatusCancelled, false, nil
		}
	case StatusCompleted:
		switch action {
		case ActionConfirm:
			return StatusCompleted, true, nil
		case ActionCancel:
			return from, false, apperror.InvalidTransition(string(from), string(action))
		}
	case StatusCancelled:
		switch action {
		case ActionCancel:
			return StatusCancelled, true, nil
		case ActionConfirm:
			return from, false, apperror.InvalidTransition(string(from), string(action))
		}
	}
	return from, false, apperror.InvalidInput("unknown booking status %q or action %q", from, action)
}
