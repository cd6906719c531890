package exam

import (
	"errors"
	"fmt"
)

// ErrTerminal is returned when an operation is attempted on a finished exam.
var ErrTerminal = errors.New("exam is finished")

// ErrInvalidTransition is returned for a status change that the lifecycle forbids.
var ErrInvalidTransition = errors.New("invalid status transition")

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusExpired
}

// Valid reports whether the status is one of the known states.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusCompleted, StatusExpired:
		return true
	default:
		return false
	}
}

// rank orders statuses along the one-directional lifecycle.
func (s Status) rank() int {
	switch s {
	case StatusPending:
		return 0
	case StatusActive:
		return 1
	case StatusCompleted, StatusExpired:
		return 2
	default:
		return -1
	}
}

// CanTransition reports whether from -> to is a single legal lifecycle step.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusPending:
		return to == StatusActive
	case StatusActive:
		return to == StatusCompleted || to == StatusExpired
	default:
		return false
	}
}

// CheckTransition returns an error describing why from -> to is not allowed.
func CheckTransition(from, to Status) error {
	if CanTransition(from, to) {
		return nil
	}
	if from.Terminal() {
		return fmt.Errorf("%w: %s is terminal", ErrTerminal, from)
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Advances reports whether adopting a server-reported status moves the
// lifecycle forward. A pending exam may only move to active; anything else
// reported for it is a skipped step the client will not adopt.
func Advances(local, remote Status) bool {
	if !remote.Valid() || local == remote {
		return false
	}
	if local.Terminal() {
		return false
	}
	if local == StatusPending {
		return remote == StatusActive
	}
	return remote.rank() > local.rank()
}
