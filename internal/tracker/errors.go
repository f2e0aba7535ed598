package tracker

import (
	"errors"
	"fmt"
)

// ErrNotInitialized is returned by operations that require a baseline
// snapshot before one has been created.
var ErrNotInitialized = errors.New("not initialized")

// ErrStateNotFound matches any StateNotFoundError via errors.Is.
var ErrStateNotFound = errors.New("state not found")

// StateNotFoundError reports a state number with no record, including
// states removed by cleanup.
type StateNotFoundError struct {
	StateNumber int
}

func (e *StateNotFoundError) Error() string {
	return fmt.Sprintf("state %d not found", e.StateNumber)
}

func (e *StateNotFoundError) Is(target error) bool {
	return target == ErrStateNotFound
}
