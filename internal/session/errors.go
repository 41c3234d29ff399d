package session

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when the game does not exist or has no
	// pending answer.
	ErrNotFound = errors.New("not found")

	// ErrInvalidState is returned when submitting to a game that has ended.
	ErrInvalidState = errors.New("invalid state")

	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")
)

// ValidationError reports malformed input to a session operation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// StateError reports an operation that is not allowed in the game's phase.
type StateError struct {
	GameID string
	Phase  Phase
	Op     string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("game %s is %s: cannot %s", e.GameID, e.Phase, e.Op)
}

func (e *StateError) Unwrap() error { return ErrInvalidState }
