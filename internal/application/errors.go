package application

import (
	"errors"
	"fmt"
)

// Sentinel errors for common conditions
var (
	ErrNotFound         = errors.New("not found")
	ErrInvalidPath      = errors.New("invalid path")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnreadableNote   = errors.New("unreadable note")
	ErrNotLoaded        = errors.New("notes have not been loaded")
)

// ValidationError represents a validation failure with details
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// SaveError wraps a failure to serialize or persist the notes tree.
// The in-memory tree is unchanged when it is returned.
type SaveError struct {
	Err error
}

func (e *SaveError) Error() string {
	return fmt.Sprintf("failed to save notes: %v", e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// MoveError represents a move-related failure
type MoveError struct {
	Source string
	Dest   string
	Reason string
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("cannot move %s to %s: %s", e.Source, e.Dest, e.Reason)
}

func (e *MoveError) Is(target error) bool {
	return target == ErrInvalidOperation
}
