package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("node not found")
	ErrNotFolder            = errors.New("node is not a folder")
	ErrNotNote              = errors.New("node is not a note")
	ErrAttached             = errors.New("node is already attached")
	ErrNotChild             = errors.New("node is not a child of parent")
	ErrEmptyLabel           = errors.New("label must not be empty")
	ErrSlashInLabel         = errors.New("label must not contain '/'")
	ErrConfirmationRequired = errors.New("deleting a non-empty folder requires confirmation")
)

// CodecError is returned when a payload cannot be decoded
type CodecError struct {
	Stage string
	Err   error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("unreadable note content (%s): %v", e.Stage, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// MalformedTreeError reports a settings value that does not have the
// nested array-of-single-key-objects shape.
type MalformedTreeError struct {
	Path   string
	Reason string
}

func (e *MalformedTreeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("malformed notes tree: %s", e.Reason)
	}
	return fmt.Sprintf("malformed notes tree at %s: %s", e.Path, e.Reason)
}

// InvalidMoveError is returned when a reparent would create a cycle or
// target something that cannot hold children.
type InvalidMoveError struct {
	Node   string
	Target string
	Reason string
}

func (e *InvalidMoveError) Error() string {
	return fmt.Sprintf("cannot move %q into %q: %s", e.Node, e.Target, e.Reason)
}
