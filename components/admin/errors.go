package admin

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedRows marks a procedure response whose rows do not match the expected shape.
	ErrMalformedRows = errors.New("admin: malformed rows")
	// ErrChatNotConfigured is returned when the chat webhook URL is missing or invalid.
	ErrChatNotConfigured = errors.New("admin: chat webhook not configured")
	// ErrUnknownPage is returned for paths outside the route map.
	ErrUnknownPage = errors.New("admin: unknown page")
	// ErrUnknownProcedure is returned for names outside the procedure catalogue.
	ErrUnknownProcedure = errors.New("admin: unknown procedure")
	// ErrSessionNotFound is returned by session stores when no id is stored.
	ErrSessionNotFound = errors.New("admin: chat session not found")
	// ErrEmptyChatMessage is returned when a relayed message is blank.
	ErrEmptyChatMessage = errors.New("admin: chat message is required")
)

// MalformedResponseError carries the procedure and the validation failure.
type MalformedResponseError struct {
	Procedure string
	Err       error
}

func (e *MalformedResponseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("admin: malformed rows from %s", e.Procedure)
	}
	return fmt.Sprintf("admin: malformed rows from %s: %v", e.Procedure, e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// Is reports ErrMalformedRows so callers can branch with errors.Is.
func (e *MalformedResponseError) Is(target error) bool { return target == ErrMalformedRows }

// UnknownProcedureError names a procedure missing from the catalogue.
type UnknownProcedureError struct {
	Name string
}

func (e *UnknownProcedureError) Error() string {
	return fmt.Sprintf("admin: unknown procedure %q", e.Name)
}

func (e *UnknownProcedureError) Is(target error) bool { return target == ErrUnknownProcedure }
