package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrConflict     = errors.New("conflict")
)

// ConflictError lists the ACTIVE sessions a new or approved session would
// overlap with.
type ConflictError struct {
	SessionID   string
	Room        string
	Day         string
	ConflictIDs []string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("session %s overlaps active sessions %s in %s on %s (use --force to allow)",
		e.SessionID, strings.Join(e.ConflictIDs, ", "), e.Room, e.Day)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }

func invalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}
