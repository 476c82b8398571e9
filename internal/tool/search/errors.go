package search

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrTextRequired  = errors.New("text is required")
	ErrMultilineText = errors.New("text must be a single line")
)

// -- Error Types --

// CommandFailedError is returned when grep fails without producing matches.
type CommandFailedError struct {
	ExitCode int
	Stderr   string
	Cause    error
}

func (e *CommandFailedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("search failed: %v", e.Cause)
	}
	return fmt.Sprintf("search failed with exit code %d: %s", e.ExitCode, e.Stderr)
}
func (e *CommandFailedError) Unwrap() error { return e.Cause }
