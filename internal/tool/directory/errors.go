package directory

import (
	"errors"
	"fmt"
)

// -- Sentinels --

var (
	ErrNotADirectory = errors.New("not a directory")
)

// -- Error Types --

// ListError wraps failures while walking the project tree.
type ListError struct {
	Path  string
	Cause error
}

func (e *ListError) Error() string {
	return fmt.Sprintf("failed to list %s: %v", e.Path, e.Cause)
}
func (e *ListError) Unwrap() error { return e.Cause }
