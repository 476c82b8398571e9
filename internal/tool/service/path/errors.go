package path

import (
	"errors"
	"fmt"

	"github.com/Cyclone1070/agentgate/internal/tool/errutil"
)

// RootError is returned when the project root is invalid.
type RootError struct {
	Root  string
	Cause error
}

func (e *RootError) Error() string {
	return fmt.Sprintf("invalid project root %s: %v", e.Root, e.Cause)
}
func (e *RootError) Unwrap() error { return e.Cause }

// OutsideRootError is returned when a path resolves outside the project root.
type OutsideRootError struct {
	Path string
}

func (e *OutsideRootError) Error() string {
	return fmt.Sprintf("path %q is outside the project root", e.Path)
}
func (e *OutsideRootError) Unwrap() error { return errutil.ErrOutsideWorkspace }

// -- Sentinels --

var (
	ErrRootNotSet    = errors.New("project root not set")
	ErrNotADirectory = errors.New("not a directory")
)
