package shell

import (
	"fmt"
	"time"

	"github.com/Cyclone1070/agentgate/internal/tool/errutil"
)

// TimeoutError is returned when a shell command exceeds its timeout.
type TimeoutError struct {
	Command  string
	Duration time.Duration
	Stdout   string
}

func (e *TimeoutError) Error() string {
	if e.Stdout == "" {
		return fmt.Sprintf("command %q timed out after %v", e.Command, e.Duration)
	}
	return fmt.Sprintf("command %q timed out after %v; partial output:\n%s", e.Command, e.Duration, e.Stdout)
}

func (e *TimeoutError) Timeout() bool { return true }

func (e *TimeoutError) Unwrap() error { return errutil.ErrProcessTimeout }

// RejectedError is returned when the command policy refuses a binary.
type RejectedError struct {
	Binary string
	Reason string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("command %q rejected: %s", e.Binary, e.Reason)
}

func (e *RejectedError) Unwrap() error { return errutil.ErrCommandRejected }

// ExecutionError is returned when the command could not be started.
type ExecutionError struct {
	Command string
	Cause   error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("failed to run %q: %v", e.Command, e.Cause)
}

func (e *ExecutionError) Unwrap() error { return e.Cause }
