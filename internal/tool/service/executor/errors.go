package executor

import (
	"fmt"
	"time"

	"github.com/Cyclone1070/agentgate/internal/tool/errutil"
)

// ErrTimeout is returned when a command exceeds its timeout.
var ErrTimeout = errutil.ErrProcessTimeout

// TimeoutError reports the limit a command ran into.
type TimeoutError struct {
	Cmd     string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("command %s timed out after %s", e.Cmd, e.Timeout)
}
func (e *TimeoutError) Unwrap() error { return ErrTimeout }

// CommandError represents command start failures.
type CommandError struct {
	Cmd   string
	Cause error
	Stage string // "start", "execution"
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("command %s failed at %s: %v", e.Cmd, e.Stage, e.Cause)
}
func (e *CommandError) Unwrap() error { return e.Cause }
