package lint

import (
	"context"
	"time"

	"github.com/Cyclone1070/agentgate/internal/tool/service/executor"
)

// commandExecutor defines the interface for executing the linter.
type commandExecutor interface {
	RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*executor.Result, error)
}
