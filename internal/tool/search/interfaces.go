package search

import (
	"context"
	"time"

	"github.com/Cyclone1070/agentgate/internal/tool/service/executor"
	"github.com/Cyclone1070/agentgate/internal/tool/service/git"
)

// commandExecutor defines the interface for executing search commands.
type commandExecutor interface {
	RunWithTimeout(ctx context.Context, command []string, dir string, env []string, timeout time.Duration) (*executor.Result, error)
}

// ignoreMatcher reports whether a root-relative path is gitignored.
type ignoreMatcher = git.Matcher
