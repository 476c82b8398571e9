package shell

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/tool/service/executor"
)

// ShellTool executes commands with the project root as working directory.
type ShellTool struct {
	commandExecutor commandExecutor
	config          *config.Config
	root            string
	policy          Policy
	environ         func() []string
}

// NewShellTool creates a new ShellTool with injected dependencies.
func NewShellTool(commandExecutor commandExecutor, cfg *config.Config, root string) *ShellTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if root == "" {
		panic("root is required")
	}
	return &ShellTool{
		commandExecutor: commandExecutor,
		config:          cfg,
		root:            root,
		policy: Policy{
			Allow: cfg.Tools.CommandAllowlist,
			Deny:  cfg.Tools.CommandDenylist,
		},
		environ: os.Environ,
	}
}

// Run executes req.Command with sh -c. The timeout is always enforced:
// zero or negative values use the configured default and larger values are
// clamped to the configured maximum.
func (t *ShellTool) Run(ctx context.Context, req *ShellRequest) (*ShellResponse, error) {
	if err := t.policy.Evaluate(req.Command); err != nil {
		return nil, err
	}

	timeout := t.timeout(req.Timeout)
	env := executor.ScrubEnv(t.environ())

	result, execErr := t.commandExecutor.RunWithTimeout(ctx, []string{"sh", "-c", req.Command}, t.root, env, timeout)
	if execErr != nil {
		if errors.Is(execErr, context.Canceled) || errors.Is(execErr, context.DeadlineExceeded) {
			return nil, execErr
		}
		if errors.Is(execErr, executor.ErrTimeout) {
			timeoutErr := &TimeoutError{Command: req.Command, Duration: timeout}
			if result != nil {
				timeoutErr.Stdout = result.Stdout
			}
			return nil, timeoutErr
		}
		return nil, &ExecutionError{Command: req.Command, Cause: execErr}
	}

	return &ShellResponse{
		Command:    req.Command,
		Stdout:     result.Stdout,
		Stderr:     result.Stderr,
		ExitCode:   result.ExitCode,
		Truncated:  result.Truncated,
		DurationMs: result.Duration.Milliseconds(),
	}, nil
}

func (t *ShellTool) timeout(ms int) time.Duration {
	if ms <= 0 {
		ms = t.config.Tools.DefaultCommandTimeoutMs
	}
	ms = min(ms, t.config.Tools.MaxCommandTimeoutMs)
	return time.Duration(ms) * time.Millisecond
}
