package lint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/tool/service/executor"
)

// ParseFailure is the error reported when linter output is not ESLint JSON.
const ParseFailure = "failed to parse lint output"

// LintTool runs the configured linter over the project root.
type LintTool struct {
	commandExecutor commandExecutor
	config          *config.Config
	root            string
}

// NewLintTool creates a new LintTool with injected dependencies.
func NewLintTool(commandExecutor commandExecutor, cfg *config.Config, root string) *LintTool {
	if commandExecutor == nil {
		panic("commandExecutor is required")
	}
	if cfg == nil {
		panic("cfg is required")
	}
	if root == "" {
		panic("root is required")
	}
	return &LintTool{
		commandExecutor: commandExecutor,
		config:          cfg,
		root:            root,
	}
}

// Run executes the lint command and flattens its JSON report.
// Failures of the linter itself are reported in the response, not as errors;
// only cancellation is returned as an error.
func (t *LintTool) Run(ctx context.Context, _ *LintRequest) (*LintResponse, error) {
	command := t.config.Tools.LintCommand
	timeout := time.Duration(t.config.Tools.LintTimeoutMs) * time.Millisecond

	result, err := t.commandExecutor.RunWithTimeout(ctx, command, t.root, executor.Environ(), timeout)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		resp := &LintResponse{Error: err.Error()}
		if result != nil {
			resp.Stderr = result.Stderr
		}
		return resp, nil
	}

	stdout := strings.TrimSpace(result.Stdout)
	if stdout == "" {
		if result.ExitCode != 0 {
			return &LintResponse{
				Error:  fmt.Sprintf("%s exited with code %d", command[0], result.ExitCode),
				Stderr: result.Stderr,
			}, nil
		}
		return &LintResponse{Errors: []Problem{}, Stderr: result.Stderr}, nil
	}

	var files []eslintFile
	if err := json.Unmarshal([]byte(stdout), &files); err != nil {
		return &LintResponse{
			Error:   ParseFailure,
			Details: err.Error(),
			Raw:     result.Stdout,
			Stderr:  result.Stderr,
		}, nil
	}

	problems := make([]Problem, 0)
	for _, f := range files {
		path := t.relative(f.FilePath)
		for _, m := range f.Messages {
			p := Problem{
				FilePath: path,
				Severity: severity(m.Severity),
				Message:  m.Message,
				Line:     m.Line,
				Column:   m.Column,
			}
			if m.RuleID != nil {
				p.Rule = *m.RuleID
			}
			problems = append(problems, p)
		}
	}

	return &LintResponse{
		Errors: problems,
		Count:  len(problems),
		Stderr: result.Stderr,
	}, nil
}

func (t *LintTool) relative(path string) string {
	if !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	rel, err := filepath.Rel(t.root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func severity(level int) string {
	switch level {
	case 2:
		return "error"
	case 1:
		return "warning"
	default:
		return "off"
	}
}
