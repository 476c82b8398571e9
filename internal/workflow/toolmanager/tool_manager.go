package toolmanager

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/Cyclone1070/agentgate/internal/logging"
	"github.com/Cyclone1070/agentgate/internal/provider"
	"github.com/Cyclone1070/agentgate/internal/tool"
	"github.com/Cyclone1070/agentgate/internal/tool/errutil"
	"github.com/Cyclone1070/agentgate/internal/workflow"
	"golang.org/x/sync/errgroup"
)

// DefaultParallelism bounds concurrent calls within one step when no limit is set.
const DefaultParallelism = 4

// ToolManager is the registry of tools offered to the model. It is built at
// startup and only read afterwards, so it is safe for concurrent use.
type ToolManager struct {
	registry    map[string]Tool
	logger      *slog.Logger
	parallelism int
}

// Option configures a ToolManager.
type Option func(*ToolManager)

// WithParallelism caps how many calls of one step run at once.
func WithParallelism(n int) Option {
	return func(m *ToolManager) {
		if n > 0 {
			m.parallelism = n
		}
	}
}

// NewToolManager creates a registry holding tools.
func NewToolManager(logger *slog.Logger, tools []Tool, opts ...Option) (*ToolManager, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tm := &ToolManager{
		registry:    make(map[string]Tool),
		logger:      logger,
		parallelism: DefaultParallelism,
	}
	for _, opt := range opts {
		opt(tm)
	}
	for _, t := range tools {
		if err := tm.Register(t); err != nil {
			return nil, err
		}
	}
	return tm, nil
}

// Register adds t. Names must be unique.
func (m *ToolManager) Register(t Tool) error {
	if t == nil {
		return errors.New("tool is nil")
	}
	name := t.Name()
	if _, exists := m.registry[name]; exists {
		return fmt.Errorf("%w: %s", errutil.ErrDuplicateTool, name)
	}
	m.registry[name] = t
	return nil
}

// Lookup returns the tool registered under name.
func (m *ToolManager) Lookup(name string) (Tool, error) {
	t, ok := m.registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", errutil.ErrToolNotFound, name)
	}
	return t, nil
}

// Names returns the registered tool names in sorted order.
func (m *ToolManager) Names() []string {
	names := make([]string, 0, len(m.registry))
	for name := range m.registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Declarations returns all tool schemas for the LLM, sorted by name.
func (m *ToolManager) Declarations() []tool.Declaration {
	decls := make([]tool.Declaration, 0, len(m.registry))
	for _, name := range m.Names() {
		decls = append(decls, m.registry[name].Declaration())
	}
	return decls
}

// Execute runs a single call. See ExecuteAll.
func (m *ToolManager) Execute(ctx context.Context, call provider.ToolCall, events chan<- workflow.Event) (provider.ToolResult, error) {
	results, err := m.ExecuteAll(ctx, []provider.ToolCall{call}, events)
	if err != nil {
		return provider.ToolResult{}, err
	}
	return results[0], nil
}

// ExecuteAll runs the calls of one model step concurrently and returns one
// result per call, in call order. A ToolStartEvent is emitted for every call
// in order before any of them runs, and a ToolEndEvent as each one finishes.
//
// Tool failures never make ExecuteAll fail: they are reported in
// ToolResult.Error. The only error returned is ctx's, once it is done.
func (m *ToolManager) ExecuteAll(ctx context.Context, calls []provider.ToolCall, events chan<- workflow.Event) ([]provider.ToolResult, error) {
	for _, call := range calls {
		if err := workflow.Emit(ctx, events, workflow.ToolStartEvent{ToolName: call.Name, Args: call.Args}); err != nil {
			return nil, err
		}
	}

	results := make([]provider.ToolResult, len(calls))
	var g errgroup.Group
	g.SetLimit(m.parallelism)
	for i, call := range calls {
		g.Go(func() error {
			res := m.invoke(ctx, call)
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = res
			return workflow.Emit(ctx, events, workflow.ToolEndEvent{ToolName: call.Name, Error: res.Error})
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// invoke runs one call and converts every failure, panics included, into an
// error result.
func (m *ToolManager) invoke(ctx context.Context, call provider.ToolCall) (res provider.ToolResult) {
	logger := logging.FromContextOr(ctx, m.logger).With("tool", call.Name, "call_id", call.ID)
	res = provider.ToolResult{ID: call.ID, Name: call.Name}

	t, err := m.Lookup(call.Name)
	if err != nil {
		res.Error = fmt.Sprintf("tool %q does not exist; available tools: %s", call.Name, strings.Join(m.Names(), ", "))
		logger.Warn("unknown tool requested")
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			logger.Error("tool panicked", "panic", r)
			res.Output = nil
			res.Error = fmt.Sprintf("tool %s failed unexpectedly: %v", call.Name, r)
		}
	}()

	start := time.Now()
	out, err := t.Call(ctx, call.Args)
	elapsed := time.Since(start)
	if err != nil {
		res.Error = err.Error()
		if errors.Is(err, errutil.ErrArgumentValidation) {
			logger.Info("tool arguments rejected", "error", err)
		} else {
			logger.Warn("tool failed", "error", err, "duration", elapsed)
		}
		return res
	}

	logger.Debug("tool finished", "duration", elapsed)
	res.Output = out
	return res
}
