package loop

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/logging"
	"github.com/Cyclone1070/agentgate/internal/provider"
	"github.com/Cyclone1070/agentgate/internal/workflow"
)

// ErrModelUnreachable is returned when the model service could not produce
// a response. It is the only error that ends a request early.
var ErrModelUnreachable = errors.New("model unreachable")

// Loop alternates model generation and tool execution for one request.
type Loop struct {
	provider    llmProvider
	tools       toolManager
	maxSteps    int
	eventBuffer int
	logger      *slog.Logger
}

// Option configures a Loop.
type Option func(*Loop)

// WithLogger sets the fallback logger used when the context carries none.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMaxSteps overrides the configured tool round-trip ceiling.
func WithMaxSteps(n int) Option {
	return func(l *Loop) {
		l.maxSteps = n
	}
}

func NewLoop(provider llmProvider, tools toolManager, cfg *config.Config, opts ...Option) *Loop {
	if provider == nil {
		panic("provider is required")
	}
	if tools == nil {
		panic("tools is required")
	}
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	l := &Loop{
		provider:    provider,
		tools:       tools,
		maxSteps:    cfg.Workflow.MaxSteps,
		eventBuffer: cfg.Workflow.EventBuffer,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start runs the loop in a new goroutine and returns its events. The channel
// is bounded, so a slow reader slows the loop down; it is closed after the
// DoneEvent. Cancel ctx to abandon the run.
func (l *Loop) Start(ctx context.Context, history []provider.Message) <-chan workflow.Event {
	events := make(chan workflow.Event, l.eventBuffer)
	go func() {
		defer close(events)
		if err := l.Run(ctx, history, events); err != nil {
			logging.FromContextOr(ctx, l.logger).Debug("loop ended with error", "error", err)
		}
	}()
	return events
}

// Run drives the conversation until the model answers without calling tools
// or the step ceiling is reached. Text is emitted as it streams in. A
// DoneEvent is always the last event sent.
//
// Tool failures are fed back to the model. A model failure emits one
// ErrorEvent and returns an error wrapping ErrModelUnreachable. If ctx is
// cancelled, Run returns ctx.Err() as soon as it notices.
func (l *Loop) Run(ctx context.Context, history []provider.Message, events chan<- workflow.Event) error {
	logger := logging.FromContextOr(ctx, l.logger)
	messages := append([]provider.Message(nil), history...)

	defer func() {
		_ = workflow.Emit(ctx, events, workflow.DoneEvent{})
	}()

	for step := 0; ; step++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		reply, err := l.generate(ctx, messages, events)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			logger.Error("model request failed", "step", step, "error", err)
			if emitErr := workflow.Emit(ctx, events, workflow.ErrorEvent{Message: userMessage(err)}); emitErr != nil {
				return emitErr
			}
			return fmt.Errorf("%w: %w", ErrModelUnreachable, err)
		}
		messages = append(messages, reply)

		if len(reply.ToolCalls) == 0 {
			logger.Debug("model finished", "steps", step)
			return nil
		}

		if step >= l.maxSteps {
			logger.Warn("step ceiling reached, dropping tool calls",
				"max_steps", l.maxSteps,
				"dropped", len(reply.ToolCalls))
			return nil
		}

		logger.Debug("dispatching tools", "step", step+1, "calls", len(reply.ToolCalls))
		results, err := l.tools.ExecuteAll(ctx, reply.ToolCalls, events)
		if err != nil {
			return err
		}
		messages = append(messages, provider.Message{
			Role:        provider.RoleTool,
			ToolResults: results,
		})
	}
}

// generate consumes one streamed model response, forwarding text as it
// arrives, and returns the complete assistant message.
func (l *Loop) generate(ctx context.Context, messages []provider.Message, events chan<- workflow.Event) (provider.Message, error) {
	var text strings.Builder
	var calls []provider.ToolCall

	for delta, err := range l.provider.GenerateStream(ctx, messages, l.tools.Declarations()) {
		if err != nil {
			return provider.Message{}, err
		}
		if delta.Text != "" {
			text.WriteString(delta.Text)
			if err := workflow.Emit(ctx, events, workflow.TextEvent{Text: delta.Text}); err != nil {
				return provider.Message{}, err
			}
		}
		calls = append(calls, delta.ToolCalls...)
	}

	return provider.Message{
		Role:      provider.RoleAssistant,
		Content:   text.String(),
		ToolCalls: calls,
	}, nil
}

// userMessage is the text sent to the caller when the model fails. Provider
// details stay in the log.
func userMessage(err error) string {
	var perr *provider.ProviderError
	if errors.As(err, &perr) {
		switch perr.Code {
		case provider.ErrorCodeContentBlocked:
			return "The response was blocked by the model's safety filters."
		case provider.ErrorCodeRateLimit:
			return "The model is rate limited. Please try again shortly."
		case provider.ErrorCodeAuth:
			return "The server could not authenticate with the model service."
		}
	}
	return "Failed to reach the model service. Please try again later."
}
