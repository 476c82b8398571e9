package loop

import (
	"context"
	"errors"
	"iter"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/logging"
	"github.com/Cyclone1070/agentgate/internal/provider"
	"github.com/Cyclone1070/agentgate/internal/tool"
	"github.com/Cyclone1070/agentgate/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type mockProvider struct {
	generateFunc func(ctx context.Context, messages []provider.Message, tools []tool.Declaration) iter.Seq2[provider.Delta, error]
}

func (m *mockProvider) GenerateStream(ctx context.Context, messages []provider.Message, tools []tool.Declaration) iter.Seq2[provider.Delta, error] {
	return m.generateFunc(ctx, messages, tools)
}

type mockToolManager struct {
	declarations []tool.Declaration
	executeFunc  func(ctx context.Context, calls []provider.ToolCall, events chan<- workflow.Event) ([]provider.ToolResult, error)
}

func (m *mockToolManager) Declarations() []tool.Declaration {
	return m.declarations
}

func (m *mockToolManager) ExecuteAll(ctx context.Context, calls []provider.ToolCall, events chan<- workflow.Event) ([]provider.ToolResult, error) {
	if m.executeFunc != nil {
		return m.executeFunc(ctx, calls, events)
	}
	results := make([]provider.ToolResult, len(calls))
	for i, c := range calls {
		results[i] = provider.ToolResult{ID: c.ID, Name: c.Name, Output: map[string]any{"ok": true}}
	}
	return results, nil
}

func deltas(ds ...provider.Delta) iter.Seq2[provider.Delta, error] {
	return func(yield func(provider.Delta, error) bool) {
		for _, d := range ds {
			if !yield(d, nil) {
				return
			}
		}
	}
}

func failing(err error) iter.Seq2[provider.Delta, error] {
	return func(yield func(provider.Delta, error) bool) {
		yield(provider.Delta{}, err)
	}
}

func newTestLoop(p llmProvider, tm toolManager) *Loop {
	return NewLoop(p, tm, config.DefaultConfig(), WithLogger(logging.Discard()))
}

func collect(ch <-chan workflow.Event) []workflow.Event {
	var out []workflow.Event
	for ev := range ch {
		out = append(out, ev)
	}
	return out
}

func TestRun_TextOnlyStreamsDeltasInOrder(t *testing.T) {
	mp := &mockProvider{
		generateFunc: func(context.Context, []provider.Message, []tool.Declaration) iter.Seq2[provider.Delta, error] {
			return deltas(
				provider.Delta{Text: "Hel"},
				provider.Delta{Text: "lo"},
				provider.Delta{Text: "!", FinishReason: provider.FinishReasonStop},
			)
		},
	}

	events := collect(newTestLoop(mp, &mockToolManager{}).Start(context.Background(), []provider.Message{
		{Role: provider.RoleUser, Content: "Hi"},
	}))

	assert.Equal(t, []workflow.Event{
		workflow.TextEvent{Text: "Hel"},
		workflow.TextEvent{Text: "lo"},
		workflow.TextEvent{Text: "!"},
		workflow.DoneEvent{},
	}, events)
}

func TestRun_ToolRoundTrip(t *testing.T) {
	var seen [][]provider.Message
	decls := []tool.Declaration{{Name: "get_current_weather"}}
	mp := &mockProvider{
		generateFunc: func(_ context.Context, messages []provider.Message, tools []tool.Declaration) iter.Seq2[provider.Delta, error] {
			assert.Equal(t, decls, tools)
			seen = append(seen, append([]provider.Message(nil), messages...))
			if len(seen) == 1 {
				return deltas(provider.Delta{ToolCalls: []provider.ToolCall{
					{ID: "1", Name: "get_current_weather", Args: map[string]any{"location": "Paris"}},
				}})
			}
			return deltas(provider.Delta{Text: "It's sunny in Paris."})
		},
	}
	mtm := &mockToolManager{declarations: decls}
	history := []provider.Message{{Role: provider.RoleUser, Content: "Weather in Paris?"}}

	err := newTestLoop(mp, mtm).Run(context.Background(), history, nil)

	require.NoError(t, err)
	require.Len(t, seen, 2)
	second := seen[1]
	require.Len(t, second, 3)
	assert.Equal(t, provider.RoleAssistant, second[1].Role)
	assert.Equal(t, "get_current_weather", second[1].ToolCalls[0].Name)
	assert.Equal(t, provider.RoleTool, second[2].Role)
	assert.Equal(t, []provider.ToolResult{{ID: "1", Name: "get_current_weather", Output: map[string]any{"ok": true}}}, second[2].ToolResults)
	assert.Len(t, history, 1, "caller history must not be mutated")
}

func TestRun_StepCeiling(t *testing.T) {
	var generations, executed atomic.Int32
	mp := &mockProvider{
		generateFunc: func(context.Context, []provider.Message, []tool.Declaration) iter.Seq2[provider.Delta, error] {
			n := generations.Add(1)
			return deltas(
				provider.Delta{Text: "step "},
				provider.Delta{ToolCalls: []provider.ToolCall{{Name: "list_project_files", ID: string(rune('0' + n))}}},
			)
		},
	}
	mtm := &mockToolManager{
		executeFunc: func(_ context.Context, calls []provider.ToolCall, _ chan<- workflow.Event) ([]provider.ToolResult, error) {
			executed.Add(int32(len(calls)))
			return make([]provider.ToolResult, len(calls)), nil
		},
	}

	events := collect(newTestLoop(mp, mtm).Start(context.Background(), nil))

	assert.Equal(t, int32(5), executed.Load())
	assert.Equal(t, int32(6), generations.Load())
	assert.Equal(t, workflow.DoneEvent{}, events[len(events)-1])
	for _, ev := range events {
		_, isErr := ev.(workflow.ErrorEvent)
		assert.False(t, isErr)
	}
}

func TestRun_CustomCeiling(t *testing.T) {
	var executed atomic.Int32
	mp := &mockProvider{
		generateFunc: func(context.Context, []provider.Message, []tool.Declaration) iter.Seq2[provider.Delta, error] {
			return deltas(provider.Delta{ToolCalls: []provider.ToolCall{{Name: "x"}}})
		},
	}
	mtm := &mockToolManager{
		executeFunc: func(_ context.Context, calls []provider.ToolCall, _ chan<- workflow.Event) ([]provider.ToolResult, error) {
			executed.Add(1)
			return make([]provider.ToolResult, len(calls)), nil
		},
	}

	err := NewLoop(mp, mtm, nil, WithMaxSteps(2), WithLogger(logging.Discard())).Run(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Equal(t, int32(2), executed.Load())
}

func TestRun_ToolFailureContinues(t *testing.T) {
	calls := 0
	mp := &mockProvider{
		generateFunc: func(_ context.Context, messages []provider.Message, _ []tool.Declaration) iter.Seq2[provider.Delta, error] {
			calls++
			if calls == 1 {
				return deltas(provider.Delta{ToolCalls: []provider.ToolCall{{Name: "get_current_weather", Args: map[string]any{"location": "P"}}}})
			}
			last := messages[len(messages)-1]
			assert.True(t, last.ToolResults[0].Failed())
			return deltas(provider.Delta{Text: "The location was too short."})
		},
	}
	mtm := &mockToolManager{
		executeFunc: func(_ context.Context, calls []provider.ToolCall, _ chan<- workflow.Event) ([]provider.ToolResult, error) {
			return []provider.ToolResult{{Name: calls[0].Name, Error: "invalid arguments"}}, nil
		},
	}

	events := collect(newTestLoop(mp, mtm).Start(context.Background(), nil))

	assert.Equal(t, []workflow.Event{
		workflow.TextEvent{Text: "The location was too short."},
		workflow.DoneEvent{},
	}, events)
}

func TestRun_ModelFailureIsFatal(t *testing.T) {
	apiErr := &provider.ProviderError{Code: provider.ErrorCodeUnavailable, Message: "503"}
	mp := &mockProvider{
		generateFunc: func(context.Context, []provider.Message, []tool.Declaration) iter.Seq2[provider.Delta, error] {
			return failing(apiErr)
		},
	}
	events := make(chan workflow.Event, 8)

	err := newTestLoop(mp, &mockToolManager{}).Run(context.Background(), nil, events)
	close(events)

	assert.ErrorIs(t, err, ErrModelUnreachable)
	assert.ErrorIs(t, err, provider.ErrServiceUnavailable)
	got := collect(events)
	require.Len(t, got, 2)
	assert.IsType(t, workflow.ErrorEvent{}, got[0])
	assert.Equal(t, workflow.DoneEvent{}, got[1])
}

func TestRun_MidStreamFailureKeepsEarlierText(t *testing.T) {
	mp := &mockProvider{
		generateFunc: func(context.Context, []provider.Message, []tool.Declaration) iter.Seq2[provider.Delta, error] {
			return func(yield func(provider.Delta, error) bool) {
				if !yield(provider.Delta{Text: "partial"}, nil) {
					return
				}
				yield(provider.Delta{}, errors.New("stream reset"))
			}
		},
	}

	events := collect(newTestLoop(mp, &mockToolManager{}).Start(context.Background(), nil))

	require.Len(t, events, 3)
	assert.Equal(t, workflow.TextEvent{Text: "partial"}, events[0])
	assert.IsType(t, workflow.ErrorEvent{}, events[1])
	assert.Equal(t, workflow.DoneEvent{}, events[2])
}

func TestUserMessage(t *testing.T) {
	blocked := &provider.ProviderError{Code: provider.ErrorCodeContentBlocked}
	assert.Contains(t, userMessage(blocked), "safety")
	assert.Contains(t, userMessage(errors.New("dial tcp")), "Failed to reach the model service")
}

func TestStart_BackpressureBlocksProducer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Workflow.EventBuffer = 1
	var produced atomic.Int32
	mp := &mockProvider{
		generateFunc: func(context.Context, []provider.Message, []tool.Declaration) iter.Seq2[provider.Delta, error] {
			return func(yield func(provider.Delta, error) bool) {
				for range 10 {
					produced.Add(1)
					if !yield(provider.Delta{Text: "x"}, nil) {
						return
					}
				}
			}
		},
	}

	ch := NewLoop(mp, &mockToolManager{}, cfg, WithLogger(logging.Discard())).Start(context.Background(), nil)

	time.Sleep(50 * time.Millisecond)
	assert.LessOrEqual(t, produced.Load(), int32(3), "producer must wait for the reader")

	events := collect(ch)
	assert.Len(t, events, 11)
}

func TestStart_CancelStopsLoop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	mp := &mockProvider{
		generateFunc: func(ctx context.Context, _ []provider.Message, _ []tool.Declaration) iter.Seq2[provider.Delta, error] {
			return func(yield func(provider.Delta, error) bool) {
				defer close(stopped)
				for {
					if !yield(provider.Delta{Text: "more"}, nil) {
						return
					}
					if ctx.Err() != nil {
						yield(provider.Delta{}, ctx.Err())
						return
					}
				}
			}
		},
	}
	cfg := config.DefaultConfig()
	cfg.Workflow.EventBuffer = 0

	ch := NewLoop(mp, &mockToolManager{}, cfg, WithLogger(logging.Discard())).Start(ctx, nil)
	<-ch
	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("model stream was not abandoned after cancellation")
	}
	// The channel is closed once the producer exits.
	for range ch {
	}
}

func TestRun_CancelledDuringTools(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	mp := &mockProvider{
		generateFunc: func(context.Context, []provider.Message, []tool.Declaration) iter.Seq2[provider.Delta, error] {
			return deltas(provider.Delta{ToolCalls: []provider.ToolCall{{Name: "run_terminal_command"}}})
		},
	}
	mtm := &mockToolManager{
		executeFunc: func(ctx context.Context, _ []provider.ToolCall, _ chan<- workflow.Event) ([]provider.ToolResult, error) {
			cancel()
			return nil, ctx.Err()
		},
	}

	err := newTestLoop(mp, mtm).Run(ctx, nil, nil)

	assert.ErrorIs(t, err, context.Canceled)
}
