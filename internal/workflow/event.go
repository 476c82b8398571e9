package workflow

import "context"

// Event is the interface for all workflow events.
// Consumers handle events via type switch.
type Event interface {
	isEvent()
}

// TextEvent is emitted for each text delta the model produces.
type TextEvent struct {
	Text string
}

func (TextEvent) isEvent() {}

// ToolStartEvent is emitted when a tool call is dispatched.
type ToolStartEvent struct {
	ToolName string
	Args     map[string]any
}

func (ToolStartEvent) isEvent() {}

// ToolEndEvent is emitted when a tool call finishes. Error is empty on success.
type ToolEndEvent struct {
	ToolName string
	Error    string
}

func (ToolEndEvent) isEvent() {}

// ErrorEvent is emitted once when the request cannot be completed.
type ErrorEvent struct {
	Message string
}

func (ErrorEvent) isEvent() {}

// DoneEvent is always the last event of a run.
type DoneEvent struct{}

func (DoneEvent) isEvent() {}

// Emit sends ev on events, blocking while the channel is full.
// It gives up with ctx.Err() once ctx is done. A nil channel drops the event.
func Emit(ctx context.Context, events chan<- Event, ev Event) error {
	if events == nil {
		return nil
	}
	select {
	case events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
