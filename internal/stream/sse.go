package stream

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Cyclone1070/agentgate/internal/workflow"
)

// SSE event names.
const (
	EventText      = "text"
	EventToolStart = "tool_start"
	EventToolEnd   = "tool_end"
	EventError     = "error"
	EventDone      = "done"
)

type textPayload struct {
	Text string `json:"text"`
}

type toolStartPayload struct {
	Name string         `json:"name"`
	Args map[string]any `json:"args"`
}

type toolEndPayload struct {
	Name  string `json:"name"`
	Error string `json:"error,omitempty"`
}

type errorPayload struct {
	Message string `json:"message"`
}

// SSEResponder writes every event as a server-sent event frame with a JSON
// data line.
type SSEResponder struct {
	base
}

func NewSSEResponder(w http.ResponseWriter) *SSEResponder {
	return &SSEResponder{base: newBase(w, "text/event-stream")}
}

func (r *SSEResponder) Push(ev workflow.Event) error {
	name, payload := sseFrame(ev)
	if name == "" {
		return r.write(nil)
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", name, err)
	}
	return r.write(fmt.Appendf(nil, "event: %s\ndata: %s\n\n", name, data))
}

func sseFrame(ev workflow.Event) (string, any) {
	switch e := ev.(type) {
	case workflow.TextEvent:
		return EventText, textPayload{Text: e.Text}
	case workflow.ToolStartEvent:
		args := e.Args
		if args == nil {
			args = map[string]any{}
		}
		return EventToolStart, toolStartPayload{Name: e.ToolName, Args: args}
	case workflow.ToolEndEvent:
		return EventToolEnd, toolEndPayload{Name: e.ToolName, Error: e.Error}
	case workflow.ErrorEvent:
		return EventError, errorPayload{Message: e.Message}
	case workflow.DoneEvent:
		return EventDone, struct{}{}
	default:
		return "", nil
	}
}
