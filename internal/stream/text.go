package stream

import (
	"net/http"

	"github.com/Cyclone1070/agentgate/internal/workflow"
)

// TextResponder streams only the model's text as text/plain. Errors are
// appended as a final "[error] ..." line; other events are not shown.
type TextResponder struct {
	base
}

func NewTextResponder(w http.ResponseWriter) *TextResponder {
	return &TextResponder{base: newBase(w, "text/plain; charset=utf-8")}
}

func (r *TextResponder) Push(ev workflow.Event) error {
	switch e := ev.(type) {
	case workflow.TextEvent:
		return r.write([]byte(e.Text))
	case workflow.ErrorEvent:
		return r.write([]byte("\n[error] " + e.Message + "\n"))
	default:
		return r.write(nil)
	}
}
