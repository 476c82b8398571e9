package views

import (
	"fmt"

	"github.com/Cyclone1070/agentgate/internal/ui/models"
)

// RenderStatus renders the status bar
func RenderStatus(s models.State, st Styles) string {
	var left string
	switch s.StatusPhase {
	case models.PhaseThinking, models.PhaseExecuting:
		msg := s.StatusMessage
		if msg == "" {
			msg = "Generating"
		}
		left = st.Busy.Render(fmt.Sprintf("%s %s", s.Spinner.View(), msg))
	case models.PhaseError:
		left = st.Error.Render("✖ " + s.StatusMessage)
	default:
		msg := "Ready"
		if s.StatusMessage != "" {
			msg = s.StatusMessage
		}
		left = st.Status.Render(msg)
	}

	right := st.Muted.Render(s.ServerURL + "  ctrl+l logs  esc stop  ctrl+c quit")
	return fmt.Sprintf("%s  %s", left, right)
}
