package views

import (
	"strings"

	"github.com/Cyclone1070/agentgate/internal/ui/models"
)

// LogPaneHeight is how many log lines the debug pane shows.
const LogPaneHeight = 6

// RenderLogs renders the most recent debug log entries. Empty when hidden.
func RenderLogs(s models.State, st Styles) string {
	if !s.ShowLogs {
		return ""
	}

	entries := s.Logs
	if len(entries) > LogPaneHeight {
		entries = entries[len(entries)-LogPaneHeight:]
	}

	lines := make([]string, 0, LogPaneHeight)
	if len(entries) == 0 {
		lines = append(lines, st.Muted.Render("no tool activity yet"))
	}
	for _, e := range entries {
		if e.Level == models.LogError {
			lines = append(lines, st.Error.Render(e.Text))
		} else {
			lines = append(lines, st.Muted.Render(e.Text))
		}
	}
	return st.LogBox.Render(strings.Join(lines, "\n"))
}
