package views

import (
	"github.com/Cyclone1070/agentgate/internal/ui/models"
	"github.com/charmbracelet/lipgloss"
)

// RenderRoot renders the complete UI layout
func RenderRoot(s models.State, st Styles) string {
	sections := []string{RenderChat(s, st)}
	if logs := RenderLogs(s, st); logs != "" {
		sections = append(sections, logs)
	}
	sections = append(sections, RenderInput(s, st), RenderStatus(s, st))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}
