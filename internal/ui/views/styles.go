// Package views renders the chat client's state.
package views

import (
	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/charmbracelet/lipgloss"
)

// Styles are the lipgloss styles used by every view.
type Styles struct {
	User      lipgloss.Style
	Assistant lipgloss.Style
	Partial   lipgloss.Style
	Input     lipgloss.Style
	Status    lipgloss.Style
	Busy      lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style
	LogBox    lipgloss.Style
}

// NewStyles builds styles from the configured colours.
func NewStyles(cfg config.UIConfig) Styles {
	primary := lipgloss.Color(cfg.ColorPrimary)
	muted := lipgloss.Color(cfg.ColorMuted)
	errColor := lipgloss.Color(cfg.ColorError)

	return Styles{
		User:      lipgloss.NewStyle().Foreground(primary).Bold(true),
		Assistant: lipgloss.NewStyle(),
		Partial:   lipgloss.NewStyle().PaddingLeft(2),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(0, 1),
		Status: lipgloss.NewStyle().Foreground(muted),
		Busy:   lipgloss.NewStyle().Foreground(primary),
		Error:  lipgloss.NewStyle().Foreground(errColor),
		Muted:  lipgloss.NewStyle().Foreground(muted),
		LogBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(muted),
	}
}
