// Package ui is the terminal chat client for the gateway.
package ui

import (
	"context"
	"iter"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/ui/client"
	"github.com/Cyclone1070/agentgate/internal/ui/services"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// generator streams a reply for a conversation. client.Client implements it.
type generator interface {
	Generate(ctx context.Context, messages []client.Message) iter.Seq2[client.Event, error]
}

// SpinnerFactory creates a new spinner
type SpinnerFactory func() spinner.Model

// UI runs the Bubble Tea program.
type UI struct {
	program *tea.Program
}

// NewUI creates a new Bubble Tea UI
func NewUI(
	cfg *config.Config,
	gen generator,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) *UI {
	model := newBubbleTeaModel(cfg, gen, renderer, spinnerFactory)
	return &UI{program: tea.NewProgram(model, tea.WithAltScreen())}
}

// Start runs the UI until the user quits.
func (u *UI) Start() error {
	_, err := u.program.Run()
	return err
}
