// Package models holds the chat client's view state.
package models

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Roles shown in the transcript.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Status phases.
const (
	PhaseReady     = "ready"
	PhaseThinking  = "thinking"
	PhaseExecuting = "executing"
	PhaseError     = "error"
)

// Message is one transcript entry.
type Message struct {
	Role    string
	Content string

	// Unanswered marks a user turn whose reply never arrived. It stays on
	// screen but is not sent again as history.
	Unanswered bool
}

// LogLevel classifies debug log entries.
type LogLevel int

const (
	LogInfo LogLevel = iota
	LogError
)

// LogEntry is one line in the debug pane.
type LogEntry struct {
	Level LogLevel
	Text  string
}

// State is everything the views render.
type State struct {
	Input    textinput.Model
	Viewport viewport.Model
	Spinner  spinner.Model

	Messages []Message
	// Partial is the reply streaming in right now.
	Partial   string
	Streaming bool

	Logs     []LogEntry
	ShowLogs bool

	StatusPhase   string
	StatusMessage string
	ServerURL     string

	Width  int
	Height int
}
