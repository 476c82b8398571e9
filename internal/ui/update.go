package ui

import (
	"context"
	"errors"
	"strings"

	"github.com/Cyclone1070/agentgate/internal/config"
	"github.com/Cyclone1070/agentgate/internal/ui/client"
	"github.com/Cyclone1070/agentgate/internal/ui/models"
	"github.com/Cyclone1070/agentgate/internal/ui/services"
	"github.com/Cyclone1070/agentgate/internal/ui/views"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

const helpText = "Available commands:\n" +
	"- /clear - Start a new conversation\n" +
	"- /logs - Toggle the debug log pane\n" +
	"- /help - Show this help\n" +
	"- /quit - Exit"

// BubbleTeaModel implements tea.Model
type BubbleTeaModel struct {
	state models.State

	// Dependencies
	styles   views.Styles
	renderer services.MarkdownRenderer
	gen      generator

	// stream is the reply in flight; nil when idle.
	stream *activeStream
}

type activeStream struct {
	events <-chan tea.Msg
	cancel context.CancelFunc
}

// Internal messages
type streamEventMsg client.Event
type streamErrMsg struct{ err error }
type streamEndMsg struct{}

// newBubbleTeaModel creates a new Bubble Tea model
func newBubbleTeaModel(
	cfg *config.Config,
	gen generator,
	renderer services.MarkdownRenderer,
	spinnerFactory SpinnerFactory,
) BubbleTeaModel {
	ti := textinput.New()
	ti.Placeholder = "Ask something..."
	ti.Focus()

	return BubbleTeaModel{
		state: models.State{
			Input:       ti,
			Viewport:    viewport.New(80, 20),
			Spinner:     spinnerFactory(),
			StatusPhase: models.PhaseReady,
			ServerURL:   cfg.UI.ServerURL,
		},
		styles:   views.NewStyles(cfg.UI),
		renderer: renderer,
		gen:      gen,
	}
}

// Init initializes the model
func (m BubbleTeaModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.state.Spinner.Tick)
}

// View renders the UI
func (m BubbleTeaModel) View() string {
	return views.RenderRoot(m.state, m.styles)
}

// Update handles messages
func (m BubbleTeaModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		return m, cmd

	case streamEventMsg:
		m.handleEvent(client.Event(msg))
		return m, m.listen()

	case streamErrMsg:
		if errors.Is(msg.err, context.Canceled) {
			m.log(models.LogInfo, "stopped")
		} else {
			m.log(models.LogError, "request failed: "+msg.err.Error())
			m.state.StatusPhase = models.PhaseError
			m.state.StatusMessage = msg.err.Error()
		}
		return m, m.listen()

	case streamEndMsg:
		m.finishStream()
		return m, nil
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

// handleKeyPress handles keyboard input
func (m BubbleTeaModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		if m.stream != nil {
			m.stream.cancel()
		}
		return m, tea.Quit

	case "esc":
		if m.stream != nil {
			m.stream.cancel()
			m.state.StatusMessage = "Stopping"
		}
		return m, nil

	case "ctrl+l":
		m.toggleLogs()
		return m, nil

	case "pgup", "pgdown":
		var cmd tea.Cmd
		m.state.Viewport, cmd = m.state.Viewport.Update(msg)
		return m, cmd

	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	m.state.Input, cmd = m.state.Input.Update(msg)
	return m, cmd
}

func (m BubbleTeaModel) submit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.state.Input.Value())
	if input == "" || m.stream != nil {
		return m, nil
	}
	m.state.Input.SetValue("")

	if strings.HasPrefix(input, "/") {
		return m.handleCommand(input)
	}

	m.state.Messages = append(m.state.Messages, models.Message{
		Role:    models.RoleUser,
		Content: input,
	})

	ctx, cancel := context.WithCancel(context.Background())
	m.stream = &activeStream{
		events: startStream(ctx, m.gen, history(m.state.Messages)),
		cancel: cancel,
	}
	m.state.Streaming = true
	m.state.Partial = ""
	m.state.StatusPhase = models.PhaseThinking
	m.state.StatusMessage = ""
	m.updateViewport()

	return m, tea.Batch(m.listen(), m.state.Spinner.Tick)
}

// handleCommand handles slash commands
func (m BubbleTeaModel) handleCommand(input string) (tea.Model, tea.Cmd) {
	switch strings.Fields(input)[0] {
	case "/clear":
		m.state.Messages = nil
		m.state.Logs = nil
		m.state.StatusPhase = models.PhaseReady
		m.state.StatusMessage = ""
	case "/logs":
		m.toggleLogs()
	case "/quit":
		return m, tea.Quit
	case "/help":
		m.state.Messages = append(m.state.Messages, models.Message{
			Role:    models.RoleAssistant,
			Content: helpText,
		})
	default:
		m.state.StatusPhase = models.PhaseError
		m.state.StatusMessage = "unknown command " + input
	}
	m.updateViewport()
	return m, nil
}

func (m *BubbleTeaModel) handleEvent(ev client.Event) {
	switch ev.Type {
	case client.TypeText:
		m.state.Partial += ev.Text
		m.state.StatusPhase = models.PhaseThinking
		m.state.StatusMessage = ""
		m.updateViewport()
	case client.TypeToolStart:
		m.log(models.LogInfo, "→ "+services.FormatToolDescription(ev.Name, ev.Args))
		m.state.StatusPhase = models.PhaseExecuting
		m.state.StatusMessage = "Running " + ev.Name
	case client.TypeToolEnd:
		if ev.Error != "" {
			m.log(models.LogError, "✖ "+ev.Name+": "+ev.Error)
		} else {
			m.log(models.LogInfo, "✔ "+ev.Name)
		}
		m.state.StatusPhase = models.PhaseThinking
		m.state.StatusMessage = ""
	case client.TypeError:
		m.log(models.LogError, "error: "+ev.Message)
		m.state.StatusPhase = models.PhaseError
		m.state.StatusMessage = ev.Message
	}
}

// finishStream moves the streamed reply into the transcript.
func (m *BubbleTeaModel) finishStream() {
	if m.stream != nil {
		m.stream.cancel()
		m.stream = nil
	}

	reply := m.state.Partial
	m.state.Partial = ""
	m.state.Streaming = false

	if reply != "" {
		m.state.Messages = append(m.state.Messages, models.Message{
			Role:    models.RoleAssistant,
			Content: reply,
		})
	} else if n := len(m.state.Messages); n > 0 && m.state.Messages[n-1].Role == models.RoleUser {
		m.state.Messages[n-1].Unanswered = true
	}

	if m.state.StatusPhase != models.PhaseError {
		m.state.StatusPhase = models.PhaseReady
		m.state.StatusMessage = ""
	}
	m.updateViewport()
}

func (m *BubbleTeaModel) log(level models.LogLevel, text string) {
	m.state.Logs = append(m.state.Logs, models.LogEntry{Level: level, Text: text})
}

func (m *BubbleTeaModel) toggleLogs() {
	m.state.ShowLogs = !m.state.ShowLogs
	m.resize()
}

// resize fits the viewport between the top of the screen and the input,
// log pane and status bar.
func (m *BubbleTeaModel) resize() {
	reserved := 4
	if m.state.ShowLogs {
		reserved += views.LogPaneHeight + 1
	}
	m.state.Viewport.Width = m.state.Width
	m.state.Viewport.Height = max(m.state.Height-reserved, 1)
	m.state.Input.Width = max(m.state.Width-6, 10)
	m.updateViewport()
}

// updateViewport updates the viewport content
func (m *BubbleTeaModel) updateViewport() {
	content := views.FormatChatContent(m.state, m.styles, m.state.Width-4, m.renderer)
	m.state.Viewport.SetContent(content)
	m.state.Viewport.GotoBottom()
}

func (m BubbleTeaModel) listen() tea.Cmd {
	if m.stream == nil {
		return nil
	}
	return listenForStream(m.stream.events)
}

// history is the conversation sent to the gateway. Unanswered user turns
// are left out so roles keep alternating.
func history(messages []models.Message) []client.Message {
	out := make([]client.Message, 0, len(messages))
	for _, msg := range messages {
		if msg.Unanswered {
			continue
		}
		out = append(out, client.Message{Role: msg.Role, Content: msg.Content})
	}
	return out
}

// startStream runs one request and forwards its events as tea messages.
// The channel is closed when the stream ends or ctx is cancelled.
func startStream(ctx context.Context, gen generator, messages []client.Message) <-chan tea.Msg {
	ch := make(chan tea.Msg)
	go func() {
		defer close(ch)
		for ev, err := range gen.Generate(ctx, messages) {
			var msg tea.Msg = streamEventMsg(ev)
			if err != nil {
				msg = streamErrMsg{err: err}
			}
			select {
			case ch <- msg:
			case <-ctx.Done():
				return
			}
			if err != nil {
				return
			}
		}
	}()
	return ch
}

func listenForStream(ch <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return streamEndMsg{}
		}
		return msg
	}
}
