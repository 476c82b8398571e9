package views

import (
	"strings"

	"github.com/Cyclone1070/agentgate/internal/ui/models"
	"github.com/Cyclone1070/agentgate/internal/ui/services"
)

// RenderChat renders the transcript viewport.
func RenderChat(s models.State, st Styles) string {
	if len(s.Messages) == 0 && !s.Streaming {
		return st.Muted.Render("No messages yet. Type a message to start.")
	}
	return s.Viewport.View()
}

// FormatChatContent formats the transcript for the viewport. Finished
// assistant replies are rendered as markdown; the reply still streaming in
// is shown as plain text until it completes.
func FormatChatContent(s models.State, st Styles, width int, renderer services.MarkdownRenderer) string {
	var lines []string
	for _, msg := range s.Messages {
		if msg.Role == models.RoleUser {
			lines = append(lines, st.User.Render("You: ")+msg.Content)
		} else {
			lines = append(lines, st.Assistant.Render(services.RenderMarkdown(msg.Content, width, renderer)))
		}
		lines = append(lines, "")
	}
	if s.Streaming && s.Partial != "" {
		lines = append(lines, st.Partial.Width(width).Render(s.Partial))
	}
	return strings.Join(lines, "\n")
}
