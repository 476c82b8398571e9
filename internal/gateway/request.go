package gateway

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Cyclone1070/agentgate/internal/provider"
)

var (
	ErrEmptyInput  = errors.New("prompt or messages is required")
	ErrLastNotUser = errors.New("the last message must come from the user")
)

// GenerateRequest is the body of POST /generate. Either Prompt, Messages,
// or both may be set; a Prompt is appended to Messages as the final user turn.
type GenerateRequest struct {
	Prompt   string        `json:"prompt"`
	Messages []ChatMessage `json:"messages"`
}

// ChatMessage is one prior turn supplied by the caller.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// History validates the request and converts it to the conversation sent to
// the model.
func (r *GenerateRequest) History() ([]provider.Message, error) {
	history := make([]provider.Message, 0, len(r.Messages)+1)
	for i, m := range r.Messages {
		role, err := parseRole(m.Role)
		if err != nil {
			return nil, fmt.Errorf("messages[%d]: %w", i, err)
		}
		if strings.TrimSpace(m.Content) == "" {
			return nil, fmt.Errorf("messages[%d]: content is required", i)
		}
		history = append(history, provider.Message{Role: role, Content: m.Content})
	}

	if strings.TrimSpace(r.Prompt) != "" {
		history = append(history, provider.Message{Role: provider.RoleUser, Content: r.Prompt})
	}

	if len(history) == 0 {
		return nil, ErrEmptyInput
	}
	if history[len(history)-1].Role != provider.RoleUser {
		return nil, ErrLastNotUser
	}
	return history, nil
}

func parseRole(role string) (provider.Role, error) {
	switch strings.ToLower(role) {
	case "user":
		return provider.RoleUser, nil
	case "assistant", "model":
		return provider.RoleAssistant, nil
	default:
		return "", fmt.Errorf("unknown role %q", role)
	}
}
