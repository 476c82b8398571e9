package toolmanager

import (
	"context"

	"github.com/Cyclone1070/agentgate/internal/tool"
)

// Tool is anything the registry can dispatch. tool.Typed implements it.
type Tool interface {
	// Name returns the tool's identifier.
	Name() string

	// Declaration returns the tool's schema for the LLM.
	Declaration() tool.Declaration

	// Call runs the tool with the model's raw arguments.
	Call(ctx context.Context, args map[string]any) (map[string]any, error)
}
