package loop

import (
	"context"
	"iter"

	"github.com/Cyclone1070/agentgate/internal/provider"
	"github.com/Cyclone1070/agentgate/internal/tool"
	"github.com/Cyclone1070/agentgate/internal/workflow"
)

// llmProvider streams a model response.
type llmProvider interface {
	// GenerateStream sends the conversation and tool schemas to the model and
	// yields the response as it is produced. The sequence stops at the
	// first error.
	GenerateStream(ctx context.Context, messages []provider.Message, tools []tool.Declaration) iter.Seq2[provider.Delta, error]
}

// toolManager manages tool storage and execution.
type toolManager interface {
	// Declarations returns all tool schemas for the LLM.
	Declarations() []tool.Declaration

	// ExecuteAll runs one step's calls and returns a result per call.
	// It fails only when ctx is done.
	ExecuteAll(ctx context.Context, calls []provider.ToolCall, events chan<- workflow.Event) ([]provider.ToolResult, error)
}
