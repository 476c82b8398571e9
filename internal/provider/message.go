package provider

// Role identifies who authored a message in the conversation.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Message is one turn of a conversation.
// Assistant messages may carry ToolCalls; tool messages carry the matching ToolResults.
type Message struct {
	Role        Role
	Content     string
	ToolCalls   []ToolCall
	ToolResults []ToolResult
}

// ToolCall is a tool invocation requested by the model.
type ToolCall struct {
	ID   string // May be empty; Gemini does not always assign IDs
	Name string
	Args map[string]any

	// Signature is an opaque token the model attaches to a call.
	// It must be sent back unchanged with the call in later turns.
	Signature []byte
}

// ToolResult is the outcome of exactly one ToolCall.
type ToolResult struct {
	ID     string
	Name   string
	Output map[string]any
	Error  string
}

// Failed reports whether the tool could not produce a result.
func (r ToolResult) Failed() bool {
	return r.Error != ""
}

// FinishReason explains why the model stopped generating.
type FinishReason string

const (
	FinishReasonNone      FinishReason = ""
	FinishReasonStop      FinishReason = "stop"
	FinishReasonMaxTokens FinishReason = "max_tokens"
	FinishReasonOther     FinishReason = "other"
)

// Delta is one increment of a streamed model response.
// Text deltas arrive in generation order; tool calls arrive whole.
type Delta struct {
	Text         string
	ToolCalls    []ToolCall
	FinishReason FinishReason
}
