package llm

import "encoding/json"

// Role represents the role of a message sender in a conversation.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// ToolCall is a structured request from the model to invoke one tool.
// Arguments is the raw JSON object supplied by the model.
type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

// ToolDefinition declares a callable tool to the model: its name, a
// human-readable description the model uses to decide when to call it, and a
// JSON Schema for its parameters.
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  json.RawMessage
}

// Message represents a single message in a conversation. Assistant messages
// may carry tool calls; tool messages carry the result for one call,
// attributed by ToolCallID.
type Message struct {
	Role       Role
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

// CompletionRequest contains the parameters for an LLM completion request.
type CompletionRequest struct {
	Model       string
	Messages    []Message
	Tools       []ToolDefinition
	MaxTokens   int
	Temperature float64
}

// CompletionResponse contains the result of an LLM completion request.
// Exactly one of Content or ToolCalls is meaningful: a response carrying
// tool calls is a request for more data, not a final answer.
type CompletionResponse struct {
	Content      string
	ToolCalls    []ToolCall
	InputTokens  int
	OutputTokens int
	Model        string
	FinishReason string
}
