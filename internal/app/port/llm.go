package port

import "context"

// ChatMessage is one turn of a model conversation.
type ChatMessage struct {
	Role    string
	Content string
}

// ToolSpec describes a callable tool to the language model. Parameters is a
// JSON-schema object.
type ToolSpec struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// ToolCall is the model's request to invoke a tool with JSON-encoded
// arguments.
type ToolCall struct {
	Name      string
	Arguments []byte
}

// CompletionResult carries the model's answer: either free text or a tool
// invocation request, never both.
type CompletionResult struct {
	Text     string
	ToolCall *ToolCall
}

// LLMClient talks to an OpenAI-compatible chat completion endpoint.
type LLMClient interface {
	Complete(ctx context.Context, messages []ChatMessage, tools []ToolSpec) (*CompletionResult, error)
}
