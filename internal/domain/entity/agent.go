package entity

// AgentReply is the answer to a natural language query. When the model chose
// to call a tool, Tool and ToolResult carry what was executed and what it
// returned alongside the prose answer.
type AgentReply struct {
	Answer     string `json:"answer"`
	Tool       string `json:"tool,omitempty"`
	ToolResult any    `json:"toolResult,omitempty"`
}
