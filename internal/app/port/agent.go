package port

import (
	"context"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

// ToolExecutor exposes a tool catalog to callers that dispatch by name: the
// language model loop and the tool protocol server.
type ToolExecutor interface {
	// Specs returns the advertised tool descriptions in registration order.
	Specs() []ToolSpec

	// Execute runs the named tool with JSON-encoded arguments.
	Execute(ctx context.Context, name string, args []byte) (any, error)
}

// AgentService defines the interface for the natural language gateway.
type AgentService interface {
	// Ask answers a free-form question about chain state, letting the model
	// call gateway tools when it needs live data.
	Ask(ctx context.Context, prompt string) (*entity.AgentReply, error)
}
