package tooling

import (
	"context"
	"fmt"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
	"github.com/souvik0908/sei-sense/pkg/metrics"
)

// HandlerFunc executes one tool call with raw JSON arguments.
type HandlerFunc func(ctx context.Context, args []byte) (any, error)

// Tool couples an advertised description with its handler.
type Tool struct {
	Name        string
	Description string
	InputSchema map[string]any
	Handler     HandlerFunc
}

// Registry implements port.ToolExecutor. Registration order is preserved so
// the advertised catalog stays stable across restarts.
type Registry struct {
	tools  map[string]Tool
	order  []string
	logger port.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(l port.Logger) *Registry {
	return &Registry{
		tools:  make(map[string]Tool),
		logger: l,
	}
}

// Register adds a tool to the catalog. Registering a name twice panics, two
// handlers under one name is a wiring bug.
func (r *Registry) Register(t Tool) {
	if _, exists := r.tools[t.Name]; exists {
		panic(fmt.Sprintf("tool %q registered twice", t.Name))
	}
	r.tools[t.Name] = t
	r.order = append(r.order, t.Name)
}

// Specs returns the advertised tool descriptions in registration order.
func (r *Registry) Specs() []port.ToolSpec {
	specs := make([]port.ToolSpec, 0, len(r.order))
	for _, name := range r.order {
		t := r.tools[name]
		specs = append(specs, port.ToolSpec{
			Name:        t.Name,
			Description: t.Description,
			Parameters:  t.InputSchema,
		})
	}
	return specs
}

// Execute runs the named tool. An unknown name is a caller error, not a
// crash: models and remote clients routinely ask for tools that do not
// exist.
func (r *Registry) Execute(ctx context.Context, name string, args []byte) (any, error) {
	tool, ok := r.tools[name]
	if !ok {
		metrics.ToolInvocationsTotal.WithLabelValues(name, "unknown").Inc()
		return nil, &entity.ValidationError{Field: "tool", Msg: fmt.Sprintf("unknown tool %q", name)}
	}

	result, err := tool.Handler(ctx, args)
	if err != nil {
		metrics.ToolInvocationsTotal.WithLabelValues(name, "error").Inc()
		r.logger.Warn("Tool execution failed", "tool", name, "error", err)
		return nil, err
	}
	metrics.ToolInvocationsTotal.WithLabelValues(name, "ok").Inc()
	r.logger.Debug("Tool executed", "tool", name)
	return result, nil
}
