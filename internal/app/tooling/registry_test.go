package tooling

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, args ...any)  {}
func (nopLogger) Debug(msg string, args ...any) {}
func (nopLogger) Warn(msg string, args ...any)  {}
func (nopLogger) Error(msg string, args ...any) {}

func TestRegistrySpecsPreserveOrder(t *testing.T) {
	r := NewRegistry(nopLogger{})
	for _, name := range []string{"get_balance", "get_block", "get_transaction"} {
		r.Register(Tool{
			Name:        name,
			Description: "does " + name,
			InputSchema: map[string]any{"type": "object"},
			Handler: func(ctx context.Context, args []byte) (any, error) {
				return nil, nil
			},
		})
	}

	specs := r.Specs()
	require.Len(t, specs, 3)
	assert.Equal(t, "get_balance", specs[0].Name)
	assert.Equal(t, "get_block", specs[1].Name)
	assert.Equal(t, "get_transaction", specs[2].Name)
	assert.Equal(t, "does get_block", specs[1].Description)
}

func TestRegistryExecute(t *testing.T) {
	r := NewRegistry(nopLogger{})

	var gotArgs []byte
	r.Register(Tool{
		Name: "echo",
		Handler: func(ctx context.Context, args []byte) (any, error) {
			gotArgs = args
			return map[string]any{"ok": true}, nil
		},
	})
	r.Register(Tool{
		Name: "broken",
		Handler: func(ctx context.Context, args []byte) (any, error) {
			return nil, errors.New("handler blew up")
		},
	})

	t.Run("handler receives raw arguments", func(t *testing.T) {
		result, err := r.Execute(context.Background(), "echo", []byte(`{"address":"0x1"}`))
		require.NoError(t, err)
		assert.Equal(t, map[string]any{"ok": true}, result)
		assert.JSONEq(t, `{"address":"0x1"}`, string(gotArgs))
	})

	t.Run("handler errors pass through", func(t *testing.T) {
		_, err := r.Execute(context.Background(), "broken", nil)
		assert.EqualError(t, err, "handler blew up")
	})

	t.Run("unknown tool is a validation error", func(t *testing.T) {
		_, err := r.Execute(context.Background(), "no_such_tool", nil)
		var valErr *entity.ValidationError
		require.True(t, errors.As(err, &valErr))
		assert.Contains(t, err.Error(), "no_such_tool")
	})
}

func TestRegistryRejectsDuplicateNames(t *testing.T) {
	r := NewRegistry(nopLogger{})
	tool := Tool{Name: "get_balance", Handler: func(ctx context.Context, args []byte) (any, error) { return nil, nil }}
	r.Register(tool)

	assert.Panics(t, func() { r.Register(tool) })
}
