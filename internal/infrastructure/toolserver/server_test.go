package toolserver

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/souvik0908/sei-sense/internal/app/port"
)

type fakeExecutor struct {
	specs  []port.ToolSpec
	result any
	err    error

	calledTool string
	calledArgs []byte
}

func (f *fakeExecutor) Specs() []port.ToolSpec {
	return f.specs
}

func (f *fakeExecutor) Execute(ctx context.Context, name string, args []byte) (any, error) {
	f.calledTool = name
	f.calledArgs = args
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func newTestServer(executor *fakeExecutor) (*gin.Engine, *SessionRegistry) {
	gin.SetMode(gin.TestMode)
	sessions := NewSessionRegistry(nopLogger{})
	server := NewToolServer(sessions, executor, 0, nopLogger{})
	router := gin.New()
	server.RegisterRoutes(router)
	return router, sessions
}

// postMessage submits one JSON-RPC request and returns the queued response.
func postMessage(t *testing.T, router *gin.Engine, session *Session, body string) *rpcResponse {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages?sessionId="+session.ID, bytes.NewBufferString(body))
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	select {
	case payload := <-session.Out:
		var response rpcResponse
		require.NoError(t, json.Unmarshal(payload, &response))
		return &response
	default:
		t.Fatal("no response queued on the session")
		return nil
	}
}

func TestMessageHandlerUnknownSession(t *testing.T) {
	router, _ := newTestServer(&fakeExecutor{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages?sessionId=missing", bytes.NewBufferString(`{}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMessageHandlerMalformedBody(t *testing.T) {
	router, sessions := newTestServer(&fakeExecutor{})
	session := sessions.Register()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages?sessionId="+session.ID, bytes.NewBufferString(`{not json`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageHandlerNotifications(t *testing.T) {
	router, sessions := newTestServer(&fakeExecutor{})
	session := sessions.Register()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/messages?sessionId="+session.ID,
		bytes.NewBufferString(`{"jsonrpc":"2.0","method":"notifications/initialized"}`))
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusAccepted, w.Code)

	// notifications produce no queued response
	select {
	case payload := <-session.Out:
		t.Fatalf("unexpected response queued: %s", payload)
	default:
	}
}

func TestDispatchInitialize(t *testing.T) {
	router, sessions := newTestServer(&fakeExecutor{})
	session := sessions.Register()

	response := postMessage(t, router, session, `{"jsonrpc":"2.0","id":1,"method":"initialize"}`)
	require.Nil(t, response.Error)

	result, ok := response.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, protocolVersion, result["protocolVersion"])
	info, ok := result["serverInfo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, serverName, info["name"])
}

func TestDispatchToolsList(t *testing.T) {
	executor := &fakeExecutor{specs: []port.ToolSpec{
		{Name: "get_balance", Description: "native balance", Parameters: map[string]any{"type": "object"}},
		{Name: "get_block", Description: "block lookup", Parameters: map[string]any{"type": "object"}},
	}}
	router, sessions := newTestServer(executor)
	session := sessions.Register()

	response := postMessage(t, router, session, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	require.Nil(t, response.Error)

	result := response.Result.(map[string]any)
	tools := result["tools"].([]any)
	require.Len(t, tools, 2)
	first := tools[0].(map[string]any)
	assert.Equal(t, "get_balance", first["name"])
	assert.Equal(t, "native balance", first["description"])
}

func TestDispatchToolsCall(t *testing.T) {
	executor := &fakeExecutor{result: map[string]any{"wei": "1000"}}
	router, sessions := newTestServer(executor)
	session := sessions.Register()

	response := postMessage(t, router, session,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"get_balance","arguments":{"address":"0x1"}}}`)
	require.Nil(t, response.Error)

	assert.Equal(t, "get_balance", executor.calledTool)
	assert.JSONEq(t, `{"address":"0x1"}`, string(executor.calledArgs))

	result := response.Result.(map[string]any)
	content := result["content"].([]any)
	require.Len(t, content, 1)
	block := content[0].(map[string]any)
	assert.Equal(t, "text", block["type"])
	assert.JSONEq(t, `{"wei":"1000"}`, block["text"].(string))
	_, flagged := result["isError"]
	assert.False(t, flagged)
}

func TestDispatchToolsCallFailure(t *testing.T) {
	executor := &fakeExecutor{err: errors.New("unknown tool \"nope\"")}
	router, sessions := newTestServer(executor)
	session := sessions.Register()

	response := postMessage(t, router, session,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"nope","arguments":{}}}`)
	require.Nil(t, response.Error)

	// tool failures are flagged content, not protocol errors
	result := response.Result.(map[string]any)
	assert.Equal(t, true, result["isError"])
	content := result["content"].([]any)
	require.Len(t, content, 1)
	assert.Contains(t, content[0].(map[string]any)["text"], "unknown tool")
}

func TestDispatchPing(t *testing.T) {
	router, sessions := newTestServer(&fakeExecutor{})
	session := sessions.Register()

	response := postMessage(t, router, session, `{"jsonrpc":"2.0","id":5,"method":"ping"}`)
	require.Nil(t, response.Error)
	assert.NotNil(t, response.Result)
}

func TestDispatchUnknownMethod(t *testing.T) {
	router, sessions := newTestServer(&fakeExecutor{})
	session := sessions.Register()

	response := postMessage(t, router, session, `{"jsonrpc":"2.0","id":6,"method":"resources/list"}`)
	require.NotNil(t, response.Error)
	assert.Equal(t, codeMethodNotFound, response.Error.Code)
}
