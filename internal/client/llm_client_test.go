package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/souvik0908/sei-sense/internal/app/port"
)

func newTestClient(baseURL string, retries int) *OpenAICompatibleClient {
	return NewOpenAICompatibleClient(baseURL, "test-key", "test-model",
		5*time.Second, retries, time.Millisecond, zap.NewNop())
}

func userTurn(content string) []port.ChatMessage {
	return []port.ChatMessage{{Role: "user", Content: content}}
}

func TestCompleteTextResponse(t *testing.T) {
	var gotBody []byte
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-1","choices":[{"index":0,"message":{"role":"assistant","content":"The balance is 2.5 SEI."},"finish_reason":"stop"}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 1)
	result, err := c.Complete(context.Background(), userTurn("what is the balance?"), nil)
	require.NoError(t, err)

	assert.Equal(t, "The balance is 2.5 SEI.", result.Text)
	assert.Nil(t, result.ToolCall)
	assert.Equal(t, "Bearer test-key", gotAuth)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	assert.Equal(t, "test-model", sent["model"])
	assert.NotContains(t, sent, "tools")
}

func TestCompleteToolCall(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"chatcmpl-2","choices":[{"index":0,"message":{"role":"assistant","content":"","tool_calls":[` +
			`{"id":"call_1","type":"function","function":{"name":"get_balance","arguments":"{\"address\":\"0xabc\"}"}}]},` +
			`"finish_reason":"tool_calls"}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 1)
	tools := []port.ToolSpec{{Name: "get_balance", Description: "native balance", Parameters: map[string]any{"type": "object"}}}
	result, err := c.Complete(context.Background(), userTurn("balance of 0xabc?"), tools)
	require.NoError(t, err)

	require.NotNil(t, result.ToolCall)
	assert.Equal(t, "get_balance", result.ToolCall.Name)
	assert.JSONEq(t, `{"address":"0xabc"}`, string(result.ToolCall.Arguments))
}

func TestCompleteAdvertisesTools(t *testing.T) {
	var gotBody []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"ok"}}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 1)
	tools := []port.ToolSpec{{Name: "get_block", Description: "block lookup", Parameters: map[string]any{"type": "object"}}}
	_, err := c.Complete(context.Background(), userTurn("hi"), tools)
	require.NoError(t, err)

	var sent struct {
		Tools []struct {
			Type     string `json:"type"`
			Function struct {
				Name string `json:"name"`
			} `json:"function"`
		} `json:"tools"`
	}
	require.NoError(t, json.Unmarshal(gotBody, &sent))
	require.Len(t, sent.Tools, 1)
	assert.Equal(t, "function", sent.Tools[0].Type)
	assert.Equal(t, "get_block", sent.Tools[0].Function.Name)
}

func TestCompleteEmptyAPIKey(t *testing.T) {
	c := NewOpenAICompatibleClient("http://localhost:1", "", "test-model",
		time.Second, 1, time.Millisecond, zap.NewNop())
	_, err := c.Complete(context.Background(), userTurn("hi"), nil)
	assert.ErrorContains(t, err, "API key")
}

func TestCompleteNon200Status(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 2)
	_, err := c.Complete(context.Background(), userTurn("hi"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestCompleteMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 1)
	_, err := c.Complete(context.Background(), userTurn("hi"), nil)
	assert.Error(t, err)
}

func TestCompleteAPIErrorPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error":{"message":"model overloaded","type":"server_error","code":"overloaded"}}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 1)
	_, err := c.Complete(context.Background(), userTurn("hi"), nil)
	assert.ErrorContains(t, err, "model overloaded")
}

func TestCompleteNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 1)
	_, err := c.Complete(context.Background(), userTurn("hi"), nil)
	assert.ErrorContains(t, err, "no choices")
}

func TestCompleteRetriesThenSucceeds(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"recovered"}}]}`))
	}))
	defer server.Close()

	c := newTestClient(server.URL, 3)
	result, err := c.Complete(context.Background(), userTurn("hi"), nil)
	require.NoError(t, err)
	assert.Equal(t, "recovered", result.Text)
	assert.Equal(t, 2, attempts)
}
