package toolserver

import (
	"context"
	stdjson "encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"

	"github.com/souvik0908/sei-sense/internal/app/port"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	protocolVersion = "2024-11-05"
	serverName      = "sei-sense"
	serverVersion   = "0.1.0"

	defaultHeartbeat = 30 * time.Second

	codeMethodNotFound = -32601
)

type rpcRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      any             `json:"id"`
	Method  string          `json:"method"`
	Params  stdjson.RawMessage `json:"params"`
}

type rpcResponse struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      any       `json:"id,omitempty"`
	Result  any       `json:"result,omitempty"`
	Error   *rpcError `json:"error,omitempty"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type toolCallParams struct {
	Name      string          `json:"name"`
	Arguments stdjson.RawMessage `json:"arguments"`
}

type toolDescriptor struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
}

type textContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type toolCallResult struct {
	Content []textContent `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// ToolServer exposes the tool catalog over an SSE stream plus a message
// endpoint speaking JSON-RPC 2.0.
type ToolServer struct {
	sessions  *SessionRegistry
	tools     port.ToolExecutor
	heartbeat time.Duration
	logger    port.Logger
}

// NewToolServer creates a new instance of ToolServer.
func NewToolServer(sessions *SessionRegistry, tools port.ToolExecutor, heartbeat time.Duration, l port.Logger) *ToolServer {
	if heartbeat <= 0 {
		heartbeat = defaultHeartbeat
	}
	return &ToolServer{
		sessions:  sessions,
		tools:     tools,
		heartbeat: heartbeat,
		logger:    l,
	}
}

// RegisterRoutes attaches the tool protocol endpoints to the router.
func (s *ToolServer) RegisterRoutes(router *gin.Engine) {
	router.GET("/sse", s.StreamHandler)
	router.POST("/messages", s.MessageHandler)
}

// StreamHandler opens the event stream for one tool session. The first
// event tells the client where to post messages; afterwards the handler
// relays queued responses until the client disconnects.
func (s *ToolServer) StreamHandler(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	session := s.sessions.Register()
	defer s.sessions.Remove(session.ID)

	fmt.Fprintf(c.Writer, "event: endpoint\n")
	fmt.Fprintf(c.Writer, "data: /messages?sessionId=%s\n\n", session.ID)
	c.Writer.Flush()

	// comment heartbeat keeps proxies from closing the idle stream
	heartbeat := time.NewTicker(s.heartbeat)
	defer heartbeat.Stop()

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(c.Writer, ": ping\n\n")
			c.Writer.Flush()
		case payload, open := <-session.Out:
			if !open {
				return
			}
			fmt.Fprintf(c.Writer, "event: message\n")
			fmt.Fprintf(c.Writer, "data: %s\n\n", payload)
			c.Writer.Flush()
		}
	}
}

// MessageHandler accepts one JSON-RPC request for a session, dispatches it
// and queues the response onto the session's stream.
func (s *ToolServer) MessageHandler(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if _, ok := s.sessions.Get(sessionID); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown session"})
		return
	}

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable request body"})
		return
	}

	var req rpcRequest
	if err := json.Unmarshal(body, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed JSON-RPC request"})
		return
	}

	// notifications expect no response
	if strings.HasPrefix(req.Method, "notifications/") {
		c.Status(http.StatusAccepted)
		return
	}

	response := s.dispatch(c.Request.Context(), &req)
	payload, err := json.Marshal(response)
	if err != nil {
		s.logger.Error("Failed to encode tool protocol response", "error", err, "method", req.Method)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "response encoding failed"})
		return
	}

	if !s.sessions.Push(sessionID, payload) {
		c.JSON(http.StatusGone, gin.H{"error": "session closed"})
		return
	}
	c.Status(http.StatusAccepted)
}

func (s *ToolServer) dispatch(ctx context.Context, req *rpcRequest) *rpcResponse {
	response := &rpcResponse{JSONRPC: "2.0", ID: req.ID}

	switch req.Method {
	case "initialize":
		response.Result = map[string]any{
			"protocolVersion": protocolVersion,
			"serverInfo": map[string]any{
				"name":    serverName,
				"version": serverVersion,
			},
			"capabilities": map[string]any{
				"tools": map[string]any{},
			},
		}
	case "ping":
		response.Result = map[string]any{}
	case "tools/list":
		specs := s.tools.Specs()
		descriptors := make([]toolDescriptor, 0, len(specs))
		for _, spec := range specs {
			descriptors = append(descriptors, toolDescriptor{
				Name:        spec.Name,
				Description: spec.Description,
				InputSchema: spec.Parameters,
			})
		}
		response.Result = map[string]any{"tools": descriptors}
	case "tools/call":
		response.Result = s.callTool(ctx, req.Params)
	default:
		response.Error = &rpcError{Code: codeMethodNotFound, Message: fmt.Sprintf("method %q not supported", req.Method)}
	}
	return response
}

// callTool runs one tool and wraps the outcome as content blocks. Failures
// become error-flagged content rather than protocol errors so the calling
// model can read them.
func (s *ToolServer) callTool(ctx context.Context, params stdjson.RawMessage) toolCallResult {
	var call toolCallParams
	if err := json.Unmarshal(params, &call); err != nil {
		return errorContent("malformed tool call parameters: " + err.Error())
	}

	result, err := s.tools.Execute(ctx, call.Name, call.Arguments)
	if err != nil {
		return errorContent(err.Error())
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return errorContent("failed to encode tool result: " + err.Error())
	}
	return toolCallResult{Content: []textContent{{Type: "text", Text: string(payload)}}}
}

func errorContent(msg string) toolCallResult {
	return toolCallResult{
		Content: []textContent{{Type: "text", Text: msg}},
		IsError: true,
	}
}
