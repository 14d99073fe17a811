package client

import (
	"context"
	"fmt"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/pkg/metrics"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// OpenAICompatibleClient implements port.LLMClient against any service
// exposing the OpenAI chat completions API.
type OpenAICompatibleClient struct {
	client     *fasthttp.Client
	baseURL    string
	apiKey     string
	model      string
	timeout    time.Duration
	maxRetries int
	retryDelay time.Duration
	logger     *zap.Logger
}

// NewOpenAICompatibleClient creates a new instance of OpenAICompatibleClient.
func NewOpenAICompatibleClient(baseURL, apiKey, model string, timeout time.Duration, maxRetries int, retryDelay time.Duration, logger *zap.Logger) *OpenAICompatibleClient {
	return &OpenAICompatibleClient{
		client:     &fasthttp.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		timeout:    timeout,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		logger:     logger.Named("LLMClient"),
	}
}

// chatRequest represents the request structure for OpenAI-compatible APIs.
type chatRequest struct {
	Model       string           `json:"model"`
	Messages    []chatMessage    `json:"messages"`
	Temperature float64          `json:"temperature"`
	Tools       []toolDefinition `json:"tools,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type toolDefinition struct {
	Type     string             `json:"type"`
	Function functionDefinition `json:"function"`
}

type functionDefinition struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Parameters  map[string]any `json:"parameters"`
}

// chatResponse represents the response structure from OpenAI-compatible APIs.
type chatResponse struct {
	ID      string    `json:"id"`
	Model   string    `json:"model"`
	Choices []choice  `json:"choices"`
	Error   *apiError `json:"error,omitempty"`
}

type choice struct {
	Index        int             `json:"index"`
	Message      responseMessage `json:"message"`
	FinishReason string          `json:"finish_reason"`
}

type responseMessage struct {
	Role      string         `json:"role"`
	Content   string         `json:"content"`
	ToolCalls []toolCallItem `json:"tool_calls,omitempty"`
}

type toolCallItem struct {
	ID       string           `json:"id"`
	Type     string           `json:"type"`
	Function toolCallFunction `json:"function"`
}

type toolCallFunction struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    string `json:"code"`
}

// Complete sends one chat turn, advertising the given tools, and returns
// either the model's text or its first tool invocation request.
func (c *OpenAICompatibleClient) Complete(ctx context.Context, messages []port.ChatMessage, tools []port.ToolSpec) (*port.CompletionResult, error) {
	if c.apiKey == "" {
		return nil, errors.New("LLM API key is empty")
	}

	reqBody := chatRequest{
		Model:       c.model,
		Temperature: 0.0,
		Messages:    make([]chatMessage, 0, len(messages)),
	}
	for _, m := range messages {
		reqBody.Messages = append(reqBody.Messages, chatMessage{Role: m.Role, Content: m.Content})
	}
	for _, t := range tools {
		reqBody.Tools = append(reqBody.Tools, toolDefinition{
			Type: "function",
			Function: functionDefinition{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  t.Parameters,
			},
		})
	}

	var lastErr error
	for attempt := 0; attempt < c.maxRetries; attempt++ {
		if attempt > 0 {
			c.logger.Warn("Retrying LLM request", zap.Int("attempt", attempt), zap.Error(lastErr))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.retryDelay):
			}
		}

		result, err := c.sendRequest(ctx, reqBody)
		if err != nil {
			metrics.LLMRequestsTotal.WithLabelValues("error").Inc()
			lastErr = err
			continue
		}
		metrics.LLMRequestsTotal.WithLabelValues("ok").Inc()
		return result, nil
	}

	return nil, errors.Wrapf(lastErr, "failed after %d retries", c.maxRetries)
}

func (c *OpenAICompatibleClient) sendRequest(ctx context.Context, reqBody chatRequest) (*port.CompletionResult, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal request")
	}

	requestURL := c.baseURL + "/chat/completions"
	c.logger.Debug("Sending chat completion request", zap.String("url", requestURL), zap.String("model", c.model), zap.Int("tools", len(reqBody.Tools)))

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentTypeBytes([]byte("application/json"))
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.SetBody(jsonData)

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	if deadline, ok := ctx.Deadline(); ok {
		err = c.client.DoDeadline(req, resp, deadline)
	} else {
		err = c.client.DoTimeout(req, resp, c.timeout)
	}
	if err != nil {
		c.logger.Error("Failed to execute LLM request", zap.String("url", requestURL), zap.Error(err))
		return nil, errors.Wrapf(err, "failed to execute request to %s", requestURL)
	}

	rawBody := resp.Body()
	if resp.StatusCode() != fasthttp.StatusOK {
		c.logger.Error("LLM API request failed",
			zap.String("url", requestURL),
			zap.Int("statusCode", resp.StatusCode()),
			zap.ByteString("responseBody", rawBody))
		return nil, fmt.Errorf("LLM API returned status %d: %s", resp.StatusCode(), string(rawBody))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(rawBody, &chatResp); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal response")
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("LLM API error: %s (type: %s, code: %s)",
			chatResp.Error.Message, chatResp.Error.Type, chatResp.Error.Code)
	}
	if len(chatResp.Choices) == 0 {
		return nil, errors.New("LLM API returned no choices")
	}

	msg := chatResp.Choices[0].Message
	if len(msg.ToolCalls) > 0 {
		if len(msg.ToolCalls) > 1 {
			c.logger.Warn("Model requested multiple tool calls, using the first", zap.Int("count", len(msg.ToolCalls)))
		}
		call := msg.ToolCalls[0]
		return &port.CompletionResult{
			ToolCall: &port.ToolCall{
				Name:      call.Function.Name,
				Arguments: []byte(call.Function.Arguments),
			},
		}, nil
	}
	return &port.CompletionResult{Text: msg.Content}, nil
}
