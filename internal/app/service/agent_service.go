package service

import (
	"context"
	"fmt"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/souvik0908/sei-sense/internal/app/port"
	"github.com/souvik0908/sei-sense/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const agentSystemPrompt = `You are an assistant for the Sei blockchain. You answer questions about ` +
	`accounts, balances, blocks, transactions, tokens and NFTs on Sei networks. Use the provided tools ` +
	`to fetch live chain data whenever the question needs it. Amounts in tool results are exact decimal ` +
	`strings. Answer concisely with the concrete values you found.`

// AgentServiceImpl implements port.AgentService.
type AgentServiceImpl struct {
	llm    port.LLMClient
	tools  port.ToolExecutor
	logger port.Logger
}

// NewAgentService creates a new instance of AgentServiceImpl.
func NewAgentService(llm port.LLMClient, tools port.ToolExecutor, l port.Logger) port.AgentService {
	return &AgentServiceImpl{
		llm:    llm,
		tools:  tools,
		logger: l,
	}
}

// Ask answers a free-form question. When the model requests a tool the call
// is executed and a second completion turns the raw result into prose. A
// failed tool still produces an answer explaining the failure; only model
// transport errors fail the whole request.
func (s *AgentServiceImpl) Ask(ctx context.Context, prompt string) (*entity.AgentReply, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, &entity.ValidationError{Field: "prompt", Msg: "prompt must not be empty"}
	}

	messages := []port.ChatMessage{
		{Role: "system", Content: agentSystemPrompt},
		{Role: "user", Content: prompt},
	}
	result, err := s.llm.Complete(ctx, messages, s.tools.Specs())
	if err != nil {
		return nil, fmt.Errorf("language model request failed: %w", err)
	}
	if result.ToolCall == nil {
		return &entity.AgentReply{Answer: result.Text}, nil
	}

	call := result.ToolCall
	s.logger.Info("Model requested tool", "tool", call.Name)
	toolResult, toolErr := s.tools.Execute(ctx, call.Name, call.Arguments)

	var resultText string
	if toolErr != nil {
		resultText = fmt.Sprintf("tool %s failed: %v", call.Name, toolErr)
	} else if encoded, err := json.Marshal(toolResult); err == nil {
		resultText = string(encoded)
	} else {
		resultText = fmt.Sprintf("%v", toolResult)
	}

	reply := &entity.AgentReply{Tool: call.Name, ToolResult: toolResult}
	if toolErr != nil {
		reply.ToolResult = map[string]any{"error": toolErr.Error()}
	}

	summary, err := s.llm.Complete(ctx, []port.ChatMessage{
		{Role: "system", Content: agentSystemPrompt},
		{Role: "user", Content: prompt},
		{Role: "assistant", Content: fmt.Sprintf("I called the %s tool and it returned: %s", call.Name, resultText)},
		{Role: "user", Content: "Answer the original question using that result. If the tool failed, explain what went wrong."},
	}, nil)
	if err != nil || summary.ToolCall != nil {
		s.logger.Warn("Summary generation failed, returning raw tool output", "tool", call.Name, "error", err)
		reply.Answer = resultText
		return reply, nil
	}

	reply.Answer = summary.Text
	return reply, nil
}
