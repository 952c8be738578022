// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/grocermind/grocermind/model"
	"github.com/grocermind/grocermind/retrieval"
	"github.com/grocermind/grocermind/tool"
)

// DefaultMaxToolTurns bounds the tool-calling loop
const DefaultMaxToolTurns = 10

// ErrMaxToolTurnsExceeded is returned when the tool loop does not converge
var ErrMaxToolTurnsExceeded = errors.New("maximum tool turns exceeded")

const actionInstructions = `You are an action-oriented assistant for an online grocery store.

You have access to tools to help customers:
- get_item_price: Check prices of items
- add_to_cart: Add items to shopping cart
- get_cart_summary: View cart contents
- calculate_budget: Check if items fit within budget
- create_refund: Process refunds for orders
- get_stock_price: Check real-time stock

Guidelines:
- Use tools to perform actions
- Be proactive in suggesting actions
- Provide clear feedback on tool results`

// ActionAgent executes tool-backed requests: prices, cart operations,
// budget checks, refunds and stock lookups. Each model response either
// carries tool calls, which are executed and fed back, or a final answer.
type ActionAgent struct {
	provider  model.Provider
	retriever retrieval.ContextProvider
	tools     []tool.Tool
	modelName string
	maxTurns  int
}

func NewActionAgent(provider model.Provider, retriever retrieval.ContextProvider, tools []tool.Tool, modelName string) *ActionAgent {
	return &ActionAgent{
		provider:  provider,
		retriever: retriever,
		tools:     tools,
		modelName: modelName,
		maxTurns:  DefaultMaxToolTurns,
	}
}

func (a *ActionAgent) Name() string { return "action" }

func (a *ActionAgent) Respond(ctx context.Context, input string) (string, error) {
	docContext, err := a.retriever.Context(ctx, input, "product")
	if err != nil {
		return "", fmt.Errorf("retrieving product context: %w", err)
	}

	settings := model.DefaultSettings()
	settings.Model = a.modelName
	settings.Tools = tool.Definitions(a.tools)

	messages := []model.Message{
		{Role: "system", Content: actionInstructions},
		{Role: "user", Content: fmt.Sprintf("Product Context: %s\n\nTask: %s", docContext, input)},
	}

	for turn := 0; turn < a.maxTurns; turn++ {
		response, err := a.provider.CreateChatCompletion(ctx, messages, settings)
		if err != nil {
			return "", fmt.Errorf("action completion failed: %w", err)
		}

		if len(response.Message.ToolCalls) == 0 {
			return response.Message.Content, nil
		}

		messages = append(messages, response.Message)
		toolMessages, err := a.executeToolCalls(ctx, response.Message.ToolCalls)
		if err != nil {
			return "", err
		}
		messages = append(messages, toolMessages...)
	}

	return "", ErrMaxToolTurnsExceeded
}

func (a *ActionAgent) executeToolCalls(ctx context.Context, calls []model.ToolCall) ([]model.Message, error) {
	responses := make([]model.Message, 0, len(calls))
	for _, tc := range calls {
		var content string

		found := a.findTool(tc.Function.Name)
		if found == nil {
			content = fmt.Sprintf("Error: Tool '%s' not found", tc.Function.Name)
		} else {
			log.Debug().Str("tool", tc.Function.Name).Str("args", tc.Function.Arguments).Msg("executing tool")
			result, err := found.Invoke(ctx, tc.Function.Arguments)
			if err != nil {
				return nil, fmt.Errorf("tool %s failed: %w", tc.Function.Name, err)
			}
			content = result
		}

		responses = append(responses, model.Message{
			Role:       "tool",
			ToolCallID: tc.ID,
			Content:    content,
		})
	}
	return responses, nil
}

func (a *ActionAgent) findTool(name string) tool.Tool {
	for _, t := range a.tools {
		if t.Name() == name {
			return t
		}
	}
	return nil
}
