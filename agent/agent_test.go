// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grocermind/grocermind/model"
	"github.com/grocermind/grocermind/retrieval"
	"github.com/grocermind/grocermind/store"
	"github.com/grocermind/grocermind/tool"
)

// scriptedProvider replays a fixed sequence of responses and records the
// message history of each call.
type scriptedProvider struct {
	responses []*model.Response
	err       error
	calls     [][]model.Message
}

func (p *scriptedProvider) CreateChatCompletion(ctx context.Context, messages []model.Message, settings model.Settings) (*model.Response, error) {
	p.calls = append(p.calls, messages)
	if p.err != nil {
		return nil, p.err
	}
	if len(p.responses) == 0 {
		return &model.Response{Message: model.Message{Role: "assistant", Content: "done"}}, nil
	}
	response := p.responses[0]
	p.responses = p.responses[1:]
	return response, nil
}

func textResponse(content string) *model.Response {
	return &model.Response{Message: model.Message{Role: "assistant", Content: content}}
}

func toolCallResponse(id, name, args string) *model.Response {
	return &model.Response{Message: model.Message{
		Role: "assistant",
		ToolCalls: []model.ToolCall{
			{ID: id, Type: "function", Function: model.FunctionCall{Name: name, Arguments: args}},
		},
	}}
}

func TestFAQAgentIncludesContext(t *testing.T) {
	provider := &scriptedProvider{responses: []*model.Response{textResponse("Returns are accepted within 30 days.")}}
	a := NewFAQAgent(provider, retrieval.Static("Return policy: 30 days with receipt."), "gpt-4o")

	response, err := a.Respond(context.Background(), "What is your return policy?")
	require.NoError(t, err)
	assert.Equal(t, "Returns are accepted within 30 days.", response)

	require.Len(t, provider.calls, 1)
	userMessage := provider.calls[0][1]
	assert.Contains(t, userMessage.Content, "Return policy: 30 days with receipt.")
	assert.Contains(t, userMessage.Content, "What is your return policy?")
}

func TestFAQAgentProviderError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("model unavailable")}
	a := NewFAQAgent(provider, retrieval.Static(""), "gpt-4o")

	_, err := a.Respond(context.Background(), "What is your return policy?")
	assert.Error(t, err)
}

func TestActionAgentToolLoop(t *testing.T) {
	catalog := store.NewCatalog([]store.Product{{Name: "Whole Milk", Price: 3.99, InStock: true}})
	provider := &scriptedProvider{responses: []*model.Response{
		toolCallResponse("call_1", "get_item_price", `{"item": "milk"}`),
		textResponse("Whole Milk costs $3.99."),
	}}
	a := NewActionAgent(provider, retrieval.Static(""), []tool.Tool{tool.NewPriceTool(catalog)}, "gpt-4o")

	response, err := a.Respond(context.Background(), "How much is milk?")
	require.NoError(t, err)
	assert.Equal(t, "Whole Milk costs $3.99.", response)

	// Second call must carry the assistant tool call and the tool result.
	require.Len(t, provider.calls, 2)
	second := provider.calls[1]
	require.Len(t, second, 4)
	assert.Equal(t, "assistant", second[2].Role)
	assert.Equal(t, "tool", second[3].Role)
	assert.Equal(t, "call_1", second[3].ToolCallID)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(second[3].Content), &result))
	assert.Equal(t, true, result["success"])
}

func TestActionAgentUnknownTool(t *testing.T) {
	provider := &scriptedProvider{responses: []*model.Response{
		toolCallResponse("call_1", "launch_rocket", `{}`),
		textResponse("I can't do that."),
	}}
	a := NewActionAgent(provider, retrieval.Static(""), nil, "gpt-4o")

	response, err := a.Respond(context.Background(), "launch a rocket")
	require.NoError(t, err)
	assert.Equal(t, "I can't do that.", response)

	toolMessage := provider.calls[1][3]
	assert.Equal(t, "Error: Tool 'launch_rocket' not found", toolMessage.Content)
}

func TestActionAgentMaxTurns(t *testing.T) {
	responses := make([]*model.Response, 0, DefaultMaxToolTurns)
	for i := 0; i < DefaultMaxToolTurns; i++ {
		responses = append(responses, toolCallResponse(fmt.Sprintf("call_%d", i), "missing_tool", `{}`))
	}
	provider := &scriptedProvider{responses: responses}
	a := NewActionAgent(provider, retrieval.Static(""), nil, "gpt-4o")

	_, err := a.Respond(context.Background(), "loop forever")
	assert.ErrorIs(t, err, ErrMaxToolTurnsExceeded)
	assert.Len(t, provider.calls, DefaultMaxToolTurns)
}

func TestActionAgentOffersToolDefinitions(t *testing.T) {
	catalog := store.NewCatalog(nil)
	provider := &scriptedProvider{responses: []*model.Response{textResponse("nothing to do")}}
	a := NewActionAgent(provider, retrieval.Static(""), []tool.Tool{tool.NewPriceTool(catalog), tool.NewBudgetTool(catalog, nil, "")}, "gpt-4o")

	_, err := a.Respond(context.Background(), "hello")
	require.NoError(t, err)
}

func TestGeneralAgentEnglishNoHint(t *testing.T) {
	provider := &scriptedProvider{responses: []*model.Response{textResponse("Hello! How can I help you shop today?")}}
	a := NewGeneralAgent(provider, "gpt-4o")

	response, err := a.Respond(context.Background(), "Hello there, how are you doing today my friend?")
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help you shop today?", response)

	prompt := provider.calls[0][0].Content
	assert.NotContains(t, prompt, "Reply in")
}

func TestGeneralAgentNonEnglishHint(t *testing.T) {
	provider := &scriptedProvider{responses: []*model.Response{textResponse("¡Hola! ¿En qué puedo ayudarte?")}}
	a := NewGeneralAgent(provider, "gpt-4o")

	_, err := a.Respond(context.Background(), "Hola, necesito ayuda con mi lista de compras para la semana, por favor.")
	require.NoError(t, err)

	prompt := provider.calls[0][0].Content
	assert.Contains(t, prompt, "Reply in Spanish.")
}

func TestAgentNames(t *testing.T) {
	provider := &scriptedProvider{}
	assert.Equal(t, "faq", NewFAQAgent(provider, retrieval.Static(""), "gpt-4o").Name())
	assert.Equal(t, "action", NewActionAgent(provider, retrieval.Static(""), nil, "gpt-4o").Name())
	assert.Equal(t, "general", NewGeneralAgent(provider, "gpt-4o").Name())
}
