// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package model

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/sashabaranov/go-openai"
)

// OpenAIConfig represents OpenAI provider configuration
type OpenAIConfig struct {
	// APIKey is the OpenAI API key
	APIKey string

	// BaseURL is the custom base URL (optional)
	BaseURL string

	// Organization is the OpenAI Organization (optional)
	Organization string

	// EmbeddingModel is the model used for CreateEmbeddings
	EmbeddingModel string
}

type OpenAIProvider struct {
	config OpenAIConfig
	client *openai.Client
}

func NewOpenAIProvider(config OpenAIConfig) (*OpenAIProvider, error) {
	if config.APIKey == "" {
		config.APIKey = os.Getenv("OPENAI_API_KEY")
		if config.APIKey == "" {
			return nil, errors.New("OpenAI API key is required")
		}
	}
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = string(openai.SmallEmbedding3)
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}
	if config.Organization != "" {
		clientConfig.OrgID = config.Organization
	}

	return &OpenAIProvider{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}, nil
}

// NewDefaultOpenAIProvider creates an OpenAI provider using API key from environment variables
func NewDefaultOpenAIProvider() (*OpenAIProvider, error) {
	return NewOpenAIProvider(OpenAIConfig{})
}

func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, messages []Message, settings Settings) (*Response, error) {
	request := openai.ChatCompletionRequest{
		Model:       settings.Model,
		Messages:    convertToOpenAIMessages(messages),
		Temperature: float32(settings.Temperature),
		MaxTokens:   settings.MaxTokens,
	}

	if len(settings.Tools) > 0 {
		openaiTools := make([]openai.Tool, 0, len(settings.Tools))
		for _, def := range settings.Tools {
			parameters := def.Parameters
			if parameters == nil {
				parameters = map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				}
			}
			openaiTools = append(openaiTools, openai.Tool{
				Type: openai.ToolTypeFunction,
				Function: &openai.FunctionDefinition{
					Name:        def.Name,
					Description: def.Description,
					Parameters:  parameters,
				},
			})
		}
		request.Tools = openaiTools
	}

	if settings.ResponseFormat == "json_object" {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	result, err := p.client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("OpenAI API call failed: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, errors.New("no response from OpenAI")
	}

	choice := result.Choices[0]

	response := &Response{
		Message: Message{
			Role:      choice.Message.Role,
			Content:   choice.Message.Content,
			ToolCalls: convertAPIToolCalls(choice.Message.ToolCalls),
		},
		Usage: Usage{
			PromptTokens:     result.Usage.PromptTokens,
			CompletionTokens: result.Usage.CompletionTokens,
			TotalTokens:      result.Usage.TotalTokens,
		},
	}

	return response, nil
}

// CreateEmbeddings embeds the given texts with the configured embedding model
func (p *OpenAIProvider) CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error) {
	result, err := p.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(p.config.EmbeddingModel),
		Input: texts,
	})
	if err != nil {
		return nil, fmt.Errorf("OpenAI embeddings call failed: %w", err)
	}

	if len(result.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(result.Data))
	}

	embeddings := make([][]float32, len(result.Data))
	for i, item := range result.Data {
		embeddings[i] = item.Embedding
	}
	return embeddings, nil
}

// convertToOpenAIMessages converts messages to OpenAI format
func convertToOpenAIMessages(messages []Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, len(messages))
	for i, msg := range messages {
		result[i] = openai.ChatCompletionMessage{
			Role:      msg.Role,
			Content:   msg.Content,
			ToolCalls: convertToOpenAIToolCalls(msg.ToolCalls),
		}
		if msg.Name != "" {
			result[i].Name = msg.Name
		}
		if msg.ToolCallID != "" {
			result[i].ToolCallID = msg.ToolCallID
		}
	}
	return result
}

// convertToOpenAIToolCalls converts tool calls to OpenAI format
func convertToOpenAIToolCalls(toolCalls []ToolCall) []openai.ToolCall {
	if len(toolCalls) == 0 {
		return nil
	}
	result := make([]openai.ToolCall, len(toolCalls))
	for i, tc := range toolCalls {
		result[i] = openai.ToolCall{
			ID:   tc.ID,
			Type: openai.ToolType(tc.Type),
			Function: openai.FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		}
	}
	return result
}

func convertAPIToolCalls(apiToolCalls []openai.ToolCall) []ToolCall {
	result := make([]ToolCall, 0, len(apiToolCalls))
	for _, tc := range apiToolCalls {
		result = append(result, ToolCall{
			ID:   tc.ID,
			Type: "function", // Currently only function is supported
			Function: FunctionCall{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	return result
}
