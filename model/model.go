// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package model

import (
	"context"
)

// Settings represents model settings for a single completion call
type Settings struct {
	// Model is the name of the model to invoke
	Model string

	// Temperature sets the generation temperature (0.0-2.0)
	Temperature float64

	// MaxTokens sets the maximum number of tokens to generate
	MaxTokens int

	// ResponseFormat requests a structured response ("json_object" or empty)
	ResponseFormat string

	// Tools sets tool definitions offered to the model
	Tools []ToolDefinition
}

// DefaultSettings returns default model settings
func DefaultSettings() Settings {
	return Settings{
		Model:       "gpt-4o",
		Temperature: 0.0,
		MaxTokens:   1024,
	}
}

// Message represents a chat message
type Message struct {
	// Role is the role of the message (system, user, assistant, tool)
	Role       string
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string
}

type ToolCall struct {
	ID       string
	Type     string
	Function FunctionCall
}

type FunctionCall struct {
	Name      string
	Arguments string
}

// ToolDefinition describes a callable tool offered to the model
type ToolDefinition struct {
	Name        string
	Description string
	Parameters  map[string]any
}

// Provider is the interface for model providers
type Provider interface {
	CreateChatCompletion(ctx context.Context, messages []Message, settings Settings) (*Response, error)
}

// Embedder produces embedding vectors for texts
type Embedder interface {
	CreateEmbeddings(ctx context.Context, texts []string) ([][]float32, error)
}

// Response represents a model response
type Response struct {
	Message Message
	Usage   Usage
}

// Usage represents token usage
type Usage struct {
	// PromptTokens is the number of tokens in the prompt
	PromptTokens int

	// CompletionTokens is the number of tokens in the completion
	CompletionTokens int

	// TotalTokens is the total number of tokens
	TotalTokens int
}
