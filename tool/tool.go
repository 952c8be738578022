// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package tool

import (
	"context"

	"github.com/grocermind/grocermind/model"
)

// Tool represents a tool that can be used by agents
type Tool interface {
	Name() string
	Description() string

	// ParamsJSONSchema returns the JSON schema for the tool's parameters
	ParamsJSONSchema() map[string]any

	// Invoke executes the tool
	Invoke(ctx context.Context, paramsJSON string) (string, error)
}

// DefaultSession is the session tools fall back to when the context
// carries none.
const DefaultSession = "default"

type sessionContextKey struct{}

// WithSession attaches the session ID that tool invocations run under
func WithSession(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sessionID)
}

// SessionFromContext returns the session ID attached by WithSession
func SessionFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(sessionContextKey{}).(string); ok && id != "" {
		return id
	}
	return DefaultSession
}

// Definitions converts tools into model tool definitions
func Definitions(tools []Tool) []model.ToolDefinition {
	defs := make([]model.ToolDefinition, 0, len(tools))
	for _, t := range tools {
		defs = append(defs, model.ToolDefinition{
			Name:        t.Name(),
			Description: t.Description(),
			Parameters:  t.ParamsJSONSchema(),
		})
	}
	return defs
}

func stringSchema(description string) map[string]any {
	return map[string]any{"type": "string", "description": description}
}

func numberSchema(description string) map[string]any {
	return map[string]any{"type": "number", "description": description}
}

func integerSchema(description string) map[string]any {
	return map[string]any{"type": "integer", "description": description}
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}
