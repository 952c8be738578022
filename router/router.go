// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package router

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/grocermind/grocermind/model"
)

// Category is the coarse intent class used to select a responder
type Category string

const (
	CategoryFAQ     Category = "FAQ"
	CategoryAction  Category = "ACTION"
	CategoryGeneral Category = "GENERAL"
)

// Decision is the routing outcome for a single message. The category is
// immutable once decided for the turn.
type Decision struct {
	Category  Category `json:"category"`
	Reasoning string   `json:"reasoning"`
}

const routingPrompt = `You are a routing agent that determines which specialized agent should handle a user request.

Analyze the user's message and classify it into one of these categories:

1. FAQ: Questions about policies, general information, how things work, delivery, returns policy
   Examples: "What's your return policy?", "Do you deliver on weekends?", "How do I track my order?"

2. ACTION: Requests to perform actions like checking prices, adding to cart, creating refunds, budget calculations
   Examples: "Add milk to cart", "What's the price of apples?", "Create a refund for order ORD001", "Can I buy these within $50?"

3. GENERAL: Greetings, thanks, or simple acknowledgments
   Examples: "Hello", "Thanks", "Goodbye"

Respond with ONLY a JSON object in this exact format:
{"category": "FAQ" | "ACTION" | "GENERAL", "reasoning": "brief explanation"}`

// Router classifies an already-cleared message into FAQ, ACTION or GENERAL.
// On any remote or parse failure it falls back to GENERAL, the only
// category with no tool side effects. It must never fall back to ACTION
// or FAQ.
type Router struct {
	provider  model.Provider
	modelName string
}

func New(provider model.Provider, modelName string) *Router {
	return &Router{
		provider:  provider,
		modelName: modelName,
	}
}

// Classify returns a routing decision for the message. It never fails:
// every failure mode degrades to GENERAL.
func (r *Router) Classify(ctx context.Context, text string) Decision {
	settings := model.DefaultSettings()
	settings.Model = r.modelName
	settings.MaxTokens = 256
	settings.ResponseFormat = "json_object"

	response, err := r.provider.CreateChatCompletion(ctx, []model.Message{
		{Role: "system", Content: routingPrompt},
		{Role: "user", Content: text},
	}, settings)
	if err != nil {
		log.Warn().Err(err).Msg("routing call failed, falling back to GENERAL")
		return Decision{Category: CategoryGeneral, Reasoning: "routing unavailable"}
	}

	decision, ok := parseDecision(response.Message.Content)
	if !ok {
		log.Warn().Str("content", response.Message.Content).Msg("unparseable routing response, falling back to GENERAL")
		return Decision{Category: CategoryGeneral, Reasoning: "unparseable routing response"}
	}

	return decision
}

var routerJSONRe = regexp.MustCompile(`(?s)\{.*\}`)

// parseDecision leniently extracts a decision from the model response,
// tolerating markdown fences and case differences in the category.
func parseDecision(content string) (Decision, bool) {
	content = strings.TrimSpace(content)
	if match := routerJSONRe.FindString(content); match != "" {
		content = match
	}

	var parsed struct {
		Category  string `json:"category"`
		Reasoning string `json:"reasoning"`
	}
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		return Decision{}, false
	}

	switch Category(strings.ToUpper(strings.TrimSpace(parsed.Category))) {
	case CategoryFAQ:
		return Decision{Category: CategoryFAQ, Reasoning: parsed.Reasoning}, true
	case CategoryAction:
		return Decision{Category: CategoryAction, Reasoning: parsed.Reasoning}, true
	case CategoryGeneral:
		return Decision{Category: CategoryGeneral, Reasoning: parsed.Reasoning}, true
	default:
		return Decision{}, false
	}
}
