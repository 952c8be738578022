// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package agent

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/grocermind/grocermind/model"
	"github.com/grocermind/grocermind/retrieval"
)

const faqInstructions = `You are a helpful FAQ assistant for an online grocery store.

Guidelines:
- Answer based on the provided context
- If the answer isn't in the context, say you don't know
- Be concise and helpful
- Focus on FAQs, policies, and general information`

// FAQAgent answers policy and general-information questions grounded in
// retrieved context.
type FAQAgent struct {
	provider  model.Provider
	retriever retrieval.ContextProvider
	modelName string
}

func NewFAQAgent(provider model.Provider, retriever retrieval.ContextProvider, modelName string) *FAQAgent {
	return &FAQAgent{
		provider:  provider,
		retriever: retriever,
		modelName: modelName,
	}
}

func (a *FAQAgent) Name() string { return "faq" }

func (a *FAQAgent) Respond(ctx context.Context, input string) (string, error) {
	docContext, err := a.retriever.Context(ctx, input, "")
	if err != nil {
		return "", fmt.Errorf("retrieving FAQ context: %w", err)
	}
	log.Debug().Int("context_chars", len(docContext)).Msg("faq agent retrieved context")

	settings := model.DefaultSettings()
	settings.Model = a.modelName

	response, err := a.provider.CreateChatCompletion(ctx, []model.Message{
		{Role: "system", Content: faqInstructions},
		{Role: "user", Content: fmt.Sprintf("Context: %s\n\nQuestion: %s", docContext, input)},
	}, settings)
	if err != nil {
		return "", fmt.Errorf("FAQ completion failed: %w", err)
	}
	return response.Message.Content, nil
}
