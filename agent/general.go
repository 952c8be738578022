// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package agent

import (
	"context"
	"fmt"

	"github.com/abadojack/whatlanggo"

	"github.com/grocermind/grocermind/model"
)

// GeneralAgent handles greetings, thanks and anything that needs no tools
// or retrieval. It replies in the language of the incoming message.
type GeneralAgent struct {
	provider  model.Provider
	modelName string
}

func NewGeneralAgent(provider model.Provider, modelName string) *GeneralAgent {
	return &GeneralAgent{
		provider:  provider,
		modelName: modelName,
	}
}

func (a *GeneralAgent) Name() string { return "general" }

func (a *GeneralAgent) Respond(ctx context.Context, input string) (string, error) {
	prompt := fmt.Sprintf("Respond briefly and helpfully to this message in the context of a grocery shopping assistant: %s", input)
	if hint := languageHint(input); hint != "" {
		prompt += "\n" + hint
	}

	settings := model.DefaultSettings()
	settings.Model = a.modelName

	response, err := a.provider.CreateChatCompletion(ctx, []model.Message{
		{Role: "user", Content: prompt},
	}, settings)
	if err != nil {
		return "", fmt.Errorf("general completion failed: %w", err)
	}
	return response.Message.Content, nil
}

// languageHint asks the model to answer in the detected language when the
// message is confidently non-English.
func languageHint(input string) string {
	info := whatlanggo.Detect(input)
	if !info.IsReliable() || info.Lang == whatlanggo.Eng {
		return ""
	}
	return fmt.Sprintf("Reply in %s.", info.Lang.String())
}
