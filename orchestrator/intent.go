// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package orchestrator

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/grocermind/grocermind/model"
)

// RefundIntent is the result of refund-intent classification
type RefundIntent struct {
	HasRefundIntent bool   `json:"has_refund_intent"`
	OrderID         string `json:"order_id"`
	Reasoning       string `json:"reasoning"`
}

const refundIntentPrompt = `You are an intent classifier for a grocery shopping assistant.

Determine whether the user is asking to refund a previous order, and if so,
which order ID they are referring to (order IDs look like ORD followed by digits).

Respond with ONLY a JSON object in this exact format:
{"has_refund_intent": true | false, "order_id": "the order ID or empty string", "reasoning": "brief explanation"}`

// IntentDetector classifies refund intent with a remote model call
type IntentDetector struct {
	provider  model.Provider
	modelName string
}

func NewIntentDetector(provider model.Provider, modelName string) *IntentDetector {
	return &IntentDetector{
		provider:  provider,
		modelName: modelName,
	}
}

var intentJSONRe = regexp.MustCompile(`(?s)\{.*\}`)

// DetectRefund classifies whether the message carries refund intent
func (d *IntentDetector) DetectRefund(ctx context.Context, text string) (RefundIntent, error) {
	settings := model.DefaultSettings()
	settings.Model = d.modelName
	settings.MaxTokens = 256
	settings.ResponseFormat = "json_object"

	response, err := d.provider.CreateChatCompletion(ctx, []model.Message{
		{Role: "system", Content: refundIntentPrompt},
		{Role: "user", Content: text},
	}, settings)
	if err != nil {
		return RefundIntent{}, fmt.Errorf("refund intent call failed: %w", err)
	}

	content := strings.TrimSpace(response.Message.Content)
	if match := intentJSONRe.FindString(content); match != "" {
		content = match
	}

	var intent RefundIntent
	if err := json.Unmarshal([]byte(content), &intent); err != nil {
		return RefundIntent{}, fmt.Errorf("unparseable refund intent response: %w", err)
	}
	intent.OrderID = strings.TrimSpace(intent.OrderID)
	return intent, nil
}
