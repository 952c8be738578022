// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package guardrail

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/grocermind/grocermind/model"
	"github.com/grocermind/grocermind/store"
)

// DefaultMaxRefundAmount is the policy limit above which refunds must go
// through customer service.
const DefaultMaxRefundAmount = 1000.0

// EngineConfig configures the guardrail engine
type EngineConfig struct {
	// RestrictedTopics the assistant refuses to discuss
	RestrictedTopics []string

	// MaxRefundAmount is the refund policy limit
	MaxRefundAmount float64

	// ModerationMinLength is the minimum input length for semantic moderation
	ModerationMinLength int

	// Provider backs semantic moderation. If nil, moderation is disabled
	// and only the deterministic checks run.
	Provider model.Provider

	// ModerationModel is the model used for semantic moderation
	ModerationModel string

	// Orders is the read-only order ledger used by refund validation
	Orders store.OrderStore
}

// Engine composes the content checks, the refund pre-execution gate and
// the output sanitizer.
type Engine struct {
	checks    []InputCheck
	orders    store.OrderStore
	maxRefund float64
	sanitizer *Sanitizer
}

func NewEngine(config EngineConfig) *Engine {
	if len(config.RestrictedTopics) == 0 {
		config.RestrictedTopics = DefaultRestrictedTopics
	}
	if config.MaxRefundAmount <= 0 {
		config.MaxRefundAmount = DefaultMaxRefundAmount
	}

	// Cheapest and most deterministic first. Each stage short-circuits,
	// so the remote moderation call only runs on input the static scans
	// already cleared.
	checks := []InputCheck{
		NewTopicCheck(config.RestrictedTopics),
		NewMaliciousPatternCheck(),
		NewPIICheck(),
	}
	if config.Provider != nil {
		checks = append(checks, NewSemanticModerator(config.Provider, config.ModerationModel, config.ModerationMinLength))
	}

	return &Engine{
		checks:    checks,
		orders:    config.Orders,
		maxRefund: config.MaxRefundAmount,
		sanitizer: NewSanitizer(),
	}
}

// CheckContent runs the content pipeline, stopping at the first failure
func (e *Engine) CheckContent(ctx context.Context, text string) SafetyVerdict {
	for _, check := range e.checks {
		verdict, err := check.Check(ctx, text)
		if err != nil {
			// Only the remote stage can error and it fails open on its
			// own; anything else is logged and skipped.
			log.Warn().Err(err).Str("check", check.Name()).Msg("content check error")
			continue
		}
		if !verdict.Safe {
			return verdict
		}
	}
	return SafetyVerdict{Safe: true}
}

// ValidateRefund gates refund execution on the order ledger and the
// refund policy limit. It runs before any refund tool call.
func (e *Engine) ValidateRefund(ctx context.Context, orderID string) RefundValidation {
	if e.orders == nil {
		return RefundValidation{
			Valid:  false,
			Reason: fmt.Sprintf("Order %s not found in system.", orderID),
		}
	}

	order, err := e.orders.Lookup(orderID)
	if err != nil {
		if !errors.Is(err, store.ErrOrderNotFound) {
			log.Error().Err(err).Str("order_id", orderID).Msg("order lookup failed")
		}
		return RefundValidation{
			Valid:  false,
			Reason: fmt.Sprintf("Order %s not found in system.", orderID),
		}
	}

	if order.Total > e.maxRefund {
		return RefundValidation{
			Valid: false,
			Reason: fmt.Sprintf("Refund amount $%.2f exceeds maximum allowed refund of $%.2f. Please contact customer service.",
				order.Total, e.maxRefund),
		}
	}

	return RefundValidation{Valid: true}
}

// SanitizeOutput redacts personal identifiers from a generated response
func (e *Engine) SanitizeOutput(text string) string {
	return e.sanitizer.Sanitize(text)
}
