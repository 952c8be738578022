// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

// Package orchestrator sequences the per-turn pipeline: guardrails,
// routing, responder dispatch and output sanitization.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/grocermind/grocermind/agent"
	"github.com/grocermind/grocermind/guardrail"
	"github.com/grocermind/grocermind/router"
	"github.com/grocermind/grocermind/tool"
	"github.com/grocermind/grocermind/trace"
)

// Agent labels reported in TurnResult
const (
	AgentFAQ        = "faq"
	AgentAction     = "action"
	AgentGeneral    = "general"
	AgentGuardrails = "guardrails"
	AgentUnknown    = "unknown"
)

const apologyMessage = "I apologize, but I encountered an error processing your request. Please try again or rephrase your question."

var (
	ErrGuardrailsRequired = errors.New("guardrail engine is required")
	ErrRouterRequired     = errors.New("router is required")
	ErrResponderRequired  = errors.New("all three responders are required")
)

// TurnResult is the sole externally visible artifact of a turn.
// Blocked is true iff Agent is "guardrails".
type TurnResult struct {
	Response string `json:"response"`
	Agent    string `json:"agent"`
	Blocked  bool   `json:"blocked"`
	Category string `json:"category,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Config wires the orchestrator's collaborators
type Config struct {
	Guardrails *guardrail.Engine
	Router     *router.Router

	FAQ     agent.Responder
	Action  agent.Responder
	General agent.Responder

	// Intents detects refund intent on the ACTION path. Optional: when
	// nil, the refund pre-validation gate is skipped.
	Intents *IntentDetector

	// Recorder receives one record per turn. Optional.
	Recorder trace.Recorder
}

// Orchestrator owns the Message-to-TurnResult lifecycle for a single
// turn. It carries no state across turns; sessions are independent.
type Orchestrator struct {
	guardrails *guardrail.Engine
	router     *router.Router
	faq        agent.Responder
	action     agent.Responder
	general    agent.Responder
	intents    *IntentDetector
	recorder   trace.Recorder
}

func New(config Config) (*Orchestrator, error) {
	if config.Guardrails == nil {
		return nil, ErrGuardrailsRequired
	}
	if config.Router == nil {
		return nil, ErrRouterRequired
	}
	if config.FAQ == nil || config.Action == nil || config.General == nil {
		return nil, ErrResponderRequired
	}
	if config.Recorder == nil {
		config.Recorder = trace.Nop{}
	}

	return &Orchestrator{
		guardrails: config.Guardrails,
		router:     config.Router,
		faq:        config.FAQ,
		action:     config.Action,
		general:    config.General,
		intents:    config.Intents,
		recorder:   config.Recorder,
	}, nil
}

// Process runs one turn through the pipeline. The caller never receives
// anything but a well-formed TurnResult: content violations and
// business-rule violations become user-facing messages, responder
// failures become a generic apology with the error captured.
func (o *Orchestrator) Process(ctx context.Context, text string, sessionID string) (result TurnResult) {
	turnID := trace.NewTurnID()
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			log.Error().Any("panic", r).Str("turn_id", turnID).Msg("panic during turn")
			result = TurnResult{
				Response: apologyMessage,
				Agent:    AgentUnknown,
				Error:    fmt.Sprintf("panic: %v", r),
			}
		}
		o.record(turnID, sessionID, text, result)
		log.Info().
			Str("turn_id", turnID).
			Str("session_id", sessionID).
			Str("agent", result.Agent).
			Bool("blocked", result.Blocked).
			Dur("elapsed", time.Since(start)).
			Msg("turn processed")
	}()

	// Safety gate. Blocked content never reaches the router.
	verdict := o.guardrails.CheckContent(ctx, text)
	if !verdict.Safe {
		return TurnResult{
			Response: verdict.Reason,
			Agent:    AgentGuardrails,
			Blocked:  true,
		}
	}

	decision := o.router.Classify(ctx, text)
	category := string(decision.Category)
	agentName := strings.ToLower(category)

	// Tool invocations on this turn operate on the session's own state.
	ctx = tool.WithSession(ctx, sessionID)

	// Refund pre-validation runs before the action responder so an
	// unvalidated refund tool call can never happen. Its message embeds
	// the extracted order ID, so it is sanitized like any other response.
	if decision.Category == router.CategoryAction && o.intents != nil {
		if blocked, validation := o.checkRefundGate(ctx, text, turnID); blocked {
			return TurnResult{
				Response: o.guardrails.SanitizeOutput(validation.Reason),
				Agent:    AgentAction,
				Category: category,
			}
		}
	}

	response, err := o.respond(ctx, decision.Category, text)
	if err != nil {
		log.Error().Err(err).Str("turn_id", turnID).Str("category", category).Msg("responder failed")
		return TurnResult{
			Response: apologyMessage,
			Agent:    agentName,
			Category: category,
			Error:    err.Error(),
		}
	}

	// Sanitization happens exactly once and always last.
	return TurnResult{
		Response: o.guardrails.SanitizeOutput(response),
		Agent:    agentName,
		Category: category,
	}
}

// checkRefundGate reports whether the turn must short-circuit on a failed
// refund validation. A failed intent-detection call is treated as "no
// refund intent" and logged: blocking every action on a transient
// classification error would be worse than the deterministic check the
// refund tool still performs.
func (o *Orchestrator) checkRefundGate(ctx context.Context, text string, turnID string) (bool, guardrail.RefundValidation) {
	intent, err := o.intents.DetectRefund(ctx, text)
	if err != nil {
		log.Warn().Err(err).Str("turn_id", turnID).Msg("refund intent detection failed")
		return false, guardrail.RefundValidation{}
	}
	if !intent.HasRefundIntent {
		return false, guardrail.RefundValidation{}
	}

	validation := o.guardrails.ValidateRefund(ctx, intent.OrderID)
	if validation.Valid {
		return false, validation
	}
	log.Info().Str("turn_id", turnID).Str("order_id", intent.OrderID).Str("reason", validation.Reason).
		Msg("refund blocked by pre-validation")
	return true, validation
}

func (o *Orchestrator) respond(ctx context.Context, category router.Category, text string) (string, error) {
	switch category {
	case router.CategoryFAQ:
		return o.faq.Respond(ctx, text)
	case router.CategoryAction:
		return o.action.Respond(ctx, text)
	default:
		return o.general.Respond(ctx, text)
	}
}

func (o *Orchestrator) record(turnID, sessionID, text string, result TurnResult) {
	o.recorder.Record(trace.Record{
		Timestamp: time.Now().UTC(),
		TurnID:    turnID,
		SessionID: sessionID,
		UserInput: text,
		Agent:     result.Agent,
		Category:  result.Category,
		Response:  result.Response,
		Blocked:   result.Blocked,
		Error:     result.Error,
	})
}
