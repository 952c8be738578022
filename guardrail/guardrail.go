// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package guardrail

import (
	"context"
)

// SafetyVerdict is the outcome of a content check. A message with
// Safe = false is terminal for the turn.
type SafetyVerdict struct {
	// Safe indicates whether the input passed the check
	Safe bool

	// Reason is the user-facing message when the check fails
	Reason string
}

// RefundValidation is the outcome of the refund pre-execution gate
type RefundValidation struct {
	// Valid indicates whether the refund may proceed
	Valid bool

	// Reason is the user-facing message when validation fails
	Reason string
}

// InputCheck is a single stage of the content pipeline
type InputCheck interface {
	Name() string
	Check(ctx context.Context, input string) (SafetyVerdict, error)
}

// FunctionInputCheck wraps a function as an InputCheck
type FunctionInputCheck struct {
	name      string
	checkFunc func(ctx context.Context, input string) (SafetyVerdict, error)
}

func (c *FunctionInputCheck) Name() string {
	return c.name
}

func (c *FunctionInputCheck) Check(ctx context.Context, input string) (SafetyVerdict, error) {
	return c.checkFunc(ctx, input)
}

func NewInputCheck(name string, checkFunc func(ctx context.Context, input string) (SafetyVerdict, error)) InputCheck {
	return &FunctionInputCheck{
		name:      name,
		checkFunc: checkFunc,
	}
}
