// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

// Package agent contains the category responders dispatched by the
// orchestrator after routing.
package agent

import (
	"context"
)

// Responder produces the reply for one already-routed message
type Responder interface {
	Name() string
	Respond(ctx context.Context, input string) (string, error)
}
