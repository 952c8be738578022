// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package guardrail

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeEmail(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize("Contact us at support@grocermind.example for help.")
	assert.Equal(t, "Contact us at [EMAIL] for help.", out)
}

func TestSanitizePhone(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize("Call 415-555-0134 to confirm your order.")
	assert.Equal(t, "Call [PHONE] to confirm your order.", out)
}

func TestSanitizeGovernmentID(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize("The ID on file is 123-45-6789.")
	assert.Equal(t, "The ID on file is [REDACTED].", out)
}

func TestSanitizeMultiple(t *testing.T) {
	s := NewSanitizer()

	out := s.Sanitize("Email a@b.co or b@c.io, phone 415 555-0134.")
	assert.Equal(t, "Email [EMAIL] or [EMAIL], phone [PHONE].", out)
}

func TestSanitizeCleanTextUnchanged(t *testing.T) {
	s := NewSanitizer()

	text := "Your order ORD001 totals $45.99 and ships tomorrow."
	assert.Equal(t, text, s.Sanitize(text))
}
