// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package guardrail

import (
	"regexp"
)

type redaction struct {
	re          *regexp.Regexp
	placeholder string
}

// Outbound redactions. The government-ID pattern runs before the phone
// pattern for the same reason as in the input scan.
var outputRedactions = []redaction{
	{regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`), "[EMAIL]"},
	{regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`), "[REDACTED]"},
	{regexp.MustCompile(`\b(?:\+?1[ .-]?)?\(?\d{3}\)?[ .-]\d{3}[ .-]?\d{4}\b`), "[PHONE]"},
}

// Sanitizer redacts personal identifiers from generated responses before
// they reach the user.
type Sanitizer struct{}

func NewSanitizer() *Sanitizer {
	return &Sanitizer{}
}

// Sanitize replaces every email address, government-ID-like number and
// phone number with a fixed placeholder token.
func (s *Sanitizer) Sanitize(output string) string {
	sanitized := output
	for _, r := range outputRedactions {
		sanitized = r.re.ReplaceAllString(sanitized, r.placeholder)
	}
	return sanitized
}
