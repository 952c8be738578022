// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package guardrail

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rs/zerolog/log"
)

type pattern struct {
	label string
	re    *regexp.Regexp
}

// maliciousPatterns cover the injection classes seen in user input.
// The label is for internal logging only; the user always gets the same
// generic message so the tripped pattern is never signaled back.
var maliciousPatterns = []pattern{
	{"script_injection", regexp.MustCompile(`(?i)<script|javascript:|onerror\s*=|onload\s*=`)},
	{"code_eval", regexp.MustCompile(`(?i)\beval\s*\(|\bexec\s*\(`)},
	{"import_injection", regexp.MustCompile(`(?i)__import__|\bimport\s+(os|sys|subprocess)\b`)},
	{"sql_injection", regexp.MustCompile(`(?i)union\s+select|drop\s+table|insert\s+into|delete\s+from|'\s*or\s+'1'\s*=\s*'1`)},
	{"path_traversal", regexp.MustCompile(`\.\./|\.\.\\`)},
	{"command_exec", regexp.MustCompile(`(?i)rm\s+-rf\b|;\s*(sh|bash)\b|/bin/(sh|bash)\b|\bsubprocess\.`)},
}

// piiPatterns detect personal identifiers in user input. Ordering matters:
// SSN must run before the phone pattern so a 123-45-6789 shaped value is
// reported as an SSN.
var piiPatterns = []pattern{
	{"SSN", regexp.MustCompile(`\b\d{3}-\d{2}-\d{4}\b`)},
	{"credit card number", regexp.MustCompile(`\b(?:\d{4}[ -]?){3}\d{4}\b`)},
	{"phone number", regexp.MustCompile(`\b(?:\+?1[ .-]?)?\(?\d{3}\)?[ .-]\d{3}[ .-]?\d{4}\b`)},
	{"passport number", regexp.MustCompile(`\b[A-Z]{1,2}\d{7,9}\b`)},
}

// MaliciousPatternCheck blocks script/markup injection, code evaluation,
// import injection, SQL injection, path traversal and command execution
// attempts with a generic message.
type MaliciousPatternCheck struct{}

func NewMaliciousPatternCheck() *MaliciousPatternCheck {
	return &MaliciousPatternCheck{}
}

func (c *MaliciousPatternCheck) Name() string {
	return "malicious_patterns"
}

func (c *MaliciousPatternCheck) Check(ctx context.Context, input string) (SafetyVerdict, error) {
	for _, p := range maliciousPatterns {
		if p.re.MatchString(input) {
			log.Warn().Str("check", c.Name()).Str("label", p.label).Msg("input blocked")
			return SafetyVerdict{
				Safe:   false,
				Reason: "Invalid input detected. Please rephrase your request.",
			}, nil
		}
	}
	return SafetyVerdict{Safe: true}, nil
}

// PIICheck blocks messages that contain personal identifiers, naming the
// category so the user knows what not to share.
type PIICheck struct{}

func NewPIICheck() *PIICheck {
	return &PIICheck{}
}

func (c *PIICheck) Name() string {
	return "pii_patterns"
}

func (c *PIICheck) Check(ctx context.Context, input string) (SafetyVerdict, error) {
	for _, p := range piiPatterns {
		if p.re.MatchString(input) {
			log.Warn().Str("check", c.Name()).Str("category", p.label).Msg("input blocked")
			return SafetyVerdict{
				Safe:   false,
				Reason: fmt.Sprintf("Your message appears to contain a %s. Please don't share personal information with me.", p.label),
			}, nil
		}
	}
	return SafetyVerdict{Safe: true}, nil
}
