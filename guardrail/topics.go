// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

package guardrail

import (
	"context"
	"fmt"
	"strings"
)

// DefaultRestrictedTopics are the topics the assistant refuses to discuss
var DefaultRestrictedTopics = []string{"politics", "religion", "personal attacks"}

// TopicCheck blocks messages mentioning a restricted topic.
// Matching is a case-insensitive substring scan.
type TopicCheck struct {
	topics []string
}

func NewTopicCheck(topics []string) *TopicCheck {
	return &TopicCheck{topics: topics}
}

func (c *TopicCheck) Name() string {
	return "restricted_topics"
}

func (c *TopicCheck) Check(ctx context.Context, input string) (SafetyVerdict, error) {
	lower := strings.ToLower(input)
	for _, topic := range c.topics {
		if topic == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(topic)) {
			return SafetyVerdict{
				Safe:   false,
				Reason: fmt.Sprintf("Sorry, I cannot discuss topics related to %s. I'm here to help with grocery shopping.", topic),
			}, nil
		}
	}
	return SafetyVerdict{Safe: true}, nil
}
