// Copyright (c) 2026 grocermind
// Licensed under the MIT License.

// Package config collects process configuration from the environment and
// an optional YAML policy file.
package config

import (
	"os"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the process configuration
type Config struct {
	OpenAIAPIKey   string
	ModelName      string
	EmbeddingModel string

	StockServiceURL string
	DataDir         string
	LogDir          string
	HTTPAddr        string

	Policy Policy
}

// Policy is the guardrail policy, overridable from a YAML file
type Policy struct {
	RestrictedTopics    []string `yaml:"restricted_topics"`
	MaxRefundAmount     float64  `yaml:"max_refund_amount"`
	ModerationMinLength int      `yaml:"moderation_min_length"`
}

// DefaultPolicy returns the built-in guardrail policy
func DefaultPolicy() Policy {
	return Policy{
		RestrictedTopics:    []string{"politics", "religion", "personal attacks"},
		MaxRefundAmount:     1000.0,
		ModerationMinLength: 12,
	}
}

// Load reads configuration from environment variables, with defaults
// matching local development.
func Load() Config {
	cfg := Config{
		OpenAIAPIKey:    os.Getenv("OPENAI_API_KEY"),
		ModelName:       envOr("MODEL_NAME", "gpt-4o"),
		EmbeddingModel:  envOr("EMBEDDING_MODEL", "text-embedding-3-small"),
		StockServiceURL: envOr("STOCK_SERVICE_URL", "http://localhost:8001"),
		DataDir:         envOr("DATA_DIR", "data"),
		LogDir:          envOr("LOG_DIR", "logs"),
		HTTPAddr:        envOr("HTTP_ADDR", ":8080"),
		Policy:          DefaultPolicy(),
	}

	if topics := os.Getenv("RESTRICTED_TOPICS"); topics != "" {
		cfg.Policy.RestrictedTopics = splitTopics(topics)
	}
	if raw := os.Getenv("MAX_REFUND_AMOUNT"); raw != "" {
		if amount, err := strconv.ParseFloat(raw, 64); err == nil && amount > 0 {
			cfg.Policy.MaxRefundAmount = amount
		}
	}

	return cfg
}

// LoadPolicy reads a YAML policy file and merges it over the defaults.
// Zero-valued fields keep their defaults.
func LoadPolicy(path string) (Policy, error) {
	policy := DefaultPolicy()

	data, err := os.ReadFile(path)
	if err != nil {
		return policy, pkgerrors.Wrapf(err, "reading policy file %s", path)
	}

	var overrides Policy
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return policy, pkgerrors.Wrapf(err, "parsing policy file %s", path)
	}

	if len(overrides.RestrictedTopics) > 0 {
		policy.RestrictedTopics = overrides.RestrictedTopics
	}
	if overrides.MaxRefundAmount > 0 {
		policy.MaxRefundAmount = overrides.MaxRefundAmount
	}
	if overrides.ModerationMinLength > 0 {
		policy.ModerationMinLength = overrides.ModerationMinLength
	}
	return policy, nil
}

func envOr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitTopics(raw string) []string {
	parts := strings.Split(raw, ",")
	topics := make([]string, 0, len(parts))
	for _, part := range parts {
		if topic := strings.TrimSpace(part); topic != "" {
			topics = append(topics, topic)
		}
	}
	return topics
}
