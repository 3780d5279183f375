package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if VENUESCOUT_CONFIG is set
//  3. env (prefix VENUESCOUT_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("VENUESCOUT_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: VENUESCOUT_ADDR, VENUESCOUT_DATA_DIR, ...
	// Map env keys like VENUESCOUT_DATA_DIR -> data_dir (flat keys),
	// preserving underscores to match koanf tags on the struct.
	envProvider := env.Provider("VENUESCOUT_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "venuescout_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	// Basic validation
	switch {
	case cfg.Addr == "":
		return nil, fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case cfg.DataDir == "":
		return nil, fmt.Errorf("%w: data_dir must not be empty", ErrInvalidConfig)
	case cfg.RetrievalTopK < 1:
		return nil, fmt.Errorf("%w: retrieval_top_k must be positive", ErrInvalidConfig)
	case cfg.DefaultTopN < 1 || cfg.DefaultTopN > cfg.MaxRecommendations:
		return nil, fmt.Errorf("%w: default_top_n must be in [1, max_recommendations]", ErrInvalidConfig)
	case cfg.AgentBlendWeight < 0 || cfg.SimilarityBlendWeight < 0 || cfg.FeedbackBlendWeight < 0:
		return nil, fmt.Errorf("%w: blend weights must be non-negative", ErrInvalidConfig)
	case cfg.AgentBlendWeight+cfg.SimilarityBlendWeight+cfg.FeedbackBlendWeight == 0:
		return nil, fmt.Errorf("%w: blend weights must not all be zero", ErrInvalidConfig)
	}
	return &cfg, nil
}
