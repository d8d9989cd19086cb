// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package message

import (
	"context"
	"fmt"

	"github.com/pdiddy/airdrop-checker/pkg/types"
)

// NewBackend builds the backend selected by cfg.Provider. A missing API key
// is an error; callers that can live without generated text may pass a nil
// Backend to NewRequester instead.
func NewBackend(ctx context.Context, cfg types.AIConfig) (Backend, error) {
	switch cfg.Provider {
	case types.ProviderGemini, "":
		model := cfg.Model
		if model == "" {
			model = types.DefaultGeminiModel
		}
		g, err := NewGeminiBackend(ctx, cfg.APIKey, model, cfg.BaseURL, nil)
		if err != nil {
			return nil, err
		}
		return g, nil
	case types.ProviderClaude:
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("Claude API key is required")
		}
		model := cfg.Model
		if model == "" {
			model = types.DefaultClaudeModel
		}
		return &ClaudeBackend{APIKey: cfg.APIKey, Model: model, BaseURL: cfg.BaseURL}, nil
	default:
		return nil, fmt.Errorf("unsupported AI provider %q: use gemini or claude", cfg.Provider)
	}
}
