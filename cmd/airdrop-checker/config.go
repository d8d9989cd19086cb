// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/airdrop-checker/internal/message"
	"github.com/pdiddy/airdrop-checker/internal/secrets"
	"github.com/pdiddy/airdrop-checker/pkg/types"
)

// setConfigDefaults registers every key so AutomaticEnv can populate
// Unmarshal; viper only consults the environment for keys it knows about.
func setConfigDefaults(v *viper.Viper) {
	v.SetDefault("ai.provider", string(types.ProviderGemini))
	v.SetDefault("ai.model", "")
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.base_url", "")
	v.SetDefault("ai.timeout", types.DefaultAITimeout)
	v.SetDefault("server.addr", types.DefaultAddr)
	v.SetDefault("server.read_timeout", types.DefaultReadTimeout)
	v.SetDefault("server.write_timeout", types.DefaultWriteTimeout)
	v.SetDefault("server.shutdown_timeout", types.DefaultShutdown)
}

// loadConfig reads the merged configuration and fills in the API key from,
// in order: config/AIRDROP_CHECKER_AI_API_KEY, API_KEY, then .secrets/.
func loadConfig(v *viper.Viper, s secrets.Secrets) (types.AppConfig, error) {
	var cfg types.AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.AppConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg = cfg.WithDefaults()

	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = os.Getenv("API_KEY")
	}
	if cfg.AI.APIKey == "" {
		cfg.AI.APIKey = s.APIKey(cfg.AI.Provider)
	}
	return cfg, nil
}

// newRequester builds the message requester. Without a usable backend the
// requester still works and always returns the fallback message.
func newRequester(ctx context.Context, cfg types.AIConfig, disabled bool, log *zap.Logger) *message.Requester {
	if disabled {
		return message.NewRequester(nil, cfg.Timeout, log)
	}
	backend, err := message.NewBackend(ctx, cfg)
	if err != nil {
		log.Warn("text generation unavailable, messages will use the fallback", zap.Error(err))
		return message.NewRequester(nil, cfg.Timeout, log)
	}
	return message.NewRequester(backend, cfg.Timeout, log)
}
