// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/airdrop-checker/internal/checker"
	"github.com/pdiddy/airdrop-checker/internal/message"
	"github.com/pdiddy/airdrop-checker/internal/secrets"
	"github.com/pdiddy/airdrop-checker/pkg/types"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("AIRDROP_CHECKER")
	v.AutomaticEnv()
	setConfigDefaults(v)
	return v
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("API_KEY", "")

	cfg, err := loadConfig(newTestViper(), secrets.Secrets{})
	require.NoError(t, err)

	assert.Equal(t, types.ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, types.DefaultGeminiModel, cfg.AI.Model)
	assert.Equal(t, types.DefaultAITimeout, cfg.AI.Timeout)
	assert.Equal(t, "", cfg.AI.APIKey)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadConfigAPIKeyPrecedence(t *testing.T) {
	s := secrets.Secrets{secrets.GeminiKeyFile: "from-secrets", secrets.AnthropicKeyFile: "from-anthropic-secrets"}

	t.Run("secrets file", func(t *testing.T) {
		t.Setenv("API_KEY", "")
		cfg, err := loadConfig(newTestViper(), s)
		require.NoError(t, err)
		assert.Equal(t, "from-secrets", cfg.AI.APIKey)
	})

	t.Run("API_KEY beats secrets", func(t *testing.T) {
		t.Setenv("API_KEY", "from-env")
		cfg, err := loadConfig(newTestViper(), s)
		require.NoError(t, err)
		assert.Equal(t, "from-env", cfg.AI.APIKey)
	})

	t.Run("config beats API_KEY", func(t *testing.T) {
		t.Setenv("API_KEY", "from-env")
		v := newTestViper()
		v.Set("ai.api_key", "from-config")
		cfg, err := loadConfig(v, s)
		require.NoError(t, err)
		assert.Equal(t, "from-config", cfg.AI.APIKey)
	})

	t.Run("provider picks its secret", func(t *testing.T) {
		t.Setenv("API_KEY", "")
		v := newTestViper()
		v.Set("ai.provider", "claude")
		cfg, err := loadConfig(v, s)
		require.NoError(t, err)
		assert.Equal(t, "from-anthropic-secrets", cfg.AI.APIKey)
		assert.Equal(t, types.DefaultClaudeModel, cfg.AI.Model)
	})
}

func TestLoadConfigDurationFromString(t *testing.T) {
	v := newTestViper()
	v.Set("ai.timeout", "3s")
	cfg, err := loadConfig(v, secrets.Secrets{})
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, cfg.AI.Timeout)
}

func TestNewRequesterWithoutKeyFallsBack(t *testing.T) {
	req := newRequester(context.Background(), types.AIConfig{Provider: types.ProviderGemini}, false, zap.NewNop())
	res := req.Request(context.Background(), 500, "")
	assert.True(t, res.Fallback)
	assert.ErrorIs(t, res.Err, message.ErrNoBackend)
}

func sampleResult() *types.AllocationResult {
	return &types.AllocationResult{
		Value:   2534,
		Message: "Onward.",
		Breakdown: types.Breakdown{
			Base: 500, WalletBonus: 500, SocialBonus: 750, RoleBonus: 750, RandomOffset: 34,
			Roles: []string{"OG", "Contributor", "Moderator"},
		},
	}
}

func TestWriteResultText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, sampleResult(), "text"))
	out := buf.String()
	assert.Contains(t, out, "2,534 IRYS")
	assert.Contains(t, out, "Onward.")
	assert.Contains(t, out, "(3 roles)")
}

func TestWriteResultJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, sampleResult(), "json"))

	var got types.AllocationResult
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2534, got.Value)
	assert.Equal(t, 34, got.Breakdown.RandomOffset)
}

func TestWriteResultYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeResult(&buf, sampleResult(), "yaml"))

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 2534, got["value"])
	assert.Contains(t, buf.String(), "random_offset: 34")
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, validateFormat("text"))
	assert.NoError(t, validateFormat("json"))
	assert.NoError(t, validateFormat("yaml"))
	assert.Error(t, validateFormat("xml"))
}

func TestCheckCommand(t *testing.T) {
	t.Setenv("API_KEY", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"check", "--wallet", "0xabcdef0123456789", "--roles", "OG,,  ,Moderator", "--seed", "9", "--no-ai", "--format", "json"})
	require.NoError(t, rootCmd.Execute())

	var got types.AllocationResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, 500+500+500, got.Breakdown.Deterministic())
	assert.GreaterOrEqual(t, got.Breakdown.RandomOffset, 0)
	assert.Less(t, got.Breakdown.RandomOffset, 500)
	assert.True(t, got.Fallback)
	assert.Equal(t, message.FallbackMessage, got.Message)

	out.Reset()
	rootCmd.SetArgs([]string{"check", "--wallet", "", "--no-ai"})
	err := rootCmd.Execute()
	assert.ErrorIs(t, err, checker.ErrWalletRequired)
	assert.Empty(t, out.String())
}
