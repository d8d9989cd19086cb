// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AIProvider identifies the text-generation backend.
type AIProvider string

const (
	ProviderGemini AIProvider = "gemini"
	ProviderClaude AIProvider = "claude"
)

// AIConfig holds settings for the celebratory message request.
type AIConfig struct {
	// Provider selects the backend: gemini (default) or claude.
	Provider AIProvider `json:"provider" yaml:"provider" mapstructure:"provider"`

	// Model is the AI model identifier (e.g. "gemini-2.5-flash").
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey is the authentication key for the AI API.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// BaseURL overrides the provider endpoint. Empty means the public API.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty" mapstructure:"base_url"`

	// Timeout bounds the single outbound call (default 15s).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`
}

// ServerConfig holds settings for the web form server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// ReadTimeout and WriteTimeout bound each HTTP exchange.
	ReadTimeout  time.Duration `json:"read_timeout" yaml:"read_timeout" mapstructure:"read_timeout"`
	WriteTimeout time.Duration `json:"write_timeout" yaml:"write_timeout" mapstructure:"write_timeout"`

	// ShutdownTimeout is how long in-flight requests get on SIGINT/SIGTERM.
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// AppConfig groups all configuration sections.
type AppConfig struct {
	AI     AIConfig     `json:"ai" yaml:"ai" mapstructure:"ai"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
}

const (
	DefaultGeminiModel  = "gemini-2.5-flash"
	DefaultClaudeModel  = "claude-sonnet-4-5-20250929"
	DefaultAITimeout    = 15 * time.Second
	DefaultAddr         = ":8080"
	DefaultReadTimeout  = 10 * time.Second
	DefaultWriteTimeout = 30 * time.Second
	DefaultShutdown     = 5 * time.Second
)

// WithDefaults returns a copy of c with zero values replaced by defaults.
func (c AppConfig) WithDefaults() AppConfig {
	if c.AI.Provider == "" {
		c.AI.Provider = ProviderGemini
	}
	if c.AI.Model == "" {
		switch c.AI.Provider {
		case ProviderClaude:
			c.AI.Model = DefaultClaudeModel
		default:
			c.AI.Model = DefaultGeminiModel
		}
	}
	if c.AI.Timeout <= 0 {
		c.AI.Timeout = DefaultAITimeout
	}
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout <= 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.WriteTimeout <= 0 {
		c.Server.WriteTimeout = DefaultWriteTimeout
	}
	if c.Server.ShutdownTimeout <= 0 {
		c.Server.ShutdownTimeout = DefaultShutdown
	}
	return c
}
