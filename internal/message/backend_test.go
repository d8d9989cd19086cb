// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package message

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/airdrop-checker/pkg/types"
)

// --- Claude ---

func TestClaudeBackendGenerate(t *testing.T) {
	var got claudeRequest
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, "2023-06-01", r.Header.Get("anthropic-version"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"content":[{"type":"text","text":"The grid "},{"type":"tool_use"},{"type":"text","text":"awaits you."}]}`))
	}))
	defer ts.Close()

	c := &ClaudeBackend{APIKey: "test-key", Model: "test-model", BaseURL: ts.URL, Client: ts.Client()}
	text, err := c.Generate(context.Background(), "hello")

	require.NoError(t, err)
	assert.Equal(t, "The grid awaits you.", text)
	assert.Equal(t, "test-model", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func TestClaudeBackendErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "non-200", status: http.StatusTooManyRequests, body: `{"error":"rate"}`, wantErr: "Claude API returned 429"},
		{name: "malformed body", status: http.StatusOK, body: `{not json`, wantErr: "decoding Claude response"},
		{name: "no text blocks", status: http.StatusOK, body: `{"content":[]}`, wantErr: "no text content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer ts.Close()

			c := &ClaudeBackend{APIKey: "k", Model: "m", BaseURL: ts.URL, Client: ts.Client()}
			_, err := c.Generate(context.Background(), "p")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestClaudeBackendDefaultURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"content":[{"type":"text","text":"hi"}]}`))
	}))
	defer ts.Close()

	orig := claudeAPIURL
	claudeAPIURL = ts.URL
	defer func() { claudeAPIURL = orig }()

	c := &ClaudeBackend{APIKey: "k", Model: "m", Client: ts.Client()}
	text, err := c.Generate(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
}

// --- Gemini ---

func TestGeminiBackendGenerate(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		assert.True(t, strings.HasSuffix(r.URL.Path, "models/test-model:generateContent"), r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"Welcome to the future."}]}}]}`))
	}))
	defer ts.Close()

	g, err := NewGeminiBackend(context.Background(), "test-key", "test-model", ts.URL+"/", ts.Client())
	require.NoError(t, err)

	text, err := g.Generate(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "Welcome to the future.", text)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "gemini:test-model", g.Name())
}

func TestGeminiBackendServerErrorFallsBack(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	}))
	defer ts.Close()

	g, err := NewGeminiBackend(context.Background(), "bad-key", "test-model", ts.URL+"/", ts.Client())
	require.NoError(t, err)

	res := NewRequester(g, 5*time.Second, nil).Request(context.Background(), 800, "OG")
	assert.True(t, res.Fallback)
	assert.Equal(t, FallbackMessage, res.Text)
	assert.Error(t, res.Err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestGeminiBackendRequiresKey(t *testing.T) {
	_, err := NewGeminiBackend(context.Background(), "", "m", "", nil)
	assert.Error(t, err)
}

// --- NewBackend ---

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name     string
		cfg      types.AIConfig
		wantName string
		wantErr  bool
	}{
		{name: "gemini default", cfg: types.AIConfig{APIKey: "k"}, wantName: "gemini:" + types.DefaultGeminiModel},
		{name: "claude", cfg: types.AIConfig{Provider: types.ProviderClaude, APIKey: "k", Model: "c"}, wantName: "claude:c"},
		{name: "claude without key", cfg: types.AIConfig{Provider: types.ProviderClaude}, wantErr: true},
		{name: "gemini without key", cfg: types.AIConfig{Provider: types.ProviderGemini}, wantErr: true},
		{name: "unknown provider", cfg: types.AIConfig{Provider: "llama", APIKey: "k"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBackend(context.Background(), tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			named, ok := b.(interface{ Name() string })
			require.True(t, ok)
			assert.Equal(t, tt.wantName, named.Name())
		})
	}
}
