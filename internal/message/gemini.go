// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package message

import (
	"context"
	"fmt"
	"net/http"

	"google.golang.org/genai"
)

// GeminiBackend generates text with Google's Gemini API.
type GeminiBackend struct {
	client *genai.Client
	model  string
}

// NewGeminiBackend creates a Gemini client. baseURL and httpClient are
// optional and exist so tests can point the client at an httptest server.
func NewGeminiBackend(ctx context.Context, apiKey, model, baseURL string, httpClient *http.Client) (*GeminiBackend, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}

	cfg := &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	}
	if baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}
	return &GeminiBackend{client: client, model: model}, nil
}

// Generate sends prompt as a single user turn and returns the response text.
func (g *GeminiBackend) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("calling Gemini API: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini API returned no candidates")
	}
	return resp.Text(), nil
}

// Name returns the backend name with its model.
func (g *GeminiBackend) Name() string {
	return "gemini:" + g.model
}
