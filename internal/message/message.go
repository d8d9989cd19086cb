// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package message requests the celebratory text shown next to an allocation.
// A Requester makes at most one call to a Backend and never returns an error:
// every failure is folded into a Result carrying the fallback message.
package message

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
)

// FallbackMessage is shown whenever the text-generation call fails.
const FallbackMessage = "Congratulations! Your engagement with the Irys ecosystem has been recognized. The future is bright."

// ErrNoBackend is recorded when the Requester has no configured backend.
var ErrNoBackend = errors.New("no text-generation backend configured")

// ErrEmptyResponse is recorded when the backend returns only whitespace.
var ErrEmptyResponse = errors.New("text-generation backend returned empty text")

// Backend abstracts the text-generation API so tests can supply a mock.
// Each call sends one prompt and returns the raw generated text.
type Backend interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one message request: either generated text, or
// the fallback with the error that caused it.
type Result struct {
	Text     string
	Fallback bool
	Err      error
}

// Generated builds a successful Result.
func Generated(text string) Result {
	return Result{Text: text}
}

// Failed builds a fallback Result recording err.
func Failed(err error) Result {
	return Result{Text: FallbackMessage, Fallback: true, Err: err}
}

// Requester turns an allocation into a message with a single backend call.
type Requester struct {
	backend Backend
	timeout time.Duration
	log     *zap.Logger
}

// NewRequester returns a Requester. A nil backend is allowed and always
// yields the fallback; a nil logger disables diagnostics.
func NewRequester(backend Backend, timeout time.Duration, log *zap.Logger) *Requester {
	if log == nil {
		log = zap.NewNop()
	}
	return &Requester{backend: backend, timeout: timeout, log: log}
}

// Request builds the prompt for value and roles and makes one attempt at
// generating text. It never retries.
func (r *Requester) Request(ctx context.Context, value int, roles string) Result {
	res := r.request(ctx, value, roles)
	if res.Fallback {
		r.log.Warn("message generation failed, using fallback",
			zap.Int("value", value),
			zap.Error(res.Err),
		)
	}
	return res
}

func (r *Requester) request(ctx context.Context, value int, roles string) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Failed(fmt.Errorf("backend panic: %v", p))
		}
	}()

	if r.backend == nil {
		return Failed(ErrNoBackend)
	}

	prompt, err := RenderPrompt(value, roles)
	if err != nil {
		return Failed(fmt.Errorf("rendering prompt: %w", err))
	}

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	text, err := r.backend.Generate(ctx, prompt)
	if err != nil {
		return Failed(err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Failed(ErrEmptyResponse)
	}
	return Generated(text)
}
