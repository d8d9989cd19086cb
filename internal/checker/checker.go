// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package checker drives one eligibility check through an explicit state
// machine:
//
//	Idle ──Submit──▶ Validating ──ok──▶ AwaitingGeneration ──▶ ResultReady
//	  ▲                  │                                        │
//	  └──invalid─────────┘◀───────────────Reset───────────────────┘
//
// Idle and ResultReady are the rest states. A Session holds no state shared
// with other sessions.
package checker

import (
	"context"
	"errors"
	"sync"

	"github.com/pdiddy/airdrop-checker/internal/allocation"
	"github.com/pdiddy/airdrop-checker/internal/message"
	"github.com/pdiddy/airdrop-checker/pkg/types"
)

// State is a step in the check lifecycle.
type State int

const (
	Idle State = iota
	Validating
	AwaitingGeneration
	ResultReady
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case AwaitingGeneration:
		return "awaiting_generation"
	case ResultReady:
		return "result_ready"
	}
	return "unknown"
}

// ErrWalletRequired is the only validation error. Its text is shown to the user.
var ErrWalletRequired = errors.New("Wallet address is required to check eligibility.")

// ErrBusy is returned by Submit while a message request is in flight.
var ErrBusy = errors.New("a check is already in progress")

// MessageRequester is satisfied by *message.Requester.
type MessageRequester interface {
	Request(ctx context.Context, value int, roles string) message.Result
}

// Session is the state of one form: its submission, its result, and the
// current State.
type Session struct {
	requester MessageRequester
	random    allocation.RandomSource

	// OnTransition, if set, is called after every state change.
	OnTransition func(from, to State)

	mu     sync.Mutex
	state  State
	sub    types.Submission
	result *types.AllocationResult
	err    error
}

// NewSession returns an Idle session. A nil random source means the
// unseeded production source.
func NewSession(requester MessageRequester, random allocation.RandomSource) *Session {
	if random == nil {
		random = allocation.NewRandomSource()
	}
	return &Session{requester: requester, random: random}
}

// Submit validates sub, scores it, requests the message, and stores the
// result. On a validation error the session returns to Idle with the error
// recorded; nothing is scored and no message is requested.
func (s *Session) Submit(ctx context.Context, sub types.Submission) (*types.AllocationResult, error) {
	s.mu.Lock()
	if s.state == Validating || s.state == AwaitingGeneration {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.sub = sub
	s.result = nil
	s.err = nil
	s.transition(Validating)

	if sub.WalletAddress == "" {
		s.err = ErrWalletRequired
		s.transition(Idle)
		s.mu.Unlock()
		return nil, ErrWalletRequired
	}

	breakdown := allocation.Calculate(sub, s.random)
	s.transition(AwaitingGeneration)
	s.mu.Unlock()

	var msg message.Result
	if s.requester != nil {
		msg = s.requester.Request(ctx, breakdown.Total(), sub.DiscordRoles)
	} else {
		msg = message.Failed(message.ErrNoBackend)
	}

	result := &types.AllocationResult{
		Value:     breakdown.Total(),
		Message:   msg.Text,
		Fallback:  msg.Fallback,
		Breakdown: breakdown,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = result
	s.transition(ResultReady)
	return result, nil
}

// Reset clears the submission, result, and error and returns to Idle.
// Resetting while a request is in flight is a no-op.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == Validating || s.state == AwaitingGeneration {
		return
	}
	s.sub = types.Submission{}
	s.result = nil
	s.err = nil
	s.transition(Idle)
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Submission returns the last submitted input.
func (s *Session) Submission() types.Submission {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub
}

// Result returns the result, or nil unless the session is ResultReady.
func (s *Session) Result() *types.AllocationResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Err returns the validation error from the last Submit, if any.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// transition must be called with s.mu held.
func (s *Session) transition(to State) {
	from := s.state
	s.state = to
	if s.OnTransition != nil {
		s.OnTransition(from, to)
	}
}
