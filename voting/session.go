// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Loader fetches the ballot and the voter's existing votes.
type Loader interface {
	Fetch(ctx context.Context) (State, error)
}

// Remote is a vote server: it can hydrate a session and accept votes.
type Remote interface {
	Loader
	Submitter
}

// Session is a voter's state shared between concurrent callers. At most one
// vote per nomination is in flight at a time.
type Session struct {
	mu       sync.Mutex
	state    State
	loaded   bool
	inflight map[int64]struct{} // nomination ids

	loader    Loader
	submitter Submitter
	logger    *slog.Logger

	loadAttempts int
	retryDelay   time.Duration
}

type Option func(*Session)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLoadRetry makes Load try attempts times, waiting delay between tries.
func WithLoadRetry(attempts int, delay time.Duration) Option {
	return func(s *Session) {
		if attempts > 0 {
			s.loadAttempts = attempts
		}
		if delay >= 0 {
			s.retryDelay = delay
		}
	}
}

func newSession(opts []Option) *Session {
	s := &Session{
		inflight:     make(map[int64]struct{}),
		logger:       slog.Default(),
		loadAttempts: 1,
		retryDelay:   time.Second,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewLocalSession starts a session over seed data. Votes are always accepted
// and only change memory.
func NewLocalSession(seed []Nomination, opts ...Option) *Session {
	s := newSession(opts)
	noms := make([]Nomination, len(seed))
	copy(noms, seed)
	s.state = State{Nominations: noms, Voted: NewVotedSet()}
	s.loaded = true
	s.submitter = LocalBallotBox{}
	return s
}

// NewRemoteSession starts an empty session backed by remote. Call Load before voting.
func NewRemoteSession(remote Remote, opts ...Option) *Session {
	s := newSession(opts)
	s.state = State{Voted: NewVotedSet()}
	s.loader = remote
	s.submitter = remote
	return s
}

// Load hydrates the session from its loader. Local sessions are already loaded.
func (s *Session) Load(ctx context.Context) error {
	if s.loader == nil {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= s.loadAttempts; attempt++ {
		state, err := s.loader.Fetch(ctx)
		if err == nil {
			s.mu.Lock()
			s.state = state
			s.loaded = true
			s.mu.Unlock()
			s.logger.Info("nominations loaded",
				"nominations", len(state.Nominations),
				"voted", state.Voted.Len(),
			)
			return nil
		}

		lastErr = err
		s.logger.Warn("nomination load failed", "attempt", attempt, "error", err)
		if attempt == s.loadAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrLoadFailed, ctx.Err())
		case <-time.After(s.retryDelay):
		}
	}

	return fmt.Errorf("%w: %w", ErrLoadFailed, lastErr)
}

func (s *Session) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// State returns a snapshot of the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) Check(target int64) Decision {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.check(target)
}

func (s *Session) check(target int64) Decision {
	d := Check(s.state, target)
	if !d.Allowed {
		return d
	}
	if _, busy := s.inflight[d.NominationID]; busy {
		return Decision{Reason: ReasonInFlight, NominationID: d.NominationID}
	}
	return d
}

// Vote casts a vote for target. The lock is not held while the submitter runs.
func (s *Session) Vote(ctx context.Context, target int64) Outcome {
	s.mu.Lock()
	d := s.check(target)
	if !d.Allowed {
		state := s.state
		s.mu.Unlock()
		s.logger.Info("vote refused", "target", target, "reason", d.Reason.String())
		return ineligible(state, d.Reason)
	}
	s.inflight[d.NominationID] = struct{}{}
	s.mu.Unlock()

	err := s.submitter.SubmitVote(ctx, target)

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inflight, d.NominationID)

	if err != nil {
		out := failed(s.state, err)
		s.logger.Warn("vote not counted", "target", target, "status", out.Status.String(), "error", err)
		return out
	}

	// A reload while the request was out may already include this vote.
	if s.state.Voted.Has(target) {
		return accepted(s.state)
	}

	next, err := s.state.Apply(target)
	if err != nil {
		return ineligible(s.state, ReasonUnknownTarget)
	}
	s.state = next
	s.logger.Info("vote counted", "target", target, "nomination_id", d.NominationID)
	return accepted(next)
}

// Rank returns the current standings.
func (s *Session) Rank() Tally {
	return Rank(s.State().Nominations)
}
