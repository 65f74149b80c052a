// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"errors"
	"fmt"
)

// User-facing messages for submission outcomes.
const (
	MsgAccepted         = "Your vote has been counted"
	MsgVoteFailed       = "Vote failed"
	MsgConnectionFailed = "Could not connect to the voting server"
)

// Submitter delivers a vote to wherever votes are counted. A nil error means
// the vote was accepted.
type Submitter interface {
	SubmitVote(ctx context.Context, target int64) error
}

// LocalBallotBox accepts every vote. It backs the local-only variant where
// counts live in memory and there is nothing to fail.
type LocalBallotBox struct{}

func (LocalBallotBox) SubmitVote(context.Context, int64) error { return nil }

// RejectedError is returned by a Submitter when the vote server answered and
// refused the vote. Message is the server's user-facing reason.
type RejectedError struct {
	StatusCode int
	Message    string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("vote rejected (status %d): %s", e.StatusCode, e.Message)
}

type Status int

const (
	StatusAccepted Status = iota
	StatusIneligible
	StatusRejected
	StatusTransportFailure
)

func (s Status) String() string {
	switch s {
	case StatusAccepted:
		return "accepted"
	case StatusIneligible:
		return "ineligible"
	case StatusRejected:
		return "rejected"
	case StatusTransportFailure:
		return "transport_failure"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Outcome is the result of one vote attempt. State is the voter's state after
// the attempt; it differs from the input only when Status is StatusAccepted.
type Outcome struct {
	Status  Status
	State   State
	Reason  Reason
	Message string
	Err     error
}

func (o Outcome) Accepted() bool { return o.Status == StatusAccepted }

// Submit checks eligibility, hands the vote to sub and applies it locally only
// once sub has accepted it.
func Submit(ctx context.Context, state State, target int64, sub Submitter) Outcome {
	d := Check(state, target)
	if !d.Allowed {
		return ineligible(state, d.Reason)
	}

	if err := sub.SubmitVote(ctx, target); err != nil {
		return failed(state, err)
	}

	next, err := state.Apply(target)
	if err != nil {
		return ineligible(state, ReasonUnknownTarget)
	}
	return accepted(next)
}

func accepted(state State) Outcome {
	return Outcome{Status: StatusAccepted, State: state, Message: MsgAccepted}
}

func ineligible(state State, r Reason) Outcome {
	return Outcome{
		Status:  StatusIneligible,
		State:   state,
		Reason:  r,
		Message: r.String(),
		Err:     r.Err(),
	}
}

// failed classifies a submitter error: a server refusal keeps the server's
// wording, anything else is reported as a connectivity problem.
func failed(state State, err error) Outcome {
	var rejected *RejectedError
	if errors.As(err, &rejected) {
		msg := rejected.Message
		if msg == "" {
			msg = MsgVoteFailed
		}
		return Outcome{Status: StatusRejected, State: state, Message: msg, Err: err}
	}
	return Outcome{Status: StatusTransportFailure, State: state, Message: MsgConnectionFailed, Err: err}
}
