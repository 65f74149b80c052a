// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "errors"

var (
	ErrUnknownTarget          = errors.New("unknown voting target")
	ErrAlreadyVotedCandidate  = errors.New("already voted for this candidate")
	ErrAlreadyVotedNomination = errors.New("already voted in this nomination")
	ErrVoteInFlight           = errors.New("vote already in progress")
	ErrLoadFailed             = errors.New("failed to load nominations")
)

// Reason explains why a vote was refused before it reached a submitter.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonUnknownTarget
	ReasonAlreadyVotedCandidate
	ReasonAlreadyVotedNomination
	ReasonInFlight
)

// Err maps the reason to its sentinel error, or nil for ReasonNone.
func (r Reason) Err() error {
	switch r {
	case ReasonUnknownTarget:
		return ErrUnknownTarget
	case ReasonAlreadyVotedCandidate:
		return ErrAlreadyVotedCandidate
	case ReasonAlreadyVotedNomination:
		return ErrAlreadyVotedNomination
	case ReasonInFlight:
		return ErrVoteInFlight
	}
	return nil
}

func (r Reason) String() string {
	if err := r.Err(); err != nil {
		return err.Error()
	}
	return "eligible"
}

type Decision struct {
	Allowed bool
	Reason  Reason
	// NominationID is the owning nomination of the target, zero if unknown.
	NominationID int64
}

// Check decides whether target may receive a vote given what the voter has
// already voted for. It has no side effects.
//
// For a flat nomination the target is the nomination, so a repeat vote is
// reported as ReasonAlreadyVotedNomination.
func Check(state State, target int64) Decision {
	nom, _, ok := state.Find(target)
	if !ok {
		return Decision{Reason: ReasonUnknownTarget}
	}
	nomID := nom.Info().ID

	if state.Voted.Has(target) {
		if nom.Mode() == ModeFlat {
			return Decision{Reason: ReasonAlreadyVotedNomination, NominationID: nomID}
		}
		return Decision{Reason: ReasonAlreadyVotedCandidate, NominationID: nomID}
	}

	for _, sibling := range nom.Votables() {
		if sibling.ID != target && state.Voted.Has(sibling.ID) {
			return Decision{Reason: ReasonAlreadyVotedNomination, NominationID: nomID}
		}
	}

	return Decision{Allowed: true, NominationID: nomID}
}
