// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"fmt"
	"strings"
)

// Mode selects the nomination shape a ballot uses.
type Mode string

const (
	ModeFlat   Mode = "flat"
	ModeNested Mode = "nested"
)

// ParseMode accepts "flat" or "nested" (case-insensitive).
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeFlat:
		return ModeFlat, nil
	case ModeNested:
		return ModeNested, nil
	}
	return "", fmt.Errorf("unknown vote mode %q (want flat or nested)", s)
}

// Header is the descriptive part shared by both nomination shapes.
type Header struct {
	ID          int64
	Title       string
	Description string
	Emoji       string
}

// Votable is anything a voter can pick: a candidate, or a flat nomination.
type Votable struct {
	ID    int64
	Name  string
	Votes int
}

// Nomination is implemented by FlatNomination and NominationWithCandidates only.
type Nomination interface {
	Info() Header
	Votables() []Votable
	Mode() Mode

	// withVote returns a copy with one more vote for target.
	withVote(target int64) Nomination
}

type FlatNomination struct {
	ID          int64
	Title       string
	Description string
	Emoji       string
	Votes       int
}

func (n FlatNomination) Info() Header {
	return Header{ID: n.ID, Title: n.Title, Description: n.Description, Emoji: n.Emoji}
}

func (n FlatNomination) Votables() []Votable {
	return []Votable{{ID: n.ID, Name: n.Title, Votes: n.Votes}}
}

func (n FlatNomination) Mode() Mode { return ModeFlat }

func (n FlatNomination) withVote(target int64) Nomination {
	if target == n.ID {
		n.Votes++
	}
	return n
}

// Candidate ids are unique across the whole ballot, not only within their nomination.
type Candidate struct {
	ID    int64
	Name  string
	Votes int
}

type NominationWithCandidates struct {
	ID          int64
	Title       string
	Description string
	Emoji       string
	Candidates  []Candidate
}

func (n NominationWithCandidates) Info() Header {
	return Header{ID: n.ID, Title: n.Title, Description: n.Description, Emoji: n.Emoji}
}

func (n NominationWithCandidates) Votables() []Votable {
	out := make([]Votable, len(n.Candidates))
	for i, c := range n.Candidates {
		out[i] = Votable{ID: c.ID, Name: c.Name, Votes: c.Votes}
	}
	return out
}

func (n NominationWithCandidates) Mode() Mode { return ModeNested }

func (n NominationWithCandidates) withVote(target int64) Nomination {
	candidates := make([]Candidate, len(n.Candidates))
	copy(candidates, n.Candidates)
	for i := range candidates {
		if candidates[i].ID == target {
			candidates[i].Votes++
		}
	}
	n.Candidates = candidates
	return n
}
