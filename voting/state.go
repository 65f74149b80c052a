// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"slices"
)

// VotedSet holds the target ids a voter has already voted for.
// It is copy-on-write: With never modifies the receiver.
type VotedSet struct {
	ids map[int64]struct{}
}

func NewVotedSet(ids ...int64) VotedSet {
	s := VotedSet{ids: make(map[int64]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[id] = struct{}{}
	}
	return s
}

func (s VotedSet) Has(id int64) bool {
	_, ok := s.ids[id]
	return ok
}

func (s VotedSet) Len() int { return len(s.ids) }

// With returns a new set that also contains id.
func (s VotedSet) With(id int64) VotedSet {
	next := VotedSet{ids: make(map[int64]struct{}, len(s.ids)+1)}
	for k := range s.ids {
		next.ids[k] = struct{}{}
	}
	next.ids[id] = struct{}{}
	return next
}

// IDs returns the members in ascending order.
func (s VotedSet) IDs() []int64 {
	out := make([]int64, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// State is everything a voter's session knows: the ballot and what they voted for.
type State struct {
	Nominations []Nomination
	Voted       VotedSet
}

// Find resolves a target id to its owning nomination.
func (s State) Find(target int64) (Nomination, Votable, bool) {
	for _, n := range s.Nominations {
		for _, v := range n.Votables() {
			if v.ID == target {
				return n, v, true
			}
		}
	}
	return nil, Votable{}, false
}

// Mode reports the shape of the ballot, or "" for an empty ballot.
func (s State) Mode() Mode {
	if len(s.Nominations) == 0 {
		return ""
	}
	return s.Nominations[0].Mode()
}

// Apply records one counted vote for target and returns the resulting state.
// The receiver is left untouched.
func (s State) Apply(target int64) (State, error) {
	idx := -1
	for i, n := range s.Nominations {
		for _, v := range n.Votables() {
			if v.ID == target {
				idx = i
				break
			}
		}
		if idx >= 0 {
			break
		}
	}
	if idx < 0 {
		return s, ErrUnknownTarget
	}

	noms := make([]Nomination, len(s.Nominations))
	copy(noms, s.Nominations)
	noms[idx] = noms[idx].withVote(target)

	return State{Nominations: noms, Voted: s.Voted.With(target)}, nil
}
