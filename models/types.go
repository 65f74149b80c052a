package models

import (
	"encoding/json"
	"time"

	"github.com/danielhkuo/quickly-vote/voting"
)

// Request types

// Exactly one of the fields is used, depending on the server's vote mode.
type VoteRequest struct {
	CandidateID  int64 `json:"candidateId,omitempty"`
	NominationID int64 `json:"nominationId,omitempty"`
}

// Response types

type CandidatePayload struct {
	ID    int64  `json:"id" validate:"gt=0"`
	Name  string `json:"name" validate:"required"`
	Votes int    `json:"votes" validate:"gte=0"`
}

// NominationPayload is a nomination on the wire. Nested nominations carry
// Candidates; flat ones carry Votes.
type NominationPayload struct {
	ID          int64              `json:"id" validate:"gt=0"`
	Title       string             `json:"title" validate:"required"`
	Emoji       string             `json:"emoji"`
	Description string             `json:"description"`
	Votes       *int               `json:"votes,omitempty" validate:"omitempty,gte=0"`
	Candidates  []CandidatePayload `json:"candidates,omitempty" validate:"dive"`
}

// MarshalJSON always writes candidates for a nested nomination, as [] when
// there are none. Flat nominations (Votes set) never carry the key.
func (p NominationPayload) MarshalJSON() ([]byte, error) {
	type plain NominationPayload
	if p.Votes != nil {
		return json.Marshal(plain(p))
	}

	candidates := p.Candidates
	if candidates == nil {
		candidates = []CandidatePayload{}
	}
	return json.Marshal(struct {
		plain
		Candidates []CandidatePayload `json:"candidates"`
	}{plain(p), candidates})
}

type StateResponse struct {
	Nominations []NominationPayload `json:"nominations" validate:"dive"`
	VotedFor    []int64             `json:"votedFor" validate:"dive,gt=0"`
	Deadline    *time.Time          `json:"deadline,omitempty"`
}

type VoteResponse struct {
	Success bool `json:"success"`
}

type StandingPayload struct {
	NominationID    int64   `json:"nominationId"`
	NominationTitle string  `json:"nominationTitle"`
	Emoji           string  `json:"emoji"`
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	Votes           int     `json:"votes"`
	Percent         float64 `json:"percent"`
}

type ResultsResponse struct {
	Total     int               `json:"total"`
	Standings []StandingPayload `json:"standings"`
}

// Error response

type ErrorResponse struct {
	Error string `json:"error"`
}

// Conversions

// FromNomination encodes a domain nomination.
func FromNomination(n voting.Nomination) NominationPayload {
	h := n.Info()
	p := NominationPayload{
		ID:          h.ID,
		Title:       h.Title,
		Emoji:       h.Emoji,
		Description: h.Description,
	}
	switch v := n.(type) {
	case voting.FlatNomination:
		votes := v.Votes
		p.Votes = &votes
	case voting.NominationWithCandidates:
		p.Candidates = make([]CandidatePayload, len(v.Candidates))
		for i, c := range v.Candidates {
			p.Candidates[i] = CandidatePayload{ID: c.ID, Name: c.Name, Votes: c.Votes}
		}
	}
	return p
}

// ToNomination decodes a wire nomination in the given mode.
func (p NominationPayload) ToNomination(mode voting.Mode) voting.Nomination {
	if mode == voting.ModeFlat {
		n := voting.FlatNomination{ID: p.ID, Title: p.Title, Description: p.Description, Emoji: p.Emoji}
		if p.Votes != nil {
			n.Votes = *p.Votes
		}
		return n
	}

	n := voting.NominationWithCandidates{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Emoji:       p.Emoji,
		Candidates:  make([]voting.Candidate, len(p.Candidates)),
	}
	for i, c := range p.Candidates {
		n.Candidates[i] = voting.Candidate{ID: c.ID, Name: c.Name, Votes: c.Votes}
	}
	return n
}

// NewStateResponse encodes a voter's state. VotedFor is never null on the wire.
func NewStateResponse(state voting.State) StateResponse {
	resp := StateResponse{
		Nominations: make([]NominationPayload, len(state.Nominations)),
		VotedFor:    state.Voted.IDs(),
	}
	for i, n := range state.Nominations {
		resp.Nominations[i] = FromNomination(n)
	}
	return resp
}

// ToState decodes a state response in the given mode.
func (r StateResponse) ToState(mode voting.Mode) voting.State {
	noms := make([]voting.Nomination, len(r.Nominations))
	for i, p := range r.Nominations {
		noms[i] = p.ToNomination(mode)
	}
	return voting.State{Nominations: noms, Voted: voting.NewVotedSet(r.VotedFor...)}
}

func NewResultsResponse(t voting.Tally) ResultsResponse {
	resp := ResultsResponse{Total: t.Total, Standings: make([]StandingPayload, len(t.Standings))}
	for i, s := range t.Standings {
		resp.Standings[i] = StandingPayload{
			NominationID:    s.NominationID,
			NominationTitle: s.NominationTitle,
			Emoji:           s.Emoji,
			ID:              s.ID,
			Name:            s.Name,
			Votes:           s.Votes,
			Percent:         s.Percent,
		}
	}
	return resp
}
