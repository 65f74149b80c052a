package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/danielhkuo/quickly-vote/voting"
)

func TestStateResponse_WireShape(t *testing.T) {
	state := voting.State{
		Nominations: []voting.Nomination{
			voting.FlatNomination{ID: 1, Title: "Best Talk", Votes: 0},
			voting.NominationWithCandidates{ID: 2, Title: "MVP", Candidates: []voting.Candidate{{ID: 21, Name: "Ana", Votes: 3}}},
		},
		Voted: voting.NewVotedSet(),
	}

	data, err := json.Marshal(NewStateResponse(state))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)

	// Flat nominations always carry votes, even zero; nested ones never do
	if !strings.Contains(s, `{"id":1,"title":"Best Talk","emoji":"","description":"","votes":0}`) {
		t.Errorf("unexpected flat encoding: %s", s)
	}
	if !strings.Contains(s, `"candidates":[{"id":21,"name":"Ana","votes":3}]`) {
		t.Errorf("unexpected nested encoding: %s", s)
	}
	if !strings.Contains(s, `"votedFor":[]`) {
		t.Errorf("Expected empty votedFor array, got %s", s)
	}
	if strings.Contains(s, `"deadline"`) {
		t.Errorf("Expected deadline omitted, got %s", s)
	}
}

func TestNominationPayload_EmptyCandidates(t *testing.T) {
	tests := []struct {
		name string
		nom  voting.Nomination
		want string
	}{
		{
			"nested without candidates",
			voting.NominationWithCandidates{ID: 9, Title: "Empty"},
			`{"id":9,"title":"Empty","emoji":"","description":"","candidates":[]}`,
		},
		{
			"flat",
			voting.FlatNomination{ID: 9, Title: "Empty"},
			`{"id":9,"title":"Empty","emoji":"","description":"","votes":0}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(FromNomination(tt.nom))
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, data)
			}
		})
	}

	// A nil slice set by hand is still written as []
	data, _ := json.Marshal(NominationPayload{ID: 1, Title: "x"})
	if !strings.Contains(string(data), `"candidates":[]`) {
		t.Errorf("Expected empty candidates array, got %s", data)
	}
}

func TestToState(t *testing.T) {
	raw := `{"nominations":[{"id":1,"title":"A","candidates":[{"id":11,"name":"x","votes":2},{"id":12,"name":"y","votes":0}]}],"votedFor":[12]}`

	var resp StateResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	state := resp.ToState(voting.ModeNested)
	if state.Mode() != voting.ModeNested {
		t.Fatalf("Expected nested state, got %q", state.Mode())
	}
	if d := voting.Check(state, 11); d.Reason != voting.ReasonAlreadyVotedNomination {
		t.Errorf("Expected sibling refusal, got %q", d.Reason)
	}

	// The same nominations read in flat mode have no candidates
	flat := resp.ToState(voting.ModeFlat)
	if _, _, ok := flat.Find(11); ok {
		t.Error("Expected candidate ids to be unknown in flat mode")
	}
}

func TestValidateBallot(t *testing.T) {
	votes := -1
	tests := []struct {
		name    string
		noms    []NominationPayload
		wantErr bool
		dup     bool
	}{
		{"valid", []NominationPayload{{ID: 1, Title: "a"}, {ID: 2, Title: "b", Candidates: []CandidatePayload{{ID: 5, Name: "x"}}}}, false, false},
		{"empty", nil, false, false},
		{"negative votes", []NominationPayload{{ID: 1, Title: "a", Votes: &votes}}, true, false},
		{"nameless candidate", []NominationPayload{{ID: 1, Title: "a", Candidates: []CandidatePayload{{ID: 5}}}}, true, false},
		{"duplicate candidate", []NominationPayload{
			{ID: 1, Title: "a", Candidates: []CandidatePayload{{ID: 5, Name: "x"}}},
			{ID: 2, Title: "b", Candidates: []CandidatePayload{{ID: 5, Name: "y"}}},
		}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBallot(tt.noms)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateBallot() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.dup && !errors.Is(err, ErrDuplicateID) {
				t.Errorf("Expected ErrDuplicateID, got %v", err)
			}
		})
	}
}

func TestNewResultsResponse(t *testing.T) {
	tally := voting.Rank([]voting.Nomination{
		voting.FlatNomination{ID: 1, Title: "A", Votes: 1},
		voting.FlatNomination{ID: 2, Title: "B", Votes: 3},
	})

	resp := NewResultsResponse(tally)
	if resp.Total != 4 {
		t.Errorf("Expected total 4, got %d", resp.Total)
	}
	if resp.Standings[0].ID != 2 || resp.Standings[0].Percent != 75 {
		t.Errorf("unexpected leader %+v", resp.Standings[0])
	}
}
