// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

// DefaultBallot returns the built-in ballot in the requested shape.
func DefaultBallot(mode Mode) []Nomination {
	nested := []NominationWithCandidates{
		{
			ID:          1,
			Title:       "Person of the Year",
			Emoji:       "🏆",
			Description: "The one who made the biggest difference this year",
			Candidates: []Candidate{
				{ID: 101, Name: "Alice"},
				{ID: 102, Name: "Bob"},
				{ID: 103, Name: "Carol"},
			},
		},
		{
			ID:          2,
			Title:       "Breakthrough of the Year",
			Emoji:       "🚀",
			Description: "Fastest growth from day one",
			Candidates: []Candidate{
				{ID: 201, Name: "Dave"},
				{ID: 202, Name: "Erin"},
			},
		},
		{
			ID:          3,
			Title:       "Soul of the Team",
			Emoji:       "💛",
			Description: "Always there when it counts",
			Candidates: []Candidate{
				{ID: 301, Name: "Frank"},
				{ID: 302, Name: "Grace"},
				{ID: 303, Name: "Heidi"},
			},
		},
		{
			ID:          4,
			Title:       "Joke of the Year",
			Emoji:       "😂",
			Description: "The line everyone still quotes",
			Candidates: []Candidate{
				{ID: 401, Name: "Ivan"},
				{ID: 402, Name: "Judy"},
			},
		},
	}

	out := make([]Nomination, len(nested))
	for i, n := range nested {
		if mode == ModeFlat {
			out[i] = FlatNomination{ID: n.ID, Title: n.Title, Description: n.Description, Emoji: n.Emoji}
			continue
		}
		out[i] = n
	}
	return out
}
