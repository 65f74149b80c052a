// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"math"
	"sort"
)

// Standing is one votable entity in the results, labelled with its nomination.
type Standing struct {
	NominationID    int64
	NominationTitle string
	Emoji           string
	ID              int64
	Name            string
	Votes           int
	Percent         float64 // 0-100
}

// DisplayPercent is Percent rounded to a whole number.
func (s Standing) DisplayPercent() int {
	return int(math.Round(s.Percent))
}

type Tally struct {
	Total     int
	Standings []Standing
}

// Rank flattens the ballot and orders it by votes, most first. Entities with
// equal votes keep their ballot order.
func Rank(noms []Nomination) Tally {
	var t Tally
	for _, n := range noms {
		h := n.Info()
		for _, v := range n.Votables() {
			t.Standings = append(t.Standings, Standing{
				NominationID:    h.ID,
				NominationTitle: h.Title,
				Emoji:           h.Emoji,
				ID:              v.ID,
				Name:            v.Name,
				Votes:           v.Votes,
			})
			t.Total += v.Votes
		}
	}

	if t.Total > 0 {
		for i := range t.Standings {
			t.Standings[i].Percent = float64(t.Standings[i].Votes) / float64(t.Total) * 100
		}
	}

	sort.SliceStable(t.Standings, func(i, j int) bool {
		return t.Standings[i].Votes > t.Standings[j].Votes
	})

	return t
}
