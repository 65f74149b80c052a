// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import "testing"

func TestDefaultBallot(t *testing.T) {
	for _, mode := range []Mode{ModeNested, ModeFlat} {
		t.Run(string(mode), func(t *testing.T) {
			ballot := DefaultBallot(mode)
			if len(ballot) == 0 {
				t.Fatal("Expected a non-empty ballot")
			}

			seen := make(map[int64]bool)
			for _, n := range ballot {
				if n.Mode() != mode {
					t.Errorf("nomination %d: expected mode %q, got %q", n.Info().ID, mode, n.Mode())
				}
				for _, v := range n.Votables() {
					if seen[v.ID] {
						t.Errorf("duplicate votable id %d", v.ID)
					}
					seen[v.ID] = true
					if v.Votes != 0 {
						t.Errorf("votable %d: expected 0 votes, got %d", v.ID, v.Votes)
					}
				}
			}
		})
	}
}
