// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/voting"
)

// LoadSeedFile reads a JSON array of nominations in the wire format.
func LoadSeedFile(path string, mode voting.Mode) ([]voting.Nomination, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var payload []models.NominationPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	if err := models.ValidateBallot(payload); err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}

	out := make([]voting.Nomination, len(payload))
	for i, p := range payload {
		out[i] = p.ToNomination(mode)
	}
	return out, nil
}

// Seed inserts nominations and candidates that do not exist yet.
// Existing rows (and their vote counts) are left alone.
func Seed(ctx context.Context, db *sql.DB, ballot []voting.Nomination) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, n := range ballot {
		h := n.Info()
		votes := 0
		if flat, ok := n.(voting.FlatNomination); ok {
			votes = flat.Votes
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO nomination (id, title, emoji, description, votes)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (id) DO NOTHING
		`, h.ID, h.Title, h.Emoji, h.Description, votes)
		if err != nil {
			return fmt.Errorf("failed to seed nomination %d: %w", h.ID, err)
		}

		nested, ok := n.(voting.NominationWithCandidates)
		if !ok {
			continue
		}
		for _, c := range nested.Candidates {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO candidate (id, nomination_id, name, votes)
				VALUES ($1, $2, $3, $4)
				ON CONFLICT (id) DO NOTHING
			`, c.ID, h.ID, c.Name, c.Votes)
			if err != nil {
				return fmt.Errorf("failed to seed candidate %d: %w", c.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}
