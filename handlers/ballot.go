// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/danielhkuo/quickly-vote/voting"
)

// queryer is satisfied by *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// loadBallot reads every nomination (and candidate, in nested mode) in id order.
func loadBallot(ctx context.Context, q queryer, mode voting.Mode) ([]voting.Nomination, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, title, emoji, description, votes
		FROM nomination
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query nominations: %w", err)
	}
	defer rows.Close()

	var flat []voting.FlatNomination
	for rows.Next() {
		var n voting.FlatNomination
		if err := rows.Scan(&n.ID, &n.Title, &n.Emoji, &n.Description, &n.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan nomination: %w", err)
		}
		flat = append(flat, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read nominations: %w", err)
	}

	ballot := make([]voting.Nomination, 0, len(flat))
	if mode == voting.ModeFlat {
		for _, n := range flat {
			ballot = append(ballot, n)
		}
		return ballot, nil
	}

	candidates, err := loadCandidates(ctx, q, 0)
	if err != nil {
		return nil, err
	}
	for _, n := range flat {
		ballot = append(ballot, voting.NominationWithCandidates{
			ID:          n.ID,
			Title:       n.Title,
			Description: n.Description,
			Emoji:       n.Emoji,
			Candidates:  candidates[n.ID],
		})
	}
	return ballot, nil
}

// loadCandidates groups candidates by nomination id. nominationID 0 loads all.
func loadCandidates(ctx context.Context, q queryer, nominationID int64) (map[int64][]voting.Candidate, error) {
	query := `
		SELECT nomination_id, id, name, votes
		FROM candidate
		ORDER BY nomination_id, id
	`
	args := []any{}
	if nominationID != 0 {
		query = `
			SELECT nomination_id, id, name, votes
			FROM candidate
			WHERE nomination_id = $1
			ORDER BY id
		`
		args = append(args, nominationID)
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	out := make(map[int64][]voting.Candidate)
	for rows.Next() {
		var nomID int64
		var c voting.Candidate
		if err := rows.Scan(&nomID, &c.ID, &c.Name, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		out[nomID] = append(out[nomID], c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read candidates: %w", err)
	}
	return out, nil
}

// votedFor lists the target ids the voter has voted for: candidate ids in
// nested mode, nomination ids in flat mode. nominationID 0 means all nominations.
func votedFor(ctx context.Context, q queryer, mode voting.Mode, voterHash string, nominationID int64) ([]int64, error) {
	column := "candidate_id"
	if mode == voting.ModeFlat {
		column = "nomination_id"
	}

	query := `SELECT ` + column + ` FROM user_vote WHERE voter_hash = $1 AND ` + column + ` IS NOT NULL`
	args := []any{voterHash}
	if nominationID != 0 {
		query += ` AND nomination_id = $2`
		args = append(args, nominationID)
	}
	query += ` ORDER BY ` + column

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query votes: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan vote: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read votes: %w", err)
	}
	return ids, nil
}
