// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The same DDL runs on PostgreSQL and SQLite.
const schema = `
-- Nominations (votes is used in flat mode)
CREATE TABLE IF NOT EXISTS nomination (
    id INTEGER PRIMARY KEY,
    title TEXT NOT NULL,
    emoji TEXT NOT NULL DEFAULT '',
    description TEXT NOT NULL DEFAULT '',
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0)
);

-- Candidates (nested mode); ids are unique across all nominations
CREATE TABLE IF NOT EXISTS candidate (
    id INTEGER PRIMARY KEY,
    nomination_id INTEGER NOT NULL REFERENCES nomination(id) ON DELETE CASCADE,
    name TEXT NOT NULL,
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0)
);

CREATE INDEX IF NOT EXISTS idx_candidate_nomination_id ON candidate(nomination_id);

-- One vote per voter per nomination
CREATE TABLE IF NOT EXISTS user_vote (
    id TEXT PRIMARY KEY,
    voter_hash TEXT NOT NULL,
    nomination_id INTEGER NOT NULL REFERENCES nomination(id) ON DELETE CASCADE,
    candidate_id INTEGER REFERENCES candidate(id) ON DELETE CASCADE,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    UNIQUE (voter_hash, nomination_id)
);

CREATE INDEX IF NOT EXISTS idx_user_vote_voter_hash ON user_vote(voter_hash);
`
