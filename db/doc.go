// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database connections, schema creation and seeding.

# Connecting

Open accepts "postgres" (lib/pq) or "sqlite" (modernc.org/sqlite):

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.
The DDL is shared by both databases.

# Tables

  - nomination: id, title, emoji, description, votes (flat mode count)
  - candidate: nested-mode candidates with their vote counts
  - user_vote: one row per counted vote, keyed by a hashed voter identity

# Relationships

	nomination 1──* candidate
	nomination 1──* user_vote
	candidate  1──* user_vote

UNIQUE (voter_hash, nomination_id) on user_vote is what stops a voter from
voting twice in one nomination when requests race. IsUniqueViolation
recognizes that failure from either driver.

# Seeding

	ballot := voting.DefaultBallot(voting.ModeNested)
	if err := db.Seed(ctx, conn, ballot); err != nil {
		log.Fatal(err)
	}

Seed uses ON CONFLICT (id) DO NOTHING, so restarting the server never resets
counts. LoadSeedFile reads a JSON array in the same shape as the GET response.
*/
package db
