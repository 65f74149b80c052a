// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns the server Config:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

ParseClientFlags returns the terminal client's ClientConfig:

	cfg, err := cliparse.ParseClientFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseType: sqlite (default) or postgres
  - DatabaseURL: connection string (defaults to a local SQLite file)
  - VoterSalt: Secret for voter identity hashing (required)
  - Mode: nested (default) or flat
  - Deadline: informational voting deadline (optional)
  - SeedFile: JSON nominations to seed instead of the built-in ballot

# CLI Flags

	-p            Server port
	-d            Database URL
	-t            Database type
	-m            Vote mode
	--deadline    Voting deadline (RFC3339)
	--seed        Seed file
	--voter-salt  Voter hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	VOTE_MODE     → -m
	VOTE_DEADLINE → --deadline
	SEED_FILE     → --seed
	VOTER_SALT    → --voter-salt
	VOTE_API_URL  → -u (client)

CLI flags take precedence over environment variables, and environment
variables take precedence over a .env file:

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}

# Validation

ParseFlags returns an error if:

  - VOTER_SALT is missing
  - DATABASE_URL is missing for postgres
  - the mode, deadline or port cannot be parsed
*/
package cliparse
