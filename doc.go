// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Quickly Vote API server.

Quickly Vote is an awards-style ballot: voters see a set of nominations,
cast at most one vote per nomination before a deadline, and watch the live
tally. A ballot is either flat (vote for a nomination) or nested (vote for
one candidate within a nomination).

# Starting the Server

With no configuration beyond the voter salt, the server uses a local SQLite
file and the built-in nested ballot:

	VOTER_SALT=... go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..." -m flat --voter-salt ...

A .env file in the working directory is loaded first; variables already set
in the environment win.

# Configuration

Required settings:

  - VOTER_SALT (--voter-salt): Secret for hashing client IPs into voter ids

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): Connection string (required for postgres)
  - VOTE_MODE (-m): nested or flat (default: nested)
  - VOTE_DEADLINE (--deadline): RFC3339 time reported to clients
  - SEED_FILE (--seed): JSON array of nominations to seed instead of the default ballot

# Architecture

  - voting: Eligibility, submission outcomes, tally and countdown (no I/O)
  - client: HTTP client for the voting endpoint
  - handlers: HTTP request handlers (state, vote, results)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types and conversions
  - auth: Voter hashing and vote ids
  - db: Drivers, schema and seeding
  - cliparse: Configuration parsing
  - cmd/ballot: Terminal voting client

See package documentation for each component.
*/
package main
