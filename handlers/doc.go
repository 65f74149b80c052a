// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the voting API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - NominationHandler: ballot state for a voter, ranked results
  - VotingHandler: vote submission

Handlers are created via constructor functions that accept *sql.DB and Config:

	votingHandler := handlers.NewVotingHandler(db, cfg)

# Vote Modes

Config.Mode decides the shape of the ballot:

  - nested: nominations carry candidates; POST {"candidateId": n}
  - flat: nominations are voted on directly; POST {"nominationId": n}

# Voting Flow

	GET  /voting         → GetState (nominations + votedFor)
	POST /voting         → CastVote
	GET  /voting/results → GetResults

CastVote runs in one transaction: resolve the target's nomination, apply
voting.Check to the voter's existing votes in it, insert the user_vote row and
increment the counter. A voter is the hashed client IP. Two racing requests
from one voter are settled by the UNIQUE (voter_hash, nomination_id)
constraint; the loser gets "Already voted in this nomination".

# Errors

Failures are {"error": "..."} with the wording voters see:

	400 candidateId is required
	400 Already voted for this candidate
	400 Already voted in this nomination
	404 Candidate not found
	500 Database error
*/
package handlers
