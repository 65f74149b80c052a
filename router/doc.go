// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Quickly Vote API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg)

CORS is not applied here; main wraps the whole mux with middleware.CORS so
preflight OPTIONS requests are answered before routing.

# Endpoints

Health:

	GET /health

Ballot (public, voter identified by client IP):

	GET  /voting         - Nominations, counts and the caller's votedFor ids
	POST /voting         - Cast one vote ({"candidateId"} or {"nominationId"})
	GET  /voting/results - Ranked standings with percentages

Other methods on /voting get 405 {"error": "Method not allowed"}.

# Handler Initialization

	nominationHandler := handlers.NewNominationHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)

All handlers receive the database connection and configuration.
*/
package router
