// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/handlers"
	"github.com/danielhkuo/quickly-vote/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	nominationHandler := handlers.NewNominationHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Ballot and voter state
	mux.HandleFunc("GET /voting", middleware.WithLogging(nominationHandler.GetState))
	mux.HandleFunc("GET /voting/results", middleware.WithLogging(nominationHandler.GetResults))

	// Voting
	mux.HandleFunc("POST /voting", middleware.WithLogging(votingHandler.CastVote))

	// Any other method on the voting endpoint
	mux.HandleFunc("/voting", middleware.WithLogging(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Allow", "GET, POST, OPTIONS")
		middleware.ErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
	}))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("quickly-vote API v1"))
	})

	return mux
}
