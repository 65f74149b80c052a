// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/voting"
)

type NominationHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewNominationHandler(db *sql.DB, cfg cliparse.Config) *NominationHandler {
	return &NominationHandler{db: db, cfg: cfg}
}

// GetState handles GET /voting
// Returns the ballot and the ids the calling voter already voted for
func (h *NominationHandler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	ballot, err := loadBallot(ctx, h.db, h.cfg.Mode)
	if err != nil {
		slog.Error("failed to load ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voter := auth.VoterHash(middleware.GetClientIP(r), h.cfg.VoterSalt)
	voted, err := votedFor(ctx, h.db, h.cfg.Mode, voter, 0)
	if err != nil {
		slog.Error("failed to load voter state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.NewStateResponse(voting.State{
		Nominations: ballot,
		Voted:       voting.NewVotedSet(voted...),
	})
	if !h.cfg.Deadline.IsZero() {
		deadline := h.cfg.Deadline
		resp.Deadline = &deadline
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// GetResults handles GET /voting/results
// Returns all votables ranked by votes, visible while voting is open
func (h *NominationHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	ballot, err := loadBallot(r.Context(), h.db, h.cfg.Mode)
	if err != nil {
		slog.Error("failed to load ballot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.NewResultsResponse(voting.Rank(ballot)))
}
