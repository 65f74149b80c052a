// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielhkuo/quickly-vote/auth"
	"github.com/danielhkuo/quickly-vote/cliparse"
	"github.com/danielhkuo/quickly-vote/db"
	"github.com/danielhkuo/quickly-vote/middleware"
	"github.com/danielhkuo/quickly-vote/models"
	"github.com/danielhkuo/quickly-vote/voting"
)

// Messages returned to voters in {"error": ...}.
const (
	msgAlreadyVotedCandidate  = "Already voted for this candidate"
	msgAlreadyVotedNomination = "Already voted in this nomination"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// CastVote handles POST /voting
// Body is {"candidateId": n} in nested mode or {"nominationId": n} in flat mode
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	mode := h.cfg.Mode

	// Parse request
	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	target, field, notFound := req.CandidateID, "candidateId", "Candidate not found"
	if mode == voting.ModeFlat {
		target, field, notFound = req.NominationID, "nominationId", "Nomination not found"
	}
	if target <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, field+" is required")
		return
	}

	voter := auth.VoterHash(middleware.GetClientIP(r), h.cfg.VoterSalt)

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	// Resolve the owning nomination
	var nominationID int64
	if mode == voting.ModeFlat {
		err = tx.QueryRowContext(ctx, `SELECT id FROM nomination WHERE id = $1`, target).Scan(&nominationID)
	} else {
		err = tx.QueryRowContext(ctx, `SELECT nomination_id FROM candidate WHERE id = $1`, target).Scan(&nominationID)
	}
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, notFound)
		return
	}
	if err != nil {
		slog.Error("failed to resolve vote target", "error", err, "target", target)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// Same eligibility rules the client applies
	state, err := h.voterState(ctx, tx, voter, nominationID)
	if err != nil {
		slog.Error("failed to load voter state", "error", err, "nomination_id", nominationID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	if d := voting.Check(state, target); !d.Allowed {
		middleware.ErrorResponse(w, http.StatusBadRequest, rejectionMessage(d.Reason))
		return
	}

	var candidateID sql.NullInt64
	if mode == voting.ModeNested {
		candidateID = sql.NullInt64{Int64: target, Valid: true}
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_vote (id, voter_hash, nomination_id, candidate_id, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, auth.NewVoteID(), voter, nominationID, candidateID, time.Now().UTC())
	if err != nil {
		// A concurrent request from the same voter won the race
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, msgAlreadyVotedNomination)
			return
		}
		slog.Error("failed to insert vote", "error", err, "target", target)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if mode == voting.ModeFlat {
		_, err = tx.ExecContext(ctx, `UPDATE nomination SET votes = votes + 1 WHERE id = $1`, target)
	} else {
		_, err = tx.ExecContext(ctx, `UPDATE candidate SET votes = votes + 1 WHERE id = $1`, target)
	}
	if err != nil {
		slog.Error("failed to increment votes", "error", err, "target", target)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := tx.Commit(); err != nil {
		if db.IsUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, msgAlreadyVotedNomination)
			return
		}
		slog.Error("failed to commit vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("vote counted", "mode", string(mode), "nomination_id", nominationID, "target", target)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{Success: true})
}

// voterState builds the state Check needs: the one nomination and the
// voter's votes in it.
func (h *VotingHandler) voterState(ctx context.Context, tx *sql.Tx, voter string, nominationID int64) (voting.State, error) {
	var nom voting.Nomination = voting.FlatNomination{ID: nominationID}
	if h.cfg.Mode == voting.ModeNested {
		candidates, err := loadCandidates(ctx, tx, nominationID)
		if err != nil {
			return voting.State{}, err
		}
		nom = voting.NominationWithCandidates{ID: nominationID, Candidates: candidates[nominationID]}
	}

	voted, err := votedFor(ctx, tx, h.cfg.Mode, voter, nominationID)
	if err != nil {
		return voting.State{}, err
	}

	return voting.State{Nominations: []voting.Nomination{nom}, Voted: voting.NewVotedSet(voted...)}, nil
}

func rejectionMessage(reason voting.Reason) string {
	switch reason {
	case voting.ReasonAlreadyVotedCandidate:
		return msgAlreadyVotedCandidate
	case voting.ReasonAlreadyVotedNomination:
		return msgAlreadyVotedNomination
	}
	return reason.String()
}
