package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"voteguard/auth"
	"voteguard/cliparse"
	"voteguard/facematch"
	"voteguard/ledger"
	"voteguard/middleware"
	"voteguard/models"
)

// VotingHandler combines the face matcher's duplicate signal with the
// ledger's transactional vote recording.
type VotingHandler struct {
	db      *sql.DB
	ledger  *ledger.Ledger
	matcher *facematch.Matcher
	cfg     cliparse.Config
}

func NewVotingHandler(db *sql.DB, led *ledger.Ledger, matcher *facematch.Matcher, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, ledger: led, matcher: matcher, cfg: cfg}
}

// CastVote handles POST /votes
//
// When the request carries a face embedding, the matcher is consulted first:
// a recognized face whose owner has already voted is rejected before the
// ledger runs. On acceptance the embedding is stored in the gallery so the
// next capture of the same face is flagged.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.VoterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id is required")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	if len(req.Embedding) > 0 {
		if matchedID, ok := h.matcher.Recognize(req.Embedding, h.cfg.FaceThreshold); ok {
			if h.voterHasVoted(matchedID) {
				slog.Info("duplicate face rejected", "matched_voter_id", matchedID, "claimed_voter_id", req.VoterID)
				middleware.ErrorResponse(w, http.StatusConflict, "A previous vote has been detected for this face")
				return
			}
		}
	}

	meta := ledger.VoteMeta{
		IPHash:    auth.HashIP(middleware.GetClientIP(r), h.cfg.IPHashSalt),
		UserAgent: r.UserAgent(),
	}

	record, err := h.ledger.RecordVote(req.VoterID, req.CandidateID, meta)
	if err != nil {
		switch {
		case errors.Is(err, ledger.ErrUnknownVoter):
			middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		case errors.Is(err, ledger.ErrAlreadyVoted):
			middleware.ErrorResponse(w, http.StatusConflict, "Voter has already voted")
		case errors.Is(err, ledger.ErrNoActiveSlot):
			middleware.ErrorResponse(w, http.StatusConflict, "No voting slot is currently active")
		case errors.Is(err, ledger.ErrWrongSlot):
			middleware.ErrorResponse(w, http.StatusConflict, "Voter is not assigned to the active slot")
		case errors.Is(err, ledger.ErrUnknownCandidate):
			middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found in the active slot")
		default:
			slog.Error("failed to record vote", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to record vote")
		}
		return
	}

	if len(req.Embedding) > 0 {
		h.matcher.Store(req.Embedding, req.VoterID)
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Record:  record,
		Message: "Vote recorded successfully",
	})
}

// RecognizeFace handles POST /faces/recognize
//
// Used by the capture UI to warn about duplicate voters while the camera is
// live, before any vote is submitted.
func (h *VotingHandler) RecognizeFace(w http.ResponseWriter, r *http.Request) {
	var req models.RecognizeFaceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if len(req.Embedding) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "embedding is required")
		return
	}

	matchedID, ok := h.matcher.Recognize(req.Embedding, h.cfg.FaceThreshold)
	if !ok {
		middleware.JSONResponse(w, http.StatusOK, models.RecognizeFaceResponse{Matched: false})
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RecognizeFaceResponse{
		Matched: true,
		VoterID: matchedID,
		Voted:   h.voterHasVoted(matchedID),
	})
}

func (h *VotingHandler) voterHasVoted(voterID string) bool {
	var voted bool
	err := h.db.QueryRow(`
		SELECT voted FROM voter WHERE voter_id = $1
	`, voterID).Scan(&voted)
	if err == sql.ErrNoRows {
		return false
	}
	if err != nil {
		slog.Error("failed to query voter", "voter_id", voterID, "error", err)
		return false
	}
	return voted
}
