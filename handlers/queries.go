package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"voteguard/cliparse"
	"voteguard/ledger"
	"voteguard/middleware"
	"voteguard/models"
)

// QueryHandler exposes the read-only projections over ledger state.
type QueryHandler struct {
	db     *sql.DB
	ledger *ledger.Ledger
	cfg    cliparse.Config
}

func NewQueryHandler(db *sql.DB, led *ledger.Ledger, cfg cliparse.Config) *QueryHandler {
	return &QueryHandler{db: db, ledger: led, cfg: cfg}
}

// ListVoters handles GET /voters
func (h *QueryHandler) ListVoters(w http.ResponseWriter, r *http.Request) {
	voters, err := h.votersWhere("", "")
	if err != nil {
		slog.Error("failed to query voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, voters)
}

// GetVoter handles GET /voters/{voterId}
// Looks up by the externally-issued business key, not the storage ID, and
// includes the derived pending/completed/missed status.
func (h *QueryHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("voterId")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id is required")
		return
	}

	voter, status, err := h.ledger.VoterStatus(voterID)
	if errors.Is(err, ledger.ErrUnknownVoter) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
		return
	}
	if err != nil {
		slog.Error("failed to resolve voter status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.VoterStatusResponse{Voter: voter, Status: status})
}

// ListCandidates handles GET /candidates with optional ?slot_id= filtering.
func (h *QueryHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.candidatesWhere(r.URL.Query().Get("slot_id"))
	if err != nil {
		slog.Error("failed to query candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, candidates)
}

// GetCandidateStatus handles GET /candidates/{id}/status
func (h *QueryHandler) GetCandidateStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate id is required")
		return
	}

	candidate, status, err := h.ledger.CandidateStatus(id)
	if errors.Is(err, ledger.ErrUnknownCandidate) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	}
	if err != nil {
		slog.Error("failed to resolve candidate status", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.CandidateStatusResponse{Candidate: candidate, Status: status})
}

// ListSlots handles GET /slots
// Each slot carries its member voters and candidates, mirroring the admin
// dashboard's slot overview.
func (h *QueryHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, name, start_time, end_time, created_at FROM slot ORDER BY created_at
	`)
	if err != nil {
		slog.Error("failed to query slots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	slots := []models.Slot{}
	for rows.Next() {
		var slot models.Slot
		if err := rows.Scan(&slot.ID, &slot.Name, &slot.StartTime, &slot.EndTime, &slot.CreatedAt); err != nil {
			slog.Error("failed to scan slot", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read slots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	for i := range slots {
		voters, err := h.votersWhere(`WHERE slot_id = $1`, slots[i].ID)
		if err != nil {
			slog.Error("failed to query slot voters", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		candidates, err := h.candidatesWhere(slots[i].ID)
		if err != nil {
			slog.Error("failed to query slot candidates", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		slots[i].Voters = voters
		slots[i].Candidates = candidates
	}

	middleware.JSONResponse(w, http.StatusOK, slots)
}

// GetCurrentSlot handles GET /slots/current
func (h *QueryHandler) GetCurrentSlot(w http.ResponseWriter, r *http.Request) {
	slot, err := h.ledger.CurrentSlot()
	if errors.Is(err, ledger.ErrNoActiveSlot) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No voting slot is currently active")
		return
	}
	if err != nil {
		slog.Error("failed to resolve current slot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	middleware.JSONResponse(w, http.StatusOK, slot)
}

// GetSlotStats handles GET /slots/{id}/stats
func (h *QueryHandler) GetSlotStats(w http.ResponseWriter, r *http.Request) {
	slotID := r.PathValue("id")
	if slotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slot id is required")
		return
	}

	stats, err := h.ledger.SlotStats(slotID)
	if errors.Is(err, ledger.ErrUnknownSlot) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Slot not found")
		return
	}
	if err != nil {
		slog.Error("failed to compute slot stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SlotStatsResponse{
		SlotID:    slotID,
		Total:     stats.Total,
		Completed: stats.Completed,
		Pending:   stats.Pending,
		Missed:    stats.Missed,
	})
}

// ListVotes handles GET /votes - the append-only audit log.
func (h *QueryHandler) ListVotes(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, voter_id, candidate_id, slot_id, created_at
		FROM vote_record ORDER BY created_at
	`)
	if err != nil {
		slog.Error("failed to query vote records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	records := []models.VoteRecord{}
	for rows.Next() {
		var rec models.VoteRecord
		if err := rows.Scan(&rec.ID, &rec.VoterID, &rec.CandidateID, &rec.SlotID, &rec.CreatedAt); err != nil {
			slog.Error("failed to scan vote record", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read vote records", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, records)
}

func (h *QueryHandler) votersWhere(where string, arg string) ([]models.Voter, error) {
	query := `SELECT id, name, voter_id, image_url, slot_id, voted, voted_at FROM voter ` + where + ` ORDER BY name`
	var rows *sql.Rows
	var err error
	if arg != "" {
		rows, err = h.db.Query(query, arg)
	} else {
		rows, err = h.db.Query(query)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	voters := []models.Voter{}
	for rows.Next() {
		var v models.Voter
		var votedAt sql.NullTime
		if err := rows.Scan(&v.ID, &v.Name, &v.VoterID, &v.ImageURL, &v.SlotID, &v.Voted, &votedAt); err != nil {
			return nil, err
		}
		if votedAt.Valid {
			v.VotedAt = &votedAt.Time
		}
		voters = append(voters, v)
	}
	return voters, rows.Err()
}

func (h *QueryHandler) candidatesWhere(slotID string) ([]models.Candidate, error) {
	query := `SELECT id, name, party, voter_id, image_url, slot_id, votes, has_voted, voted_at FROM candidate`
	var rows *sql.Rows
	var err error
	if slotID != "" {
		rows, err = h.db.Query(query+` WHERE slot_id = $1 ORDER BY name`, slotID)
	} else {
		rows, err = h.db.Query(query + ` ORDER BY name`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		var votedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.Name, &c.Party, &c.VoterID, &c.ImageURL, &c.SlotID, &c.Votes, &c.HasVoted, &votedAt); err != nil {
			return nil, err
		}
		if votedAt.Valid {
			c.VotedAt = &votedAt.Time
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}
