package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"voteguard/auth"
	"voteguard/cliparse"
	"voteguard/middleware"
	"voteguard/models"
)

// AdminHandler covers the registration surface: slots, voters, candidates.
// Every operation requires the X-Admin-Key header.
type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

func (h *AdminHandler) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// isUniqueViolation matches the constraint error text of both supported
// drivers (modernc sqlite and lib/pq).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}

// CreateSlot handles POST /slots
func (h *AdminHandler) CreateSlot(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.CreateSlotRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.StartTime.IsZero() || req.EndTime.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "start_time and end_time are required")
		return
	}
	if !req.EndTime.After(req.StartTime) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "end_time must be after start_time")
		return
	}

	slot := models.Slot{
		ID:        uuid.NewString(),
		Name:      req.Name,
		StartTime: req.StartTime.UTC(),
		EndTime:   req.EndTime.UTC(),
		CreatedAt: time.Now().UTC(),
	}

	// Overlapping windows would make the "current slot" ambiguous; reject
	// them at creation time.
	rows, err := h.db.Query(`SELECT id, name, start_time, end_time, created_at FROM slot`)
	if err != nil {
		slog.Error("failed to query slots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()
	for rows.Next() {
		var existing models.Slot
		if err := rows.Scan(&existing.ID, &existing.Name, &existing.StartTime, &existing.EndTime, &existing.CreatedAt); err != nil {
			slog.Error("failed to scan slot", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		if slot.Overlaps(existing) {
			middleware.ErrorResponse(w, http.StatusConflict, "slot window overlaps existing slot "+existing.Name)
			return
		}
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read slots", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = h.db.Exec(`
		INSERT INTO slot (id, name, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, slot.ID, slot.Name, slot.StartTime, slot.EndTime, slot.CreatedAt)
	if err != nil {
		slog.Error("failed to insert slot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create slot")
		return
	}

	slog.Info("slot created", "slot_id", slot.ID, "name", slot.Name)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSlotResponse{Slot: slot})
}

// RegisterVoter handles POST /voters
func (h *AdminHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.VoterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "voter_id is required")
		return
	}
	if req.SlotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slot_id is required")
		return
	}

	if !h.slotExists(w, req.SlotID) {
		return
	}

	voter := models.Voter{
		ID:       uuid.NewString(),
		Name:     req.Name,
		VoterID:  req.VoterID,
		ImageURL: req.ImageURL,
		SlotID:   req.SlotID,
	}

	_, err := h.db.Exec(`
		INSERT INTO voter (id, name, voter_id, image_url, slot_id, voted)
		VALUES ($1, $2, $3, $4, $5, FALSE)
	`, voter.ID, voter.Name, voter.VoterID, voter.ImageURL, voter.SlotID)
	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusConflict, "voter_id already registered")
			return
		}
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	slog.Info("voter registered", "voter_id", voter.VoterID, "slot_id", voter.SlotID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterVoterResponse{Voter: voter})
}

// RegisterCandidate handles POST /candidates
func (h *AdminHandler) RegisterCandidate(w http.ResponseWriter, r *http.Request) {
	if !h.requireAdmin(w, r) {
		return
	}

	var req models.RegisterCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.SlotID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "slot_id is required")
		return
	}

	if !h.slotExists(w, req.SlotID) {
		return
	}

	candidate := models.Candidate{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Party:    req.Party,
		VoterID:  req.VoterID,
		ImageURL: req.ImageURL,
		SlotID:   req.SlotID,
	}

	_, err := h.db.Exec(`
		INSERT INTO candidate (id, name, party, voter_id, image_url, slot_id, votes, has_voted)
		VALUES ($1, $2, $3, $4, $5, $6, 0, FALSE)
	`, candidate.ID, candidate.Name, candidate.Party, candidate.VoterID, candidate.ImageURL, candidate.SlotID)
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register candidate")
		return
	}

	slog.Info("candidate registered", "candidate_id", candidate.ID, "slot_id", candidate.SlotID)

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterCandidateResponse{Candidate: candidate})
}

// slotExists writes a 404 and returns false when the slot is missing.
func (h *AdminHandler) slotExists(w http.ResponseWriter, slotID string) bool {
	var exists bool
	err := h.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM slot WHERE id = $1)
	`, slotID).Scan(&exists)
	if err != nil {
		slog.Error("failed to query slot", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return false
	}
	if !exists {
		middleware.ErrorResponse(w, http.StatusNotFound, "Slot not found")
		return false
	}
	return true
}
