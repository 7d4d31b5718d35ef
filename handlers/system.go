package handlers

import (
	"log/slog"
	"net/http"

	"voteguard/auth"
	"voteguard/cliparse"
	"voteguard/facematch"
	"voteguard/ledger"
	"voteguard/middleware"
	"voteguard/models"
)

// SystemHandler covers privileged whole-store operations.
type SystemHandler struct {
	ledger  *ledger.Ledger
	matcher *facematch.Matcher
	cfg     cliparse.Config
}

func NewSystemHandler(led *ledger.Ledger, matcher *facematch.Matcher, cfg cliparse.Config) *SystemHandler {
	return &SystemHandler{ledger: led, matcher: matcher, cfg: cfg}
}

// ClearAll handles POST /admin/clear
// Destructive: wipes voters, candidates, slots, vote records, and the face
// gallery. The ledger wipe is transactional; the gallery is cleared only
// after the ledger clear succeeds.
func (h *SystemHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), h.cfg.AdminKey); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	if err := h.ledger.ClearAll(); err != nil {
		slog.Error("failed to clear voting data", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to clear data")
		return
	}
	h.matcher.Clear()

	middleware.JSONResponse(w, http.StatusOK, models.ClearAllResponse{
		Message: "All voting data cleared",
	})
}
