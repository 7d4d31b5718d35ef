package router

import (
	"database/sql"
	"net/http"

	"voteguard/cliparse"
	"voteguard/facematch"
	"voteguard/handlers"
	"voteguard/ledger"
	"voteguard/middleware"
)

func NewRouter(db *sql.DB, led *ledger.Ledger, matcher *facematch.Matcher, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	adminHandler := handlers.NewAdminHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, led, matcher, cfg)
	queryHandler := handlers.NewQueryHandler(db, led, cfg)
	systemHandler := handlers.NewSystemHandler(led, matcher, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Administration (requires X-Admin-Key)
	mux.HandleFunc("POST /slots", middleware.WithLogging(adminHandler.CreateSlot))
	mux.HandleFunc("POST /voters", middleware.WithLogging(adminHandler.RegisterVoter))
	mux.HandleFunc("POST /candidates", middleware.WithLogging(adminHandler.RegisterCandidate))
	mux.HandleFunc("POST /admin/clear", middleware.WithLogging(systemHandler.ClearAll))

	// Voting operations (public)
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("POST /faces/recognize", middleware.WithLogging(votingHandler.RecognizeFace))

	// Read-only projections (public)
	mux.HandleFunc("GET /voters", middleware.WithLogging(queryHandler.ListVoters))
	mux.HandleFunc("GET /voters/{voterId}", middleware.WithLogging(queryHandler.GetVoter))
	mux.HandleFunc("GET /candidates", middleware.WithLogging(queryHandler.ListCandidates))
	mux.HandleFunc("GET /candidates/{id}/status", middleware.WithLogging(queryHandler.GetCandidateStatus))
	mux.HandleFunc("GET /slots", middleware.WithLogging(queryHandler.ListSlots))
	mux.HandleFunc("GET /slots/current", middleware.WithLogging(queryHandler.GetCurrentSlot))
	mux.HandleFunc("GET /slots/{id}/stats", middleware.WithLogging(queryHandler.GetSlotStats))
	mux.HandleFunc("GET /votes", middleware.WithLogging(queryHandler.ListVotes))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("voteguard API v1"))
	})

	return mux
}
