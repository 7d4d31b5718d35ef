/*
Package router defines HTTP routes for the VoteGuard API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, led, matcher, cfg)

# Endpoints

Health:

	GET /health

Election setup (admin, requires X-Admin-Key):

	POST /slots       - Create a voting slot
	POST /voters      - Register a voter
	POST /candidates  - Register a candidate
	POST /admin/clear - Wipe all election data

Voting (public):

	POST /votes           - Cast a vote
	POST /faces/recognize - Match a face capture

Queries (public):

	GET /voters                 - List voters
	GET /voters/{voterId}       - Voter details and status
	GET /candidates             - List candidates (?slot_id filter)
	GET /candidates/{id}/status - Candidate voting status
	GET /slots                  - List slots with members
	GET /slots/current          - The currently active slot
	GET /slots/{id}/stats       - Participation statistics
	GET /votes                  - Vote ledger records

# Handler Initialization

The router creates handler instances with dependency injection:

	adminHandler := handlers.NewAdminHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, led, matcher, cfg)
	queryHandler := handlers.NewQueryHandler(db, led, cfg)
	systemHandler := handlers.NewSystemHandler(led, matcher, cfg)

The ledger and matcher are built once in main and shared across
handlers.
*/
package router
