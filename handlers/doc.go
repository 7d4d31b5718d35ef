/*
Package handlers contains HTTP request handlers for the VoteGuard API.

# Handler Types

Each handler is a struct with its dependencies injected:

  - AdminHandler: Slot, voter, and candidate registration
  - VotingHandler: Vote casting and face recognition
  - QueryHandler: Voter, candidate, slot, and ledger reads
  - SystemHandler: Full data reset

Handlers are created via constructor functions:

	adminHandler := handlers.NewAdminHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, led, matcher, cfg)

# Admin Flow

Admins set up an election before voting opens:

	POST /slots      → CreateSlot (rejects overlapping windows)
	POST /voters     → RegisterVoter (voter_id must be unique)
	POST /candidates → RegisterCandidate

Admin operations require the X-Admin-Key header.

# Voting Flow

Voters cast exactly one vote during their slot's window:

	POST /votes           → CastVote
	POST /faces/recognize → RecognizeFace

CastVote runs the duplicate-face check first: when the submitted
embedding matches a stored face that already voted, the request is
rejected with 409 before the ledger is touched. Accepted votes store
the embedding for future duplicate detection.

# Error Mapping

Ledger rejections map onto HTTP statuses:

	ErrUnknownVoter, ErrUnknownCandidate → 404
	ErrAlreadyVoted, ErrNoActiveSlot, ErrWrongSlot → 409
	anything else → 500
*/
package handlers
