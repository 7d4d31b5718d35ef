/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateSlotRequest: name, start_time, end_time
  - RegisterVoterRequest: name, voter_id, image_url, slot_id
  - RegisterCandidateRequest: name, party, image_url, slot_id
  - CastVoteRequest: voter_id, candidate_id, embedding
  - RecognizeFaceRequest: embedding

# Response Types

Types for JSON responses:

  - CreateSlotResponse, RegisterVoterResponse, RegisterCandidateResponse
  - CastVoteResponse: the appended ledger record
  - RecognizeFaceResponse: matched, voter_id, voted
  - VoterStatusResponse, CandidateStatusResponse
  - SlotStatsResponse: total, completed, pending, missed
  - ClearAllResponse, ErrorResponse

# Domain Types

Internal data structures:

  - Slot: a voting window; Contains and Overlaps do the time math
  - Voter: registered voter with single-use voted flag
  - Candidate: stands in a slot, carries the vote tally
  - VoteRecord: append-only ledger entry
  - FaceRecord: a stored face embedding keyed by voter
  - Embedding: a face descriptor ([]float32)

# Constants

Status values:

	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusMissed    = "missed"
*/
package models
