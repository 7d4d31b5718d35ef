package models

import "time"

// Entity status constants (derived, never stored)
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusMissed    = "missed"
)

// Embedding is a fixed-length face descriptor produced by the browser-side
// detection model. A length mismatch between two embeddings is treated as a
// guaranteed non-match rather than an error.
type Embedding []float32

// Request types

type CreateSlotRequest struct {
	Name      string    `json:"name"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type RegisterVoterRequest struct {
	Name     string `json:"name"`
	VoterID  string `json:"voter_id"`
	SlotID   string `json:"slot_id"`
	ImageURL string `json:"image_url"`
}

type RegisterCandidateRequest struct {
	Name     string `json:"name"`
	Party    string `json:"party"`
	VoterID  string `json:"voter_id"`
	SlotID   string `json:"slot_id"`
	ImageURL string `json:"image_url"`
}

type CastVoteRequest struct {
	VoterID     string    `json:"voter_id"`
	CandidateID string    `json:"candidate_id"`
	Embedding   Embedding `json:"embedding,omitempty"`
}

type RecognizeFaceRequest struct {
	Embedding Embedding `json:"embedding"`
}

// Response types

type CreateSlotResponse struct {
	Slot Slot `json:"slot"`
}

type RegisterVoterResponse struct {
	Voter Voter `json:"voter"`
}

type RegisterCandidateResponse struct {
	Candidate Candidate `json:"candidate"`
}

type CastVoteResponse struct {
	Record  VoteRecord `json:"record"`
	Message string     `json:"message"`
}

type RecognizeFaceResponse struct {
	Matched bool   `json:"matched"`
	VoterID string `json:"voter_id,omitempty"`
	Voted   bool   `json:"voted,omitempty"`
}

type VoterStatusResponse struct {
	Voter  Voter  `json:"voter"`
	Status string `json:"status"`
}

type CandidateStatusResponse struct {
	Candidate Candidate `json:"candidate"`
	Status    string    `json:"status"`
}

type SlotStatsResponse struct {
	SlotID    string `json:"slot_id"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
	Missed    int    `json:"missed"`
}

type ClearAllResponse struct {
	Message string `json:"message"`
}

// Domain types

type Slot struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	StartTime  time.Time   `json:"start_time"`
	EndTime    time.Time   `json:"end_time"`
	CreatedAt  time.Time   `json:"created_at"`
	Voters     []Voter     `json:"voters,omitempty"`
	Candidates []Candidate `json:"candidates,omitempty"`
}

// Contains reports whether t falls inside the slot's voting window.
// Both endpoints are inclusive.
func (s Slot) Contains(t time.Time) bool {
	return !t.Before(s.StartTime) && !t.After(s.EndTime)
}

// Overlaps reports whether two slot windows share any instant.
func (s Slot) Overlaps(other Slot) bool {
	return !s.EndTime.Before(other.StartTime) && !other.EndTime.Before(s.StartTime)
}

type Voter struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	VoterID  string     `json:"voter_id"` // business key, externally issued
	ImageURL string     `json:"image_url,omitempty"`
	SlotID   string     `json:"slot_id"`
	Voted    bool       `json:"voted"`
	VotedAt  *time.Time `json:"voted_at,omitempty"`
}

type Candidate struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Party    string     `json:"party,omitempty"`
	VoterID  string     `json:"voter_id,omitempty"` // set when the candidate is also a registered voter
	ImageURL string     `json:"image_url,omitempty"`
	SlotID   string     `json:"slot_id"`
	Votes    int        `json:"votes"`
	HasVoted bool       `json:"has_voted"`
	VotedAt  *time.Time `json:"voted_at,omitempty"`
}

type VoteRecord struct {
	ID          string    `json:"id"`
	VoterID     string    `json:"voter_id"` // business key of the voter
	CandidateID string    `json:"candidate_id"`
	SlotID      string    `json:"slot_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// FaceRecord pairs a stored embedding with the identity it was captured for.
type FaceRecord struct {
	VoterID   string    `json:"voter_id"`
	Embedding Embedding `json:"embedding"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
