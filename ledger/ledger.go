package ledger

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"voteguard/auth"
	"voteguard/models"
)

// Rejection reasons surfaced by RecordVote. Callers distinguish business
// rejections from infrastructure failures with errors.Is; any other error
// is a storage failure.
var (
	ErrUnknownVoter     = errors.New("voter is not registered")
	ErrAlreadyVoted     = errors.New("voter has already voted")
	ErrNoActiveSlot     = errors.New("no voting slot is currently active")
	ErrWrongSlot        = errors.New("voter is not assigned to the active slot")
	ErrUnknownCandidate = errors.New("candidate not found in the active slot")
	ErrUnknownSlot      = errors.New("slot not found")
)

// Ledger is the single source of truth for voters, candidates, slots, and
// vote records, and the only component permitted to mutate tally state.
type Ledger struct {
	db  *sql.DB
	now func() time.Time
}

func New(db *sql.DB) *Ledger {
	return &Ledger{db: db, now: time.Now}
}

// VoteMeta carries request metadata recorded alongside a vote for auditing.
type VoteMeta struct {
	IPHash    string
	UserAgent string
}

// CurrentSlot returns the slot whose window contains the current time.
// When windows overlap (rejected at creation, but possible in pre-existing
// data) the earliest-created slot wins. Returns ErrNoActiveSlot if no
// window contains now.
func (l *Ledger) CurrentSlot() (models.Slot, error) {
	return currentSlot(l.db, l.now().UTC())
}

type querier interface {
	Query(query string, args ...any) (*sql.Rows, error)
}

func currentSlot(q querier, now time.Time) (models.Slot, error) {
	rows, err := q.Query(`
		SELECT id, name, start_time, end_time, created_at
		FROM slot
		ORDER BY created_at
	`)
	if err != nil {
		return models.Slot{}, fmt.Errorf("failed to query slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var slot models.Slot
		if err := rows.Scan(&slot.ID, &slot.Name, &slot.StartTime, &slot.EndTime, &slot.CreatedAt); err != nil {
			return models.Slot{}, fmt.Errorf("failed to scan slot: %w", err)
		}
		if slot.Contains(now) {
			return slot, nil
		}
	}
	if err := rows.Err(); err != nil {
		return models.Slot{}, fmt.Errorf("failed to read slots: %w", err)
	}

	return models.Slot{}, ErrNoActiveSlot
}

// RecordVote is the sole mutating entry point for tallies. It runs one
// database transaction that marks the voter as having voted, appends an
// immutable vote record, and increments the candidate tally, so a crash can
// never separate the voted flag from its vote record.
//
// Preconditions, checked in order: the voter exists (by business key) and
// has not voted; a slot is currently active; the voter is assigned to it;
// the candidate exists within it. Any precondition failure rolls the
// transaction back and returns one of the Err* rejections - no state
// changes, and a rejected voter stays rejected on every retry.
func (l *Ledger) RecordVote(voterID, candidateID string, meta VoteMeta) (models.VoteRecord, error) {
	now := l.now().UTC()

	tx, err := l.db.Begin()
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var voted bool
	var voterSlotID string
	err = tx.QueryRow(`
		SELECT slot_id, voted FROM voter WHERE voter_id = $1
	`, voterID).Scan(&voterSlotID, &voted)
	if err == sql.ErrNoRows {
		return models.VoteRecord{}, ErrUnknownVoter
	}
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to query voter: %w", err)
	}
	if voted {
		return models.VoteRecord{}, ErrAlreadyVoted
	}

	slot, err := currentSlot(tx, now)
	if err != nil {
		return models.VoteRecord{}, err
	}
	if voterSlotID != slot.ID {
		return models.VoteRecord{}, ErrWrongSlot
	}

	var candidateSlotID string
	err = tx.QueryRow(`
		SELECT slot_id FROM candidate WHERE id = $1
	`, candidateID).Scan(&candidateSlotID)
	if err == sql.ErrNoRows {
		return models.VoteRecord{}, ErrUnknownCandidate
	}
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to query candidate: %w", err)
	}
	if candidateSlotID != slot.ID {
		return models.VoteRecord{}, ErrUnknownCandidate
	}

	// Conditional update closes the check-then-act window: a concurrent
	// vote for the same voter sees zero rows affected and is rejected.
	res, err := tx.Exec(`
		UPDATE voter SET voted = TRUE, voted_at = $1
		WHERE voter_id = $2 AND voted = FALSE
	`, now, voterID)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to mark voter: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return models.VoteRecord{}, ErrAlreadyVoted
	}

	_, err = tx.Exec(`
		UPDATE candidate SET votes = votes + 1 WHERE id = $1
	`, candidateID)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to increment tally: %w", err)
	}

	// A candidate registered under the same business key has now voted too
	_, err = tx.Exec(`
		UPDATE candidate SET has_voted = TRUE, voted_at = $1
		WHERE voter_id = $2 AND voter_id <> '' AND has_voted = FALSE
	`, now, voterID)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to mark candidate voter: %w", err)
	}

	recordID, err := auth.GenerateID(16)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to generate record ID: %w", err)
	}

	record := models.VoteRecord{
		ID:          recordID,
		VoterID:     voterID,
		CandidateID: candidateID,
		SlotID:      slot.ID,
		CreatedAt:   now,
	}
	_, err = tx.Exec(`
		INSERT INTO vote_record (id, voter_id, candidate_id, slot_id, ip_hash, user_agent, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, record.ID, record.VoterID, record.CandidateID, record.SlotID, meta.IPHash, meta.UserAgent, record.CreatedAt)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to insert vote record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	slog.Info("vote recorded", "voter_id", voterID, "candidate_id", candidateID, "slot_id", slot.ID)
	return record, nil
}

// ClearAll wipes voters, candidates, slots, and vote records in one
// transaction. Privileged and destructive; it either fully succeeds or the
// caller observes a storage error with nothing deleted.
func (l *Ledger) ClearAll() error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"vote_record", "voter", "candidate", "slot"} {
		if _, err := tx.Exec(`DELETE FROM ` + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit clear: %w", err)
	}

	slog.Info("all voting data cleared")
	return nil
}
