package ledger

import (
	"database/sql"
	"fmt"
	"time"

	"voteguard/models"
)

// Status classifies an entity per the pending/completed/missed state
// machine. Completed is terminal and takes priority; an entity without a
// resolvable owning slot is always pending.
func Status(voted bool, slot *models.Slot, now time.Time) string {
	if voted {
		return models.StatusCompleted
	}
	if slot == nil {
		return models.StatusPending
	}
	if now.After(slot.EndTime) {
		return models.StatusMissed
	}
	return models.StatusPending
}

// VoterStatus resolves a voter by business key and classifies them.
func (l *Ledger) VoterStatus(voterID string) (models.Voter, string, error) {
	var v models.Voter
	var votedAt sql.NullTime
	err := l.db.QueryRow(`
		SELECT id, name, voter_id, image_url, slot_id, voted, voted_at
		FROM voter WHERE voter_id = $1
	`, voterID).Scan(&v.ID, &v.Name, &v.VoterID, &v.ImageURL, &v.SlotID, &v.Voted, &votedAt)
	if err == sql.ErrNoRows {
		return models.Voter{}, "", ErrUnknownVoter
	}
	if err != nil {
		return models.Voter{}, "", fmt.Errorf("failed to query voter: %w", err)
	}
	if votedAt.Valid {
		v.VotedAt = &votedAt.Time
	}

	slot, err := l.slotByID(v.SlotID)
	if err != nil {
		return models.Voter{}, "", err
	}
	return v, Status(v.Voted, slot, l.now().UTC()), nil
}

// CandidateStatus resolves a candidate by storage ID and classifies them.
func (l *Ledger) CandidateStatus(id string) (models.Candidate, string, error) {
	var c models.Candidate
	var votedAt sql.NullTime
	err := l.db.QueryRow(`
		SELECT id, name, party, voter_id, image_url, slot_id, votes, has_voted, voted_at
		FROM candidate WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.Party, &c.VoterID, &c.ImageURL, &c.SlotID, &c.Votes, &c.HasVoted, &votedAt)
	if err == sql.ErrNoRows {
		return models.Candidate{}, "", ErrUnknownCandidate
	}
	if err != nil {
		return models.Candidate{}, "", fmt.Errorf("failed to query candidate: %w", err)
	}
	if votedAt.Valid {
		c.VotedAt = &votedAt.Time
	}

	slot, err := l.slotByID(c.SlotID)
	if err != nil {
		return models.Candidate{}, "", err
	}
	return c, Status(c.HasVoted, slot, l.now().UTC()), nil
}

// Stats summarizes the voting progress of a slot's members.
type Stats struct {
	Total     int
	Completed int
	Pending   int
	Missed    int
}

// SlotStats classifies every member of a slot - voters and candidates alike.
// Pending is derived as total minus completed minus missed.
func (l *Ledger) SlotStats(slotID string) (Stats, error) {
	var slot models.Slot
	err := l.db.QueryRow(`
		SELECT id, name, start_time, end_time, created_at FROM slot WHERE id = $1
	`, slotID).Scan(&slot.ID, &slot.Name, &slot.StartTime, &slot.EndTime, &slot.CreatedAt)
	if err == sql.ErrNoRows {
		return Stats{}, ErrUnknownSlot
	}
	if err != nil {
		return Stats{}, fmt.Errorf("failed to query slot: %w", err)
	}

	now := l.now().UTC()
	var stats Stats

	tally := func(query string) error {
		rows, err := l.db.Query(query, slotID)
		if err != nil {
			return fmt.Errorf("failed to query slot members: %w", err)
		}
		defer rows.Close()
		for rows.Next() {
			var voted bool
			if err := rows.Scan(&voted); err != nil {
				return fmt.Errorf("failed to scan slot member: %w", err)
			}
			stats.Total++
			switch Status(voted, &slot, now) {
			case models.StatusCompleted:
				stats.Completed++
			case models.StatusMissed:
				stats.Missed++
			}
		}
		return rows.Err()
	}

	if err := tally(`SELECT voted FROM voter WHERE slot_id = $1`); err != nil {
		return Stats{}, err
	}
	if err := tally(`SELECT has_voted FROM candidate WHERE slot_id = $1`); err != nil {
		return Stats{}, err
	}

	stats.Pending = stats.Total - stats.Completed - stats.Missed
	return stats, nil
}

// slotByID returns nil without error when the slot does not exist, so
// callers can treat members of a vanished slot as not yet schedulable.
func (l *Ledger) slotByID(id string) (*models.Slot, error) {
	var slot models.Slot
	err := l.db.QueryRow(`
		SELECT id, name, start_time, end_time, created_at FROM slot WHERE id = $1
	`, id).Scan(&slot.ID, &slot.Name, &slot.StartTime, &slot.EndTime, &slot.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query slot: %w", err)
	}
	return &slot, nil
}
