package ledger

import (
	"errors"
	"testing"
	"time"

	"voteguard/models"
	"voteguard/testutil"
)

func TestStatus(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	openSlot := &models.Slot{StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour)}
	endedSlot := &models.Slot{StartTime: now.Add(-3 * time.Hour), EndTime: now.Add(-time.Hour)}

	tests := []struct {
		name     string
		voted    bool
		slot     *models.Slot
		expected string
	}{
		{"not voted, slot open", false, openSlot, models.StatusPending},
		{"not voted, slot ended", false, endedSlot, models.StatusMissed},
		{"voted, slot open", true, openSlot, models.StatusCompleted},
		{"voted, slot ended - completed is terminal", true, endedSlot, models.StatusCompleted},
		{"no resolvable slot", false, nil, models.StatusPending},
		{"voted without slot", true, nil, models.StatusCompleted},
		{"not voted at exact end time", false, &models.Slot{StartTime: now.Add(-time.Hour), EndTime: now}, models.StatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.voted, tt.slot, now); got != tt.expected {
				t.Errorf("Status(%v, slot, now) = %q, want %q", tt.voted, got, tt.expected)
			}
		})
	}
}

func TestCurrentSlot(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	led := New(conn)

	now := time.Now().UTC()
	testutil.CreateTestSlot(t, conn, "Ended", now.Add(-3*time.Hour), now.Add(-2*time.Hour))
	activeID := testutil.CreateTestSlot(t, conn, "Active", now.Add(-time.Hour), now.Add(time.Hour))
	testutil.CreateTestSlot(t, conn, "Future", now.Add(2*time.Hour), now.Add(3*time.Hour))

	slot, err := led.CurrentSlot()
	if err != nil {
		t.Fatalf("Expected a current slot, got %v", err)
	}
	if slot.ID != activeID {
		t.Errorf("Expected current slot %q, got %q", activeID, slot.ID)
	}
}

func TestCurrentSlotNoneActive(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	led := New(conn)

	now := time.Now().UTC()
	testutil.CreateTestSlot(t, conn, "Ended", now.Add(-3*time.Hour), now.Add(-2*time.Hour))

	_, err := led.CurrentSlot()
	if !errors.Is(err, ErrNoActiveSlot) {
		t.Errorf("Expected ErrNoActiveSlot, got %v", err)
	}
}

func TestVoterStatus(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	led := New(conn)

	now := time.Now().UTC()
	activeSlotID := testutil.CreateTestSlot(t, conn, "Active", now.Add(-time.Hour), now.Add(time.Hour))
	endedSlotID := testutil.CreateTestSlot(t, conn, "Ended", now.Add(-3*time.Hour), now.Add(-2*time.Hour))

	testutil.CreateTestVoter(t, conn, "Alice", "V1", activeSlotID)
	testutil.CreateTestVoter(t, conn, "Bob", "V2", endedSlotID)
	candidateID := testutil.CreateTestCandidate(t, conn, "Carol", "Unity Party", activeSlotID)

	if _, err := led.RecordVote("V1", candidateID, VoteMeta{}); err != nil {
		t.Fatalf("Expected vote to be accepted, got %v", err)
	}

	voter, status, err := led.VoterStatus("V1")
	if err != nil {
		t.Fatalf("VoterStatus failed: %v", err)
	}
	if status != models.StatusCompleted {
		t.Errorf("Expected completed, got %q", status)
	}
	if voter.VotedAt == nil {
		t.Error("Expected voted_at to be set after voting")
	}

	_, status, err = led.VoterStatus("V2")
	if err != nil {
		t.Fatalf("VoterStatus failed: %v", err)
	}
	if status != models.StatusMissed {
		t.Errorf("Expected missed for a voter whose slot ended, got %q", status)
	}

	if _, _, err := led.VoterStatus("NOBODY"); !errors.Is(err, ErrUnknownVoter) {
		t.Errorf("Expected ErrUnknownVoter, got %v", err)
	}
}

func TestSlotStats(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	led := New(conn)

	slotID := testutil.CreateActiveTestSlot(t, conn, "Session")
	testutil.CreateTestVoter(t, conn, "Alice", "V1", slotID)
	testutil.CreateTestVoter(t, conn, "Bob", "V2", slotID)
	testutil.CreateTestVoter(t, conn, "Eve", "V3", slotID)
	candidateID := testutil.CreateTestCandidate(t, conn, "Carol", "Unity Party", slotID)

	if _, err := led.RecordVote("V1", candidateID, VoteMeta{}); err != nil {
		t.Fatalf("Expected vote to be accepted, got %v", err)
	}

	stats, err := led.SlotStats(slotID)
	if err != nil {
		t.Fatalf("SlotStats failed: %v", err)
	}

	// 3 voters + 1 candidate; the slot is still open, so nothing is missed
	if stats.Total != 4 {
		t.Errorf("Expected total 4, got %d", stats.Total)
	}
	if stats.Completed != 1 {
		t.Errorf("Expected completed 1, got %d", stats.Completed)
	}
	if stats.Pending != 3 {
		t.Errorf("Expected pending 3, got %d", stats.Pending)
	}
	if stats.Missed != 0 {
		t.Errorf("Expected missed 0, got %d", stats.Missed)
	}
}

func TestSlotStatsEndedSlot(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	led := New(conn)

	now := time.Now().UTC()
	slotID := testutil.CreateTestSlot(t, conn, "Ended", now.Add(-3*time.Hour), now.Add(-2*time.Hour))
	testutil.CreateTestVoter(t, conn, "Alice", "V1", slotID)
	testutil.CreateTestVoter(t, conn, "Bob", "V2", slotID)

	// Simulate a vote cast while the slot was still open
	votedAt := now.Add(-150 * time.Minute)
	if _, err := conn.Exec(`
		UPDATE voter SET voted = TRUE, voted_at = $1 WHERE voter_id = 'V1'
	`, votedAt); err != nil {
		t.Fatalf("Failed to backdate vote: %v", err)
	}

	stats, err := led.SlotStats(slotID)
	if err != nil {
		t.Fatalf("SlotStats failed: %v", err)
	}

	if stats.Completed != 1 {
		t.Errorf("Expected completed 1, got %d", stats.Completed)
	}
	if stats.Missed != 1 {
		t.Errorf("Expected missed 1 for the non-voter of an ended slot, got %d", stats.Missed)
	}
	if stats.Pending != 0 {
		t.Errorf("Expected pending 0, got %d", stats.Pending)
	}
}

func TestSlotStatsUnknownSlot(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	led := New(conn)

	if _, err := led.SlotStats("missing"); !errors.Is(err, ErrUnknownSlot) {
		t.Errorf("Expected ErrUnknownSlot, got %v", err)
	}
}
