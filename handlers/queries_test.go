package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"voteguard/ledger"
	"voteguard/models"
	"voteguard/testutil"
)

func TestListVoters(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewQueryHandler(conn, ledger.New(conn), cfg)

	// Empty store yields an empty list, not null
	req := testutil.MakeRequest("GET", "/voters", nil, nil)
	w := httptest.NewRecorder()
	handler.ListVoters(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var voters []models.Voter
	testutil.AssertJSON(t, w, &voters)
	if len(voters) != 0 {
		t.Errorf("Expected empty voter list, got %d", len(voters))
	}

	slotID := testutil.CreateActiveTestSlot(t, conn, "Session")
	testutil.CreateTestVoter(t, conn, "Alice", "V1", slotID)
	testutil.CreateTestVoter(t, conn, "Bob", "V2", slotID)

	req = testutil.MakeRequest("GET", "/voters", nil, nil)
	w = httptest.NewRecorder()
	handler.ListVoters(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	testutil.AssertJSON(t, w, &voters)
	if len(voters) != 2 {
		t.Errorf("Expected 2 voters, got %d", len(voters))
	}
}

func TestGetVoter(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewQueryHandler(conn, ledger.New(conn), cfg)

	slotID := testutil.CreateActiveTestSlot(t, conn, "Session")
	testutil.CreateTestVoter(t, conn, "Alice", "V1", slotID)

	req := testutil.MakeRequest("GET", "/voters/V1", nil, nil)
	req.SetPathValue("voterId", "V1")
	w := httptest.NewRecorder()
	handler.GetVoter(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.VoterStatusResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Voter.VoterID != "V1" {
		t.Errorf("Expected voter V1, got %q", resp.Voter.VoterID)
	}
	if resp.Status != models.StatusPending {
		t.Errorf("Expected pending status, got %q", resp.Status)
	}

	req = testutil.MakeRequest("GET", "/voters/NOBODY", nil, nil)
	req.SetPathValue("voterId", "NOBODY")
	w = httptest.NewRecorder()
	handler.GetVoter(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListCandidatesBySlot(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewQueryHandler(conn, ledger.New(conn), cfg)

	now := time.Now().UTC()
	slotA := testutil.CreateTestSlot(t, conn, "A", now.Add(-time.Hour), now.Add(time.Hour))
	slotB := testutil.CreateTestSlot(t, conn, "B", now.Add(2*time.Hour), now.Add(3*time.Hour))
	testutil.CreateTestCandidate(t, conn, "Carol", "Unity Party", slotA)
	testutil.CreateTestCandidate(t, conn, "Dave", "Reform Party", slotB)

	req := testutil.MakeRequest("GET", "/candidates?slot_id="+slotA, nil, nil)
	w := httptest.NewRecorder()
	handler.ListCandidates(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var candidates []models.Candidate
	testutil.AssertJSON(t, w, &candidates)
	if len(candidates) != 1 || candidates[0].Name != "Carol" {
		t.Errorf("Expected only Carol for slot A, got %+v", candidates)
	}

	// Without the filter both candidates appear
	req = testutil.MakeRequest("GET", "/candidates", nil, nil)
	w = httptest.NewRecorder()
	handler.ListCandidates(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	testutil.AssertJSON(t, w, &candidates)
	if len(candidates) != 2 {
		t.Errorf("Expected 2 candidates, got %d", len(candidates))
	}
}

func TestGetCurrentSlot(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewQueryHandler(conn, ledger.New(conn), cfg)

	// No slots at all
	req := testutil.MakeRequest("GET", "/slots/current", nil, nil)
	w := httptest.NewRecorder()
	handler.GetCurrentSlot(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)

	slotID := testutil.CreateActiveTestSlot(t, conn, "Session")

	req = testutil.MakeRequest("GET", "/slots/current", nil, nil)
	w = httptest.NewRecorder()
	handler.GetCurrentSlot(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var slot models.Slot
	testutil.AssertJSON(t, w, &slot)
	if slot.ID != slotID {
		t.Errorf("Expected current slot %q, got %q", slotID, slot.ID)
	}
}

func TestGetSlotStats(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	led := ledger.New(conn)
	handler := NewQueryHandler(conn, led, cfg)

	slotID := testutil.CreateActiveTestSlot(t, conn, "Session")
	testutil.CreateTestVoter(t, conn, "Alice", "V1", slotID)
	testutil.CreateTestVoter(t, conn, "Bob", "V2", slotID)
	candidateID := testutil.CreateTestCandidate(t, conn, "Carol", "Unity Party", slotID)

	if _, err := led.RecordVote("V1", candidateID, ledger.VoteMeta{}); err != nil {
		t.Fatalf("Expected vote to be accepted, got %v", err)
	}

	req := testutil.MakeRequest("GET", "/slots/"+slotID+"/stats", nil, nil)
	req.SetPathValue("id", slotID)
	w := httptest.NewRecorder()
	handler.GetSlotStats(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.SlotStatsResponse
	testutil.AssertJSON(t, w, &resp)
	if resp.Total != 3 || resp.Completed != 1 || resp.Pending != 2 || resp.Missed != 0 {
		t.Errorf("Unexpected stats: %+v", resp)
	}

	req = testutil.MakeRequest("GET", "/slots/missing/stats", nil, nil)
	req.SetPathValue("id", "missing")
	w = httptest.NewRecorder()
	handler.GetSlotStats(w, req)
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestListSlotsIncludesMembers(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewQueryHandler(conn, ledger.New(conn), cfg)

	slotID := testutil.CreateActiveTestSlot(t, conn, "Session")
	testutil.CreateTestVoter(t, conn, "Alice", "V1", slotID)
	testutil.CreateTestCandidate(t, conn, "Carol", "Unity Party", slotID)

	req := testutil.MakeRequest("GET", "/slots", nil, nil)
	w := httptest.NewRecorder()
	handler.ListSlots(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var slots []models.Slot
	testutil.AssertJSON(t, w, &slots)
	if len(slots) != 1 {
		t.Fatalf("Expected 1 slot, got %d", len(slots))
	}
	if len(slots[0].Voters) != 1 || len(slots[0].Candidates) != 1 {
		t.Errorf("Expected slot members to be included, got %+v", slots[0])
	}
}

func TestListVotes(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	led := ledger.New(conn)
	handler := NewQueryHandler(conn, led, cfg)

	slotID := testutil.CreateActiveTestSlot(t, conn, "Session")
	testutil.CreateTestVoter(t, conn, "Alice", "V1", slotID)
	candidateID := testutil.CreateTestCandidate(t, conn, "Carol", "Unity Party", slotID)

	if _, err := led.RecordVote("V1", candidateID, ledger.VoteMeta{}); err != nil {
		t.Fatalf("Expected vote to be accepted, got %v", err)
	}

	req := testutil.MakeRequest("GET", "/votes", nil, nil)
	w := httptest.NewRecorder()
	handler.ListVotes(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var records []models.VoteRecord
	testutil.AssertJSON(t, w, &records)
	if len(records) != 1 {
		t.Fatalf("Expected 1 vote record, got %d", len(records))
	}
	if records[0].VoterID != "V1" || records[0].CandidateID != candidateID {
		t.Errorf("Unexpected record: %+v", records[0])
	}
}
