package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"voteguard/cliparse"
	"voteguard/db"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full
// schema. Each test gets its own database; no external services needed.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single pooled connection keeps every statement on the same
	// in-memory database.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3419,
		DatabaseURL:   ":memory:",
		DatabaseType:  "sqlite",
		AdminKey:      "test-admin-key",
		IPHashSalt:    "test-ip-salt",
		FaceThreshold: cliparse.DefaultFaceThreshold,
	}
}

// CreateTestSlot inserts a slot with the given window and returns its ID
func CreateTestSlot(t *testing.T, conn *sql.DB, name string, start, end time.Time) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO slot (id, name, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, id, name, start.UTC(), end.UTC(), time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test slot: %v", err)
	}

	return id
}

// CreateActiveTestSlot inserts a slot whose window contains the current time
func CreateActiveTestSlot(t *testing.T, conn *sql.DB, name string) string {
	t.Helper()
	now := time.Now().UTC()
	return CreateTestSlot(t, conn, name, now.Add(-time.Hour), now.Add(time.Hour))
}

// CreateTestVoter registers a voter in a slot and returns the storage ID
func CreateTestVoter(t *testing.T, conn *sql.DB, name, voterID, slotID string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO voter (id, name, voter_id, image_url, slot_id, voted)
		VALUES ($1, $2, $3, '', $4, FALSE)
	`, id, name, voterID, slotID)
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return id
}

// CreateTestCandidate registers a candidate in a slot and returns its ID
func CreateTestCandidate(t *testing.T, conn *sql.DB, name, party, slotID string) string {
	t.Helper()

	id := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, name, party, voter_id, image_url, slot_id, votes, has_voted)
		VALUES ($1, $2, $3, '', '', $4, 0, FALSE)
	`, id, name, party, slotID)
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return id
}

// CandidateVotes reads a candidate's current tally
func CandidateVotes(t *testing.T, conn *sql.DB, candidateID string) int {
	t.Helper()

	var votes int
	err := conn.QueryRow(`SELECT votes FROM candidate WHERE id = $1`, candidateID).Scan(&votes)
	if err != nil {
		t.Fatalf("Failed to query candidate votes: %v", err)
	}
	return votes
}

// CountVoteRecords counts audit-log entries for a candidate
func CountVoteRecords(t *testing.T, conn *sql.DB, candidateID string) int {
	t.Helper()

	var count int
	err := conn.QueryRow(`
		SELECT COUNT(*) FROM vote_record WHERE candidate_id = $1
	`, candidateID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to count vote records: %v", err)
	}
	return count
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
