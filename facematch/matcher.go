package facematch

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"

	"voteguard/models"
)

// Matcher owns the gallery of stored face embeddings and answers whether a
// newly captured face belongs to a previously stored identity.
//
// The in-memory gallery is authoritative for the session. Database writes
// are best-effort: a storage failure is logged and the voting flow keeps
// working, at the cost of losing gallery entries if the process dies before
// the next successful write.
type Matcher struct {
	db *sql.DB

	mu    sync.RWMutex
	faces []models.FaceRecord
}

// New creates a Matcher and loads the persisted gallery. A load failure is
// logged and results in an empty gallery rather than an error.
func New(db *sql.DB) *Matcher {
	m := &Matcher{db: db}

	rows, err := db.Query(`
		SELECT voter_id, embedding FROM face ORDER BY created_at
	`)
	if err != nil {
		slog.Error("failed to load face gallery", "error", err)
		return m
	}
	defer rows.Close()

	for rows.Next() {
		var voterID, raw string
		if err := rows.Scan(&voterID, &raw); err != nil {
			slog.Error("failed to scan face record", "error", err)
			continue
		}
		var embedding models.Embedding
		if err := json.Unmarshal([]byte(raw), &embedding); err != nil {
			slog.Error("failed to decode stored embedding", "voter_id", voterID, "error", err)
			continue
		}
		m.faces = append(m.faces, models.FaceRecord{VoterID: voterID, Embedding: embedding})
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read face gallery", "error", err)
	}

	slog.Info("face gallery loaded", "size", len(m.faces))
	return m
}

// Store records an embedding for a voter, replacing any previous embedding
// stored under the same voter ID. The persisted copy is written best-effort.
func (m *Matcher) Store(embedding models.Embedding, voterID string) {
	m.mu.Lock()
	replaced := false
	for i := range m.faces {
		if m.faces[i].VoterID == voterID {
			m.faces[i].Embedding = embedding
			replaced = true
			break
		}
	}
	if !replaced {
		m.faces = append(m.faces, models.FaceRecord{VoterID: voterID, Embedding: embedding})
	}
	m.mu.Unlock()

	raw, err := json.Marshal(embedding)
	if err != nil {
		slog.Error("failed to encode embedding", "voter_id", voterID, "error", err)
		return
	}

	_, err = m.db.Exec(`
		INSERT INTO face (id, voter_id, embedding, dim, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (voter_id) DO UPDATE SET embedding = excluded.embedding, dim = excluded.dim
	`, uuid.NewString(), voterID, string(raw), len(embedding), time.Now().UTC())
	if err != nil {
		slog.Error("failed to persist face record", "voter_id", voterID, "error", err)
	}
}

// Recognize scans the gallery for the closest stored embedding and returns
// the matching voter ID if the minimum distance is strictly below threshold.
// An empty gallery never matches.
func (m *Matcher) Recognize(embedding models.Embedding, threshold float64) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	closest := ""
	minDist := math.Inf(1)
	for _, face := range m.faces {
		if d := Distance(embedding, face.Embedding); d < minDist {
			minDist = d
			closest = face.VoterID
		}
	}

	if minDist < threshold {
		return closest, true
	}
	return "", false
}

// Size returns the number of stored face records.
func (m *Matcher) Size() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.faces)
}

// Clear empties the gallery and deletes the persisted copy.
func (m *Matcher) Clear() {
	m.mu.Lock()
	m.faces = nil
	m.mu.Unlock()

	if _, err := m.db.Exec(`DELETE FROM face`); err != nil {
		slog.Error("failed to clear persisted face gallery", "error", err)
	}
}
