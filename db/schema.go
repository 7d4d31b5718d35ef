package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS. The DDL is kept to the
// subset both SQLite and PostgreSQL accept; timestamps are always written by
// the application, never by database defaults.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Voting slots (time-bounded windows)
CREATE TABLE IF NOT EXISTS slot (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    start_time TIMESTAMP NOT NULL,
    end_time TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Registered voters. voter_id is the externally-issued business key.
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    voter_id TEXT NOT NULL UNIQUE,
    image_url TEXT NOT NULL DEFAULT '',
    slot_id TEXT NOT NULL REFERENCES slot(id),
    voted BOOLEAN NOT NULL DEFAULT FALSE,
    voted_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_voter_slot_id ON voter(slot_id);

-- Candidates. votes is only ever incremented by the ledger.
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    party TEXT NOT NULL DEFAULT '',
    voter_id TEXT NOT NULL DEFAULT '',
    image_url TEXT NOT NULL DEFAULT '',
    slot_id TEXT NOT NULL REFERENCES slot(id),
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    voted_at TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_candidate_slot_id ON candidate(slot_id);

-- Append-only vote audit log
CREATE TABLE IF NOT EXISTS vote_record (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL,
    candidate_id TEXT NOT NULL REFERENCES candidate(id),
    slot_id TEXT NOT NULL REFERENCES slot(id),
    ip_hash TEXT NOT NULL DEFAULT '',
    user_agent TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_record_candidate_id ON vote_record(candidate_id);
CREATE INDEX IF NOT EXISTS idx_vote_record_slot_id ON vote_record(slot_id);

-- Face gallery: at most one stored embedding per voter (upsert on voter_id).
-- The embedding is a JSON array of floats.
CREATE TABLE IF NOT EXISTS face (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL UNIQUE,
    embedding TEXT NOT NULL,
    dim INTEGER NOT NULL,
    created_at TIMESTAMP NOT NULL
);
`
