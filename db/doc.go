/*
Package db handles driver selection and schema creation.

# Opening a Database

Open picks the driver from the configured type:

	conn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)

"sqlite" (the default) uses the pure-Go modernc.org/sqlite driver;
"postgres" uses lib/pq. SQLite connections are capped at one open
connection so concurrent writes serialize instead of failing.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and
indexes. The DDL sticks to types both drivers accept; timestamps are
always written by the application in UTC.

# Tables

The schema includes:

  - slot: Voting windows
  - voter: Registered voters with the single-use voted flag
  - candidate: Candidates and their tallies
  - vote_record: The append-only vote ledger
  - face: Stored face embeddings (JSON encoded)

# Indexes

Performance indexes on:

  - voter.voter_id (unique)
  - voter.slot_id
  - candidate.slot_id
  - vote_record.slot_id
  - face.voter_id (unique)
*/
package db
