/*
Package main provides the entry point for the VoteGuard API server.

VoteGuard is the backend for a browser e-voting portal: it keeps an
append-only vote ledger, enforces one-vote-per-voter, and blocks
duplicate voters by matching face embeddings captured in the browser.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=votes.db ADMIN_KEY=secret go run main.go

Or with flags:

	go run main.go -p 3419 -d votes.db -admin-key secret

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string
  - ADMIN_KEY (-admin-key): Secret for admin endpoints

Optional settings:

  - PORT (-p): Server port (default: 3419)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"
  - FACE_THRESHOLD (-face-threshold): Duplicate-face distance cutoff (default: 0.6)
  - IP_HASH_SALT (-ip-salt): Salt for vote record IP hashing
  - VOTEGUARD_CONFIG (-c): Path to a TOML config file

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (admin, voting, queries, system)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - ledger: Vote recording and status derivation
  - facematch: In-memory face embedding gallery
  - auth: Admin key validation and IP hashing
  - db: Driver selection and schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
