package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Open connects to the configured database backend. Supported types are
// "sqlite" (default, pure-Go driver) and "postgres". The SQL throughout the
// codebase uses $N placeholders, which both drivers accept.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	switch databaseType {
	case "sqlite", "":
		conn, err := sql.Open("sqlite", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		// SQLite allows a single writer; a lone pooled connection also keeps
		// in-memory databases from fragmenting across connections.
		conn.SetMaxOpenConns(1)
		return conn, nil
	case "postgres":
		conn, err := sql.Open("postgres", databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres database: %w", err)
		}
		return conn, nil
	default:
		return nil, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", databaseType)
	}
}
