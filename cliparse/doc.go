/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3419)
  - DatabaseURL: SQLite path or PostgreSQL connection string (required)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKey: Secret for admin endpoints (required)
  - IPHashSalt: Salt for IP hashing (defaults to AdminKey)
  - FaceThreshold: Duplicate-face distance cutoff (default: 0.6)

# Precedence

Settings are resolved in order, later sources winning:

	defaults → TOML config file → environment variables → CLI flags

The config file path comes from -c or VOTEGUARD_CONFIG and uses TOML:

	port = 3419
	database_url = "votes.db"
	admin_key = "secret"
	face_threshold = 0.6

# CLI Flags

	-c              Config file path
	-p              Server port
	-d              Database URL
	-t              Database type
	-admin-key      Admin API key (prefer env)
	-ip-salt        IP hash salt (prefer env)
	-face-threshold Face match threshold

# Environment Variables

	PORT, DATABASE_URL, DATABASE_TYPE, ADMIN_KEY,
	IP_HASH_SALT, FACE_THRESHOLD, VOTEGUARD_CONFIG

# Validation

ParseFlags returns an error if required values are missing or invalid:

  - DATABASE_URL must be provided
  - ADMIN_KEY must be provided
  - database type must be sqlite or postgres
  - face threshold must not be negative
*/
package cliparse
