package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/pelletier/go-toml/v2"
)

// DefaultFaceThreshold is the similarity cutoff for duplicate-voter
// detection. Lower values require closer matches. Tunable per deployment.
const DefaultFaceThreshold = 0.6

type Config struct {
	Port          int     `toml:"port"`
	DatabaseURL   string  `toml:"database_url"`
	DatabaseType  string  `toml:"database_type"`
	AdminKey      string  `toml:"admin_key"`
	IPHashSalt    string  `toml:"ip_hash_salt"`
	FaceThreshold float64 `toml:"face_threshold"`
}

// ParseFlags builds the configuration from, in order of precedence:
// CLI flags, environment variables, an optional TOML config file, defaults.
func ParseFlags(args []string) (Config, error) {
	var flags Config
	var configPath string

	fs := flag.NewFlagSet("voteguard", flag.ContinueOnError)

	fs.StringVar(&configPath, "c", "", "Path to TOML config file")
	fs.IntVar(&flags.Port, "p", 0, "Server port")
	fs.StringVar(&flags.DatabaseURL, "d", "", "Database URL or file path")
	fs.StringVar(&flags.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.Float64Var(&flags.FaceThreshold, "face-threshold", 0, "Face match distance threshold")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&flags.AdminKey, "admin-key", "", "Admin API key (prefer env)")
	fs.StringVar(&flags.IPHashSalt, "ip-salt", "", "Salt for IP hashing (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var cfg Config
	if configPath == "" {
		configPath = os.Getenv("VOTEGUARD_CONFIG")
	}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// Environment variables override the config file
	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return Config{}, errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("DATABASE_TYPE"); v != "" {
		cfg.DatabaseType = v
	}
	if v := os.Getenv("ADMIN_KEY"); v != "" {
		cfg.AdminKey = v
	}
	if v := os.Getenv("IP_HASH_SALT"); v != "" {
		cfg.IPHashSalt = v
	}
	if v := os.Getenv("FACE_THRESHOLD"); v != "" {
		threshold, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return Config{}, errors.New("invalid FACE_THRESHOLD env variable")
		}
		cfg.FaceThreshold = threshold
	}

	// Flags override everything
	if flags.Port != 0 {
		cfg.Port = flags.Port
	}
	if flags.DatabaseURL != "" {
		cfg.DatabaseURL = flags.DatabaseURL
	}
	if flags.DatabaseType != "" {
		cfg.DatabaseType = flags.DatabaseType
	}
	if flags.AdminKey != "" {
		cfg.AdminKey = flags.AdminKey
	}
	if flags.IPHashSalt != "" {
		cfg.IPHashSalt = flags.IPHashSalt
	}
	if flags.FaceThreshold != 0 {
		cfg.FaceThreshold = flags.FaceThreshold
	}

	// Defaults and validation
	if cfg.Port == 0 {
		cfg.Port = 3419
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = "sqlite"
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.AdminKey == "" {
		return Config{}, errors.New("ADMIN_KEY required")
	}
	if cfg.IPHashSalt == "" {
		// Reuse admin key for IP hashing when no dedicated salt is set
		cfg.IPHashSalt = cfg.AdminKey
	}

	if cfg.FaceThreshold < 0 {
		return Config{}, errors.New("face threshold must not be negative")
	}
	if cfg.FaceThreshold == 0 {
		cfg.FaceThreshold = DefaultFaceThreshold
	}

	return cfg, nil
}
