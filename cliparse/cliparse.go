package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environments. Development unlocks test-only behavior such as the
// fixed OTP being echoed in responses; production must never do that.
const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	Env          string
}

// ParseFlags resolves configuration from CLI flags, falling back to
// environment variables (a .env file is loaded first when present).
func ParseFlags(args []string) (Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	_ = godotenv.Load()

	var cfg Config

	fs := flag.NewFlagSet("chautari", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.Env, "e", "", "Environment (development or production)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 5012 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("database type must be sqlite or postgres")
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == "sqlite" {
			cfg.DatabaseURL = "chautari.db" // local file default
		} else {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	}

	if cfg.Env == "" {
		cfg.Env = os.Getenv("CHAUTARI_ENV")
		if cfg.Env == "" {
			cfg.Env = EnvDevelopment
		}
	}
	if cfg.Env != EnvDevelopment && cfg.Env != EnvProduction {
		return Config{}, errors.New("environment must be development or production")
	}

	return cfg, nil
}

// Development reports whether test-only behavior is unlocked.
func (c Config) Development() bool {
	return c.Env == EnvDevelopment
}
