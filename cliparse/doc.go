// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

A .env file in the working directory is loaded first when present
(github.com/joho/godotenv); explicit environment variables and flags
both take precedence over it.

# Config Fields

  - Port: Server listen port (default: 5012)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - Env: "development" or "production" (default: development)

# CLI Flags

	-p  Server port
	-d  Database URL
	-t  Database type
	-e  Environment

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	CHAUTARI_ENV  → -e

CLI flags take precedence over environment variables.

# Development Mode

Config.Development() gates test-only behavior. The one consumer that
matters: OTP responses include the dev_otp field only in development,
never in production.

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg, registry)
*/
package cliparse
