// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Chautari API server.

Chautari is a campaign-event discovery platform for Nepali elections:
citizens browse rallies, sabhas, and townhalls, find events near them,
and RSVP with a phone-verified identity.

# Starting the Server

The server runs against sqlite out of the box:

	go run main.go

Or against PostgreSQL:

	DATABASE_URL=postgres://... DATABASE_TYPE=postgres go run main.go

Or with flags:

	go run main.go -p 5012 -d "postgres://..." -t postgres -e production

# Configuration

Optional settings:

  - PORT (-p): Server port (default: 5012)
  - DATABASE_URL (-d): Connection string (default: local sqlite file)
  - DATABASE_TYPE (-t): "sqlite" or "postgres" (default: sqlite)
  - CHAUTARI_ENV (-e): "development" or "production" (default: development)

In development the verify-otp response includes the OTP itself, so the
full auth flow works without an SMS provider.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (events, parties, constituencies, auth, users)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: OTP verification and token registry
  - db: Schema creation and dataset seeding
  - dataset: Bundled seed data for events, parties, and constituencies

The same repository ships the client-side packages consumed by the app:

  - provider: Static and live data providers behind one interface
  - apiclient: HTTP client with token refresh and key-casing translation
  - eventquery: Shared filter, sort, and pagination pipeline
  - appstate: Application state store with RSVP reconciliation
  - eventview: Derived view model (day grouping, labels)
  - geo: Geospatial primitives (haversine, point-in-bounds)

On first run the server seeds its database from the bundled dataset, so
the live API and the static provider answer from the same data.
*/
package main
