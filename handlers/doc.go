// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Chautari API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - EventHandler: Event listing, nearby search, detail, RSVP lifecycle
  - PartyHandler: Party reference data
  - ConstituencyHandler: Constituency reference data and geofence lookup
  - AuthHandler: OTP login and token refresh
  - UserHandler: Profile and RSVP history
  - MetaHandler: Event-type vocabulary and health

Handlers are created via constructor functions:

	eventHandler := handlers.NewEventHandler(db, cfg, registry)

# Query Semantics

Listing endpoints load the event set fully joined and run the shared
eventquery pipeline over it - the same filtering, sorting, pagination,
and nearby code the client's static provider uses. A query against this
server and the same query against the bundled dataset return the same
shape and order; that equivalence is the compatibility contract between
the two data modes, and the integration tests pin it.

# RSVP Semantics

One row per (user, event), enforced by a UNIQUE constraint and an
ON CONFLICT upsert:

	POST   /v1/events/{id}/rsvp → RSVP (idempotent per user)
	DELETE /v1/events/{id}/rsvp → CancelRSVP

rsvp_count in responses is always derived by a subquery over going
rows. Repeating an RSVP rewrites the same row, so the count cannot
inflate; N distinct users produce exactly N rows under any
interleaving.

# Auth Flow

Phone OTP is the only credential:

	POST /v1/auth/request-otp → RequestOTP (dev responses echo the OTP)
	POST /v1/auth/verify-otp  → VerifyOTP (returns tokens + user)
	POST /v1/auth/refresh     → Refresh (rotates the access token)

Protected endpoints take the access token as a bearer header. Optional
auth endpoints (event listings) personalize user_rsvp when a valid
token is present and stay anonymous otherwise.
*/
package handlers
