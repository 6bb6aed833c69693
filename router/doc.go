// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Chautari API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, registry)

# Endpoints

Health:

	GET /health

Events (public reads, RSVP requires a bearer token):

	GET    /v1/events               - List events with filters and pagination
	GET    /v1/events/nearby        - Events within a radius of a coordinate
	GET    /v1/events/{id}          - Event detail
	POST   /v1/events/{id}/rsvp     - Create or update an RSVP
	DELETE /v1/events/{id}/rsvp     - Cancel an RSVP

Parties and constituencies (public):

	GET /v1/parties                 - List parties
	GET /v1/parties/{id}            - Party detail
	GET /v1/constituencies          - List constituencies
	GET /v1/constituencies/detect   - Constituency containing a coordinate
	GET /v1/constituencies/{id}     - Constituency detail

The literal /detect segment is registered alongside {id}; ServeMux
prefers the literal match, so detect never shadows an id lookup.

Authentication (mock OTP flow):

	POST /v1/auth/request-otp - Send an OTP to a phone number
	POST /v1/auth/verify-otp  - Exchange OTP for access and refresh tokens
	POST /v1/auth/refresh     - Rotate the access token

Current user (requires a bearer token):

	GET   /v1/users/me       - Profile
	PATCH /v1/users/me       - Update name or constituency
	GET   /v1/users/me/rsvps - Events the user is attending

Metadata:

	GET /v1/meta/event-types - Event type labels

# Handler Initialization

The router creates handler instances with dependency injection:

	eventHandler := handlers.NewEventHandler(db, cfg, registry)
	partyHandler := handlers.NewPartyHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(db, cfg, registry)

Handlers receive the database connection, configuration, and where
authentication applies, the shared token registry.
*/
package router
