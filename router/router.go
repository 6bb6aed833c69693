// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/chautari-app/chautari/auth"
	"github.com/chautari-app/chautari/cliparse"
	"github.com/chautari-app/chautari/handlers"
	"github.com/chautari-app/chautari/middleware"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, registry *auth.Registry) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	eventHandler := handlers.NewEventHandler(db, cfg, registry)
	partyHandler := handlers.NewPartyHandler(db, cfg)
	constituencyHandler := handlers.NewConstituencyHandler(db, cfg)
	authHandler := handlers.NewAuthHandler(db, cfg, registry)
	userHandler := handlers.NewUserHandler(db, cfg, registry)
	metaHandler := handlers.NewMetaHandler(db)

	// Health check
	mux.HandleFunc("GET /health", metaHandler.Health)

	// Events
	mux.HandleFunc("GET /v1/events", middleware.WithLogging(eventHandler.ListEvents))
	mux.HandleFunc("GET /v1/events/nearby", middleware.WithLogging(eventHandler.NearbyEvents))
	mux.HandleFunc("GET /v1/events/{id}", middleware.WithLogging(eventHandler.GetEvent))
	mux.HandleFunc("POST /v1/events/{id}/rsvp", middleware.WithLogging(eventHandler.RSVP))
	mux.HandleFunc("DELETE /v1/events/{id}/rsvp", middleware.WithLogging(eventHandler.CancelRSVP))

	// Parties
	mux.HandleFunc("GET /v1/parties", middleware.WithLogging(partyHandler.ListParties))
	mux.HandleFunc("GET /v1/parties/{id}", middleware.WithLogging(partyHandler.GetParty))

	// Constituencies; the literal /detect segment wins over {id}
	mux.HandleFunc("GET /v1/constituencies", middleware.WithLogging(constituencyHandler.ListConstituencies))
	mux.HandleFunc("GET /v1/constituencies/detect", middleware.WithLogging(constituencyHandler.DetectConstituency))
	mux.HandleFunc("GET /v1/constituencies/{id}", middleware.WithLogging(constituencyHandler.GetConstituency))

	// Authentication
	mux.HandleFunc("POST /v1/auth/request-otp", middleware.WithLogging(authHandler.RequestOTP))
	mux.HandleFunc("POST /v1/auth/verify-otp", middleware.WithLogging(authHandler.VerifyOTP))
	mux.HandleFunc("POST /v1/auth/refresh", middleware.WithLogging(authHandler.Refresh))

	// Current user
	mux.HandleFunc("GET /v1/users/me", middleware.WithLogging(userHandler.Me))
	mux.HandleFunc("PATCH /v1/users/me", middleware.WithLogging(userHandler.UpdateMe))
	mux.HandleFunc("GET /v1/users/me/rsvps", middleware.WithLogging(userHandler.MyRSVPs))

	// Metadata
	mux.HandleFunc("GET /v1/meta/event-types", middleware.WithLogging(metaHandler.EventTypes))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("chautari API v1"))
	})

	return mux
}
