// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chautari-app/chautari/auth"
	"github.com/chautari-app/chautari/cliparse"
	"github.com/chautari-app/chautari/eventquery"
	"github.com/chautari-app/chautari/middleware"
	"github.com/chautari-app/chautari/models"
)

type EventHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	registry *auth.Registry
}

func NewEventHandler(db *sql.DB, cfg cliparse.Config, registry *auth.Registry) *EventHandler {
	return &EventHandler{db: db, cfg: cfg, registry: registry}
}

// parseEventFilters reads the underscore_case query parameters into the
// filter set. Date bounds are RFC 3339 or plain dates.
func parseEventFilters(r *http.Request) (models.EventFilters, error) {
	q := r.URL.Query()
	filters := models.EventFilters{
		ConstituencyID: q.Get("constituency_id"),
		PartyID:        q.Get("party_id"),
		EventType:      q.Get("event_type"),
		Status:         q.Get("status"),
		Search:         q.Get("search"),
		Sort:           q.Get("sort"),
	}

	if raw := q.Get("tags"); raw != "" {
		filters.Tags = strings.Split(raw, ",")
	}

	if raw := q.Get("date_from"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filters, err
		}
		filters.DateFrom = &t
	}
	if raw := q.Get("date_to"); raw != "" {
		t, err := parseDate(raw)
		if err != nil {
			return filters, err
		}
		filters.DateTo = &t
	}

	if raw := q.Get("page"); raw != "" {
		filters.Page, _ = strconv.Atoi(raw)
	}
	if raw := q.Get("per_page"); raw != "" {
		filters.PerPage, _ = strconv.Atoi(raw)
	}

	return filters, nil
}

func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}

// ListEvents handles GET /v1/events
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filters, err := parseEventFilters(r)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "invalid date filter")
		return
	}

	events, err := loadEventDetails(h.db, currentUserID(r, h.registry))
	if err != nil {
		slog.Error("failed to load events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	filtered := eventquery.Filter(events, filters)
	sorted := eventquery.Sort(filtered, filters.Sort)
	page, pagination := eventquery.Paginate(sorted, filters.Page, filters.PerPage)

	middleware.JSONResponse(w, http.StatusOK, models.EventPage{
		Data:       page,
		Pagination: pagination,
	})
}

// NearbyEvents handles GET /v1/events/nearby
func (h *EventHandler) NearbyEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "lat and lng are required")
		return
	}

	query := models.NearbyQuery{Lat: lat, Lng: lng}
	if raw := q.Get("radius"); raw != "" {
		query.RadiusMeters, _ = strconv.ParseFloat(raw, 64)
	}
	if raw := q.Get("per_page"); raw != "" {
		query.PerPage, _ = strconv.Atoi(raw)
	}

	events, err := loadEventDetails(h.db, currentUserID(r, h.registry))
	if err != nil {
		slog.Error("failed to load events", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	radius := query.RadiusMeters
	if radius <= 0 {
		radius = eventquery.DefaultRadiusMeters
	}

	middleware.JSONResponse(w, http.StatusOK, models.NearbyResult{
		Data:         eventquery.Nearby(events, query),
		Center:       models.NearbyCenter{Lat: lat, Lng: lng},
		RadiusMeters: radius,
	})
}

// GetEvent handles GET /v1/events/{id}
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("id")

	detail, err := loadEventDetail(h.db, eventID, currentUserID(r, h.registry))
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.CodeNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to load event", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// RSVP handles POST /v1/events/{id}/rsvp
//
// One row per (user, event): the INSERT upserts on the unique
// constraint, so repeating an RSVP rewrites the same row instead of
// adding another. The response is the authoritative post-RSVP event.
func (h *EventHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db, h.registry)
	if !ok {
		return
	}

	eventID := r.PathValue("id")

	var req models.RSVPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "Invalid JSON")
		return
	}
	if req.Status == "" {
		req.Status = models.RSVPGoing
	}
	if req.Status != models.RSVPGoing && req.Status != models.RSVPInterested && req.Status != models.RSVPNotGoing {
		middleware.ErrorResponseDetails(w, http.StatusBadRequest, middleware.CodeBadRequest, "invalid rsvp",
			map[string]any{"status": "must be going, interested, or not_going"})
		return
	}

	// Verify the event exists before writing
	var exists string
	err := h.db.QueryRow(`SELECT id FROM event WHERE id = $1`, eventID).Scan(&exists)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.CodeNotFound, "Event not found")
		return
	}
	if err != nil {
		slog.Error("failed to query event", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	now := time.Now().UTC()
	_, err = h.db.Exec(`
		INSERT INTO rsvp (id, user_id, event_id, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, event_id)
		DO UPDATE SET status = $7, updated_at = $8
	`, uuid.NewString(), user.ID, eventID, req.Status, now, now, req.Status, now)

	if err != nil {
		slog.Error("failed to upsert rsvp", "error", err, "event_id", eventID, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Failed to save RSVP")
		return
	}

	slog.Info("rsvp recorded", "event_id", eventID, "user_id", user.ID, "status", req.Status)

	detail, err := loadEventDetail(h.db, eventID, user.ID)
	if err != nil {
		slog.Error("failed to reload event after rsvp", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, detail)
}

// CancelRSVP handles DELETE /v1/events/{id}/rsvp
func (h *EventHandler) CancelRSVP(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db, h.registry)
	if !ok {
		return
	}

	eventID := r.PathValue("id")

	res, err := h.db.Exec(`DELETE FROM rsvp WHERE user_id = $1 AND event_id = $2`, user.ID, eventID)
	if err != nil {
		slog.Error("failed to delete rsvp", "error", err, "event_id", eventID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Failed to cancel RSVP")
		return
	}

	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.CodeNotFound, "RSVP not found")
		return
	}

	slog.Info("rsvp cancelled", "event_id", eventID, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.RSVPCancelResponse{Status: "cancelled"})
}
