// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/chautari-app/chautari/dataset"
	"github.com/chautari-app/chautari/middleware"
	"github.com/chautari-app/chautari/models"
)

type MetaHandler struct {
	db         *sql.DB
	eventTypes map[string]models.EventTypeInfo
}

func NewMetaHandler(db *sql.DB) *MetaHandler {
	h := &MetaHandler{db: db}

	// Event-type metadata is display vocabulary, not stored data; the
	// bundled dataset is its source of truth on both sides of the wire.
	ds, err := dataset.Load()
	if err != nil {
		slog.Error("failed to load bundled dataset", "error", err)
		h.eventTypes = map[string]models.EventTypeInfo{}
		return h
	}
	h.eventTypes = ds.EventTypes
	return h
}

// EventTypes handles GET /v1/meta/event-types
func (h *MetaHandler) EventTypes(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.eventTypes)
}

// Health handles GET /health with a DB connectivity probe.
func (h *MetaHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := "healthy"
	database := "connected"
	if err := h.db.Ping(); err != nil {
		status = "degraded"
		database = "error: " + err.Error()
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]string{
		"status":   status,
		"service":  "chautari-api",
		"database": database,
	})
}
