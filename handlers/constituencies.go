// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/chautari-app/chautari/cliparse"
	"github.com/chautari-app/chautari/geo"
	"github.com/chautari-app/chautari/middleware"
	"github.com/chautari-app/chautari/models"
)

type ConstituencyHandler struct {
	db  *sql.DB
	cfg cliparse.Config

	// contains is the boundary membership test, pluggable so a precise
	// point-in-polygon can replace the box approximation.
	contains geo.ContainsFunc
}

func NewConstituencyHandler(db *sql.DB, cfg cliparse.Config) *ConstituencyHandler {
	return &ConstituencyHandler{db: db, cfg: cfg, contains: geo.PointInBounds}
}

// ListConstituencies handles GET /v1/constituencies
func (h *ConstituencyHandler) ListConstituencies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	province := q.Get("province")
	district := q.Get("district")

	rows, err := h.db.Query(constituencySelect + ` ORDER BY id`)
	if err != nil {
		slog.Error("failed to query constituencies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}
	defer rows.Close()

	constituencies := []models.Constituency{}
	for rows.Next() {
		c, err := scanConstituency(rows)
		if err != nil {
			slog.Error("failed to scan constituency", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
			return
		}
		if province != "" && c.Province != province {
			continue
		}
		if district != "" && c.District != district {
			continue
		}
		constituencies = append(constituencies, c)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read constituencies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.ConstituencyList{Data: constituencies})
}

// GetConstituency handles GET /v1/constituencies/{id}
func (h *ConstituencyHandler) GetConstituency(w http.ResponseWriter, r *http.Request) {
	constituencyID := r.PathValue("id")

	c, err := scanConstituency(h.db.QueryRow(constituencySelect+` WHERE id = $1`, constituencyID))
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.CodeNotFound, "Constituency not found")
		return
	}
	if err != nil {
		slog.Error("failed to query constituency", "error", err, "constituency_id", constituencyID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, c)
}

// DetectConstituency handles GET /v1/constituencies/detect
//
// Returns the first constituency, in stored order, whose bounds contain
// the point. The 404 on no match is part of the wire contract; the
// client's data provider translates it to a null result.
func (h *ConstituencyHandler) DetectConstituency(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	lat, latErr := strconv.ParseFloat(q.Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(q.Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "lat and lng are required")
		return
	}

	rows, err := h.db.Query(constituencySelect + ` ORDER BY id`)
	if err != nil {
		slog.Error("failed to query constituencies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}
	defer rows.Close()

	pt := geo.Point{Lat: lat, Lng: lng}
	for rows.Next() {
		c, err := scanConstituency(rows)
		if err != nil {
			slog.Error("failed to scan constituency", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
			return
		}
		if h.contains(pt, c.Bounds) {
			middleware.JSONResponse(w, http.StatusOK, c)
			return
		}
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read constituencies", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	middleware.ErrorResponse(w, http.StatusNotFound, middleware.CodeNotFound, "No constituency found for coordinates")
}
