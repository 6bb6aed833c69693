// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/chautari-app/chautari/cliparse"
	"github.com/chautari-app/chautari/middleware"
	"github.com/chautari-app/chautari/models"
)

type PartyHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPartyHandler(db *sql.DB, cfg cliparse.Config) *PartyHandler {
	return &PartyHandler{db: db, cfg: cfg}
}

// ListParties handles GET /v1/parties
func (h *PartyHandler) ListParties(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(partySelect + ` ORDER BY name`)
	if err != nil {
		slog.Error("failed to query parties", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}
	defer rows.Close()

	parties := []models.Party{}
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			slog.Error("failed to scan party", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
			return
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read parties", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.PartyList{Data: parties})
}

// GetParty handles GET /v1/parties/{id}
func (h *PartyHandler) GetParty(w http.ResponseWriter, r *http.Request) {
	partyID := r.PathValue("id")

	p, err := scanParty(h.db.QueryRow(partySelect+` WHERE id = $1`, partyID))
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, middleware.CodeNotFound, "Party not found")
		return
	}
	if err != nil {
		slog.Error("failed to query party", "error", err, "party_id", partyID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, p)
}
