// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/chautari-app/chautari/auth"
	"github.com/chautari-app/chautari/cliparse"
	"github.com/chautari-app/chautari/eventquery"
	"github.com/chautari-app/chautari/middleware"
	"github.com/chautari-app/chautari/models"
)

type UserHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	registry *auth.Registry
}

func NewUserHandler(db *sql.DB, cfg cliparse.Config, registry *auth.Registry) *UserHandler {
	return &UserHandler{db: db, cfg: cfg, registry: registry}
}

// Me handles GET /v1/users/me
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db, h.registry)
	if !ok {
		return
	}
	middleware.JSONResponse(w, http.StatusOK, user)
}

// UpdateMe handles PATCH /v1/users/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db, h.registry)
	if !ok {
		return
	}

	var req models.UserUpdateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "Invalid JSON")
		return
	}

	if req.Name != nil {
		if _, err := h.db.Exec(`UPDATE app_user SET name = $1 WHERE id = $2`, *req.Name, user.ID); err != nil {
			slog.Error("failed to update user name", "error", err, "user_id", user.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
			return
		}
	}
	if req.ConstituencyID != nil {
		// Validate the reference when setting, allow clearing with "".
		if *req.ConstituencyID != "" {
			var exists string
			err := h.db.QueryRow(`SELECT id FROM constituency WHERE id = $1`, *req.ConstituencyID).Scan(&exists)
			if err == sql.ErrNoRows {
				middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "unknown constituency")
				return
			}
			if err != nil {
				slog.Error("failed to query constituency", "error", err)
				middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
				return
			}
		}

		var value any
		if *req.ConstituencyID != "" {
			value = *req.ConstituencyID
		}
		if _, err := h.db.Exec(`UPDATE app_user SET constituency_id = $1 WHERE id = $2`, value, user.ID); err != nil {
			slog.Error("failed to update user constituency", "error", err, "user_id", user.ID)
			middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
			return
		}
	}

	updated, err := loadUser(h.db, user.ID)
	if err != nil {
		slog.Error("failed to reload user", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, updated)
}

// MyRSVPs handles GET /v1/users/me/rsvps
func (h *UserHandler) MyRSVPs(w http.ResponseWriter, r *http.Request) {
	user, ok := requireUser(w, r, h.db, h.registry)
	if !ok {
		return
	}

	events, err := loadEventDetails(h.db, user.ID)
	if err != nil {
		slog.Error("failed to load events", "error", err, "user_id", user.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	mine := []models.EventDetail{}
	for _, ev := range events {
		if ev.UserRSVP != "" {
			mine = append(mine, ev)
		}
	}

	middleware.JSONResponse(w, http.StatusOK, models.EventList{
		Data: eventquery.Sort(mine, models.SortDatetime),
	})
}
