// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/chautari-app/chautari/auth"
	"github.com/chautari-app/chautari/middleware"
	"github.com/chautari-app/chautari/models"
)

func loadUser(db *sql.DB, userID string) (*models.User, error) {
	var (
		user    models.User
		name    sql.NullString
		constID sql.NullString
		created sql.NullTime
	)
	err := db.QueryRow(`
		SELECT id, phone, name, role, constituency_id, created_at
		FROM app_user WHERE id = $1
	`, userID).Scan(&user.ID, &user.Phone, &name, &user.Role, &constID, &created)
	if err != nil {
		return nil, err
	}
	user.Name = name.String
	user.ConstituencyID = constID.String
	if created.Valid {
		t := created.Time
		user.CreatedAt = &t
	}
	return &user, nil
}

// currentUserID resolves the bearer token to a user ID, or "" for
// anonymous and invalid tokens. Optional-auth endpoints use this to
// personalize without rejecting.
func currentUserID(r *http.Request, registry *auth.Registry) string {
	token := middleware.BearerToken(r)
	if token == "" {
		return ""
	}
	userID, err := registry.ValidateAccess(token)
	if err != nil {
		return ""
	}
	return userID
}

// requireUser resolves the bearer token to a full user row or writes
// the 401. Callers return immediately on !ok.
func requireUser(w http.ResponseWriter, r *http.Request, db *sql.DB, registry *auth.Registry) (*models.User, bool) {
	token := middleware.BearerToken(r)
	if token == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.CodeUnauthorized, "authorization required")
		return nil, false
	}

	userID, err := registry.ValidateAccess(token)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.CodeUnauthorized, "invalid or expired token")
		return nil, false
	}

	user, err := loadUser(db, userID)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.CodeUnauthorized, "user not found")
		return nil, false
	}
	if err != nil {
		slog.Error("failed to load user", "error", err, "user_id", userID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return nil, false
	}
	return user, true
}
