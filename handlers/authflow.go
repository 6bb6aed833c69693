// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/chautari-app/chautari/auth"
	"github.com/chautari-app/chautari/cliparse"
	"github.com/chautari-app/chautari/middleware"
	"github.com/chautari-app/chautari/models"
)

type AuthHandler struct {
	db       *sql.DB
	cfg      cliparse.Config
	registry *auth.Registry
}

func NewAuthHandler(db *sql.DB, cfg cliparse.Config, registry *auth.Registry) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, registry: registry}
}

// RequestOTP handles POST /v1/auth/request-otp
func (h *AuthHandler) RequestOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "Invalid JSON")
		return
	}
	if req.Phone == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "phone is required")
		return
	}

	otp := h.registry.IssueOTP(req.Phone)
	masked := auth.MaskPhone(req.Phone)

	slog.Info("otp issued", "phone", masked)

	resp := models.OTPResponse{
		Message:   "OTP sent to " + masked,
		ExpiresIn: int(auth.OTPTTL / time.Second),
	}
	// The OTP goes back in the response for test automation in
	// development only. Production responses never carry it.
	if h.cfg.Development() {
		resp.DevOTP = otp
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// VerifyOTP handles POST /v1/auth/verify-otp
//
// A valid pair is exchanged for a token session and the user row, which
// is created on first login (identity derives from the phone number).
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPVerifyRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "Invalid JSON")
		return
	}
	if req.Phone == "" || req.OTP == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "phone and otp are required")
		return
	}

	if err := h.registry.VerifyOTP(req.Phone, req.OTP); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.CodeUnauthorized, "Invalid OTP")
		return
	}

	user, err := h.getOrCreateUser(req.Phone)
	if err != nil {
		slog.Error("failed to get or create user", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Database error")
		return
	}

	sess, err := h.registry.IssueSession(user.ID)
	if err != nil {
		slog.Error("failed to issue session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, middleware.CodeInternal, "Failed to issue tokens")
		return
	}

	slog.Info("user logged in", "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
		User:         user,
	})
}

// Refresh handles POST /v1/auth/refresh?refresh_token=...
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	refreshToken := r.URL.Query().Get("refresh_token")
	if refreshToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, middleware.CodeBadRequest, "refresh_token is required")
		return
	}

	sess, err := h.registry.Refresh(refreshToken)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, middleware.CodeUnauthorized, "Invalid refresh token")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.TokenResponse{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresIn:    sess.ExpiresIn,
	})
}

func (h *AuthHandler) getOrCreateUser(phone string) (*models.User, error) {
	userID := auth.GenerateUserID(phone)

	user, err := loadUser(h.db, userID)
	if err == nil {
		return user, nil
	}
	if err != sql.ErrNoRows {
		return nil, err
	}

	now := time.Now().UTC()
	_, err = h.db.Exec(`
		INSERT INTO app_user (id, phone, role, created_at)
		VALUES ($1, $2, $3, $4)
	`, userID, phone, models.RoleCitizen, now)
	if err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", userID, "phone", auth.MaskPhone(phone))
	return loadUser(h.db, userID)
}
