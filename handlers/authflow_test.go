// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/chautari-app/chautari/auth"
	"github.com/chautari-app/chautari/cliparse"
	"github.com/chautari-app/chautari/models"
	"github.com/chautari-app/chautari/testutil"
)

func TestRequestOTPDevelopment(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAuthHandler(db, testutil.GetTestConfig(), auth.NewRegistry())

	req := testutil.MakeRequest("POST", "/v1/auth/request-otp",
		map[string]string{"phone": "+9779841234567"}, nil)
	w := httptest.NewRecorder()

	handler.RequestOTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.OTPResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.DevOTP == "" {
		t.Error("Development responses must carry the OTP for test automation")
	}
	if resp.ExpiresIn != 300 {
		t.Errorf("Expected expires_in 300, got %d", resp.ExpiresIn)
	}
	// The phone never echoes back unmasked
	if strings.Contains(resp.Message, "+9779841234567") {
		t.Errorf("Message leaks the raw phone: %s", resp.Message)
	}
}

func TestRequestOTPProductionHidesOTP(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	cfg.Env = cliparse.EnvProduction
	handler := NewAuthHandler(db, cfg, auth.NewRegistry())

	req := testutil.MakeRequest("POST", "/v1/auth/request-otp",
		map[string]string{"phone": "+9779841234567"}, nil)
	w := httptest.NewRecorder()

	handler.RequestOTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.OTPResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.DevOTP != "" {
		t.Error("Production responses must never carry the OTP")
	}
}

func TestRequestOTPRequiresPhone(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAuthHandler(db, testutil.GetTestConfig(), auth.NewRegistry())

	req := testutil.MakeRequest("POST", "/v1/auth/request-otp", map[string]string{}, nil)
	w := httptest.NewRecorder()

	handler.RequestOTP(w, req)

	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestVerifyOTPCreatesUserAndSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	registry := auth.NewRegistry()
	handler := NewAuthHandler(db, testutil.GetTestConfig(), registry)

	phone := "+9779841234567"
	registry.IssueOTP(phone)

	req := testutil.MakeRequest("POST", "/v1/auth/verify-otp",
		map[string]string{"phone": phone, "otp": auth.TestOTP}, nil)
	w := httptest.NewRecorder()

	handler.VerifyOTP(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.TokenResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatal("Expected both tokens in the response")
	}
	if resp.ExpiresIn != 86400 {
		t.Errorf("Expected expires_in 86400, got %d", resp.ExpiresIn)
	}
	if resp.User == nil {
		t.Fatal("Expected the user in the response")
	}
	if resp.User.Phone != phone {
		t.Errorf("Expected phone %s, got %s", phone, resp.User.Phone)
	}
	if resp.User.Role != models.RoleCitizen {
		t.Errorf("Expected citizen role, got %s", resp.User.Role)
	}

	// The access token resolves back to the same user
	userID, err := registry.ValidateAccess(resp.AccessToken)
	if err != nil {
		t.Fatalf("Access token should validate: %v", err)
	}
	if userID != resp.User.ID {
		t.Errorf("Token resolves to %s, expected %s", userID, resp.User.ID)
	}
}

func TestVerifyOTPIsStableForRepeatLogins(t *testing.T) {
	db := testutil.SetupTestDB(t)
	registry := auth.NewRegistry()
	handler := NewAuthHandler(db, testutil.GetTestConfig(), registry)

	phone := "+9779841234567"
	login := func() models.TokenResponse {
		req := testutil.MakeRequest("POST", "/v1/auth/verify-otp",
			map[string]string{"phone": phone, "otp": auth.TestOTP}, nil)
		w := httptest.NewRecorder()
		handler.VerifyOTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.TokenResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	first := login()
	second := login()

	// Identity derives from the phone, so the user row is reused
	if first.User.ID != second.User.ID {
		t.Errorf("Repeat login created a different user: %s vs %s", first.User.ID, second.User.ID)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM app_user WHERE phone = $1`, phone).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected one user row, got %d", count)
	}
}

func TestVerifyOTPRejectsWrongCode(t *testing.T) {
	db := testutil.SetupTestDB(t)
	registry := auth.NewRegistry()
	handler := NewAuthHandler(db, testutil.GetTestConfig(), registry)

	req := testutil.MakeRequest("POST", "/v1/auth/verify-otp",
		map[string]string{"phone": "+9779841234567", "otp": "999999"}, nil)
	w := httptest.NewRecorder()

	handler.VerifyOTP(w, req)

	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestRefreshRotatesAccessToken(t *testing.T) {
	db := testutil.SetupTestDB(t)
	registry := auth.NewRegistry()
	handler := NewAuthHandler(db, testutil.GetTestConfig(), registry)

	_, token := testutil.LoginTestUser(t, db, registry, "+9779841234567")
	sess, err := registry.IssueSession(auth.GenerateUserID("+9779841234567"))
	if err != nil {
		t.Fatal(err)
	}

	req := testutil.MakeRequest("POST", "/v1/auth/refresh?refresh_token="+sess.RefreshToken, nil, nil)
	w := httptest.NewRecorder()

	handler.Refresh(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.TokenResponse
	testutil.AssertJSON(t, w, &resp)

	if resp.AccessToken == "" {
		t.Fatal("Expected a fresh access token")
	}
	if resp.AccessToken == sess.AccessToken || resp.AccessToken == token {
		t.Error("Refresh must mint a new access token")
	}
}

func TestRefreshRejectsMissingAndBogusTokens(t *testing.T) {
	db := testutil.SetupTestDB(t)
	handler := NewAuthHandler(db, testutil.GetTestConfig(), auth.NewRegistry())

	missing := testutil.MakeRequest("POST", "/v1/auth/refresh", nil, nil)
	w := httptest.NewRecorder()
	handler.Refresh(w, missing)
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	bogus := testutil.MakeRequest("POST", "/v1/auth/refresh?refresh_token=nope", nil, nil)
	w = httptest.NewRecorder()
	handler.Refresh(w, bogus)
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}
