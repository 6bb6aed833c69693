// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/chautari-app/chautari/models"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *MemoryTokenStore) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	store := NewMemoryTokenStore()
	client := New(Config{BaseURL: srv.URL + "/v1"}, store)
	return client, store
}

func TestServerErrorIsNormalized(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		json.NewEncoder(w).Encode(models.ErrorBody{
			Code:    "ALREADY_RSVPED",
			Message: "you already have an RSVP",
			Details: map[string]any{"event_id": "evt-001"},
		})
	}))

	_, err := client.GetEvent(context.Background(), "evt-001")
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusConflict || apiErr.Code != "ALREADY_RSVPED" {
		t.Errorf("got status=%d code=%s", apiErr.Status, apiErr.Code)
	}
	// Details keys cross the boundary into the internal convention.
	if apiErr.Details["eventId"] != "evt-001" {
		t.Errorf("details = %#v, want camelCase eventId key", apiErr.Details)
	}
}

func TestUnparseableErrorBodyKeepsStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>upstream broke</html>"))
	}))

	_, err := client.ListParties(context.Background())
	apiErr, ok := AsAPIError(err)
	if !ok {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", apiErr.Status)
	}
	if apiErr.Code != CodeUnknown {
		t.Errorf("code = %s, want %s", apiErr.Code, CodeUnknown)
	}
	if apiErr.Message != "HTTP 502" {
		t.Errorf("message = %q, want fallback HTTP 502", apiErr.Message)
	}
}

func TestTimeoutIsDistinctFromNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(srv.Close)

	client := New(Config{BaseURL: srv.URL + "/v1", Timeout: 20 * time.Millisecond}, nil)
	_, err := client.ListParties(context.Background())
	if !IsTimeout(err) {
		t.Errorf("expected TIMEOUT, got %v", err)
	}

	// A connection-level failure is NETWORK_ERROR, not TIMEOUT.
	srv.Close()
	dead := New(Config{BaseURL: srv.URL + "/v1"}, nil)
	_, err = dead.ListParties(context.Background())
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Code != CodeNetworkError {
		t.Errorf("expected NETWORK_ERROR, got %v", err)
	}
}

func TestNoContentYieldsNoPayload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	if err := client.CancelRSVP(context.Background(), "evt-001"); err != nil {
		t.Errorf("CancelRSVP on 204: %v", err)
	}
}

func TestAuthHeaderLifecycle(t *testing.T) {
	var gotAuth []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/auth/request-otp":
			json.NewEncoder(w).Encode(models.OTPResponse{ExpiresIn: 300})
		case "/v1/parties":
			json.NewEncoder(w).Encode(models.PartyList{})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	ctx := context.Background()

	// No token held: no header either way.
	client.ListParties(ctx)

	// Token held: default requests carry it...
	client.SetAccessToken("tok-123")
	client.ListParties(ctx)

	// ...but auth=false calls never do.
	client.RequestOTP(ctx, "+9779841000000")

	want := []string{"", "Bearer tok-123", ""}
	if len(gotAuth) != len(want) {
		t.Fatalf("got %d requests, want %d", len(gotAuth), len(want))
	}
	for i := range want {
		if gotAuth[i] != want[i] {
			t.Errorf("request %d Authorization = %q, want %q", i, gotAuth[i], want[i])
		}
	}
}

func TestVerifyOTPPersistsSession(t *testing.T) {
	client, store := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.TokenResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			ExpiresIn:    86400,
			User:         &models.User{ID: "u1", Phone: "+9779841000000", Role: models.RoleCitizen},
		})
	}))

	resp, err := client.VerifyOTP(context.Background(), "+9779841000000", "123456")
	if err != nil {
		t.Fatalf("VerifyOTP: %v", err)
	}
	if resp.AccessToken != "access-1" {
		t.Errorf("access token = %s", resp.AccessToken)
	}

	if store.Get(KeyAccessToken) != "access-1" {
		t.Error("access token not persisted")
	}
	if store.Get(KeyRefreshToken) != "refresh-1" {
		t.Error("refresh token not persisted")
	}
	if user := client.StoredUser(); user == nil || user.ID != "u1" {
		t.Errorf("stored user = %v", user)
	}
	if !client.IsAuthenticated() {
		t.Error("client should be authenticated after VerifyOTP")
	}
}

func TestRefreshWithoutTokenFails(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("refresh must not hit the network without a stored token")
	}))

	_, err := client.Refresh(context.Background())
	apiErr, ok := AsAPIError(err)
	if !ok || apiErr.Code != CodeNoRefreshToken {
		t.Errorf("expected NO_REFRESH_TOKEN, got %v", err)
	}
}

func TestLogoutClearsEverything(t *testing.T) {
	store := NewMemoryTokenStore()
	store.Set(KeyAccessToken, "a")
	store.Set(KeyRefreshToken, "r")
	store.Set(KeyUser, `{"id":"u1"}`)

	client := New(Config{BaseURL: "http://localhost"}, store)
	if !client.IsAuthenticated() {
		t.Fatal("client should prime its token from the store")
	}

	client.Logout()
	if client.IsAuthenticated() || store.Get(KeyAccessToken) != "" ||
		store.Get(KeyRefreshToken) != "" || store.Get(KeyUser) != "" {
		t.Error("logout left session state behind")
	}
}

func TestFileTokenStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := NewFileTokenStore(path)
	if err != nil {
		t.Fatalf("NewFileTokenStore: %v", err)
	}
	store.Set(KeyAccessToken, "tok")
	store.Set(KeyUser, `{"id":"u1"}`)
	store.Set(KeyUser, "") // empty value clears the key

	reopened, err := NewFileTokenStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if reopened.Get(KeyAccessToken) != "tok" {
		t.Error("access token did not survive reopen")
	}
	if reopened.Get(KeyUser) != "" {
		t.Error("cleared key came back after reopen")
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("store file missing: %v", err)
	}
}
