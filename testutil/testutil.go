// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package testutil provides shared helpers for handler and integration
// tests: an in-memory sqlite database with the full schema and seed
// data, request builders, and response assertions.
package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/chautari-app/chautari/auth"
	"github.com/chautari-app/chautari/cliparse"
	"github.com/chautari-app/chautari/dataset"
	"github.com/chautari-app/chautari/db"
)

var dbSeq atomic.Int64

// SetupTestDB creates a fresh in-memory database with the full schema.
// Each call gets its own database; nothing leaks between tests.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// A uniquely named shared-cache DB keeps the in-memory store alive
	// across pool connections without leaking between tests.
	name := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := sql.Open("sqlite", name)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single connection sidesteps shared-cache lock contention.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupSeededTestDB is SetupTestDB plus the bundled dataset.
func SetupSeededTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn := SetupTestDB(t)

	ds, err := dataset.Load()
	if err != nil {
		t.Fatalf("Failed to load dataset: %v", err)
	}
	if err := db.Seed(conn, ds); err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         5012,
		DatabaseURL:  "file::memory:",
		DatabaseType: "sqlite",
		Env:          cliparse.EnvDevelopment,
	}
}

// CreateTestUser inserts a user and returns its ID.
func CreateTestUser(t *testing.T, conn *sql.DB, phone string) string {
	t.Helper()

	userID := auth.GenerateUserID(phone)
	_, err := conn.Exec(`
		INSERT INTO app_user (id, phone, role, created_at)
		VALUES ($1, $2, 'citizen', $3)
	`, userID, phone, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// LoginTestUser creates the user and an authenticated session, and
// returns the user ID and access token.
func LoginTestUser(t *testing.T, conn *sql.DB, registry *auth.Registry, phone string) (userID, accessToken string) {
	t.Helper()

	userID = CreateTestUser(t, conn, phone)
	sess, err := registry.IssueSession(userID)
	if err != nil {
		t.Fatalf("Failed to issue test session: %v", err)
	}
	return userID, sess.AccessToken
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AuthHeader builds the bearer header map for MakeRequest.
func AuthHeader(accessToken string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + accessToken}
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
