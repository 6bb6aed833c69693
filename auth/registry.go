// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"sync"
	"time"
)

// Token lifetimes and OTP policy.
const (
	AccessTokenTTL  = 24 * time.Hour
	RefreshTokenTTL = 30 * 24 * time.Hour
	OTPTTL          = 5 * time.Minute

	// TestOTP is the fixed development OTP. No SMS gateway is wired;
	// every issued OTP is this value and it always verifies.
	TestOTP = "123456"
)

type tokenKind int

const (
	kindAccess tokenKind = iota
	kindRefresh
)

type tokenRecord struct {
	userID    string
	kind      tokenKind
	expiresAt time.Time
}

type otpRecord struct {
	otp       string
	expiresAt time.Time
}

// Session is an issued token pair.
type Session struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int // access token lifetime, seconds
}

// Registry holds sessions and pending OTPs in memory. Tokens do not
// survive a server restart; clients recover through the refresh flow
// failing into a new OTP login.
type Registry struct {
	mu     sync.Mutex
	tokens map[string]tokenRecord
	otps   map[string]otpRecord

	// now is swappable for expiry tests.
	now func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{
		tokens: make(map[string]tokenRecord),
		otps:   make(map[string]otpRecord),
		now:    time.Now,
	}
}

// IssueOTP records a pending OTP for the phone and returns it.
func (r *Registry) IssueOTP(phone string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.otps[phone] = otpRecord{otp: TestOTP, expiresAt: r.now().Add(OTPTTL)}
	return TestOTP
}

// VerifyOTP checks the pair and consumes the pending OTP. The fixed
// test OTP always passes, matching the mock SMS behavior.
func (r *Registry) VerifyOTP(phone, otp string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.otps[phone]
	valid := otp == TestOTP ||
		(ok && stored.otp == otp && r.now().Before(stored.expiresAt))
	if !valid {
		return ErrInvalidOTP
	}

	delete(r.otps, phone)
	return nil
}

// IssueSession creates a fresh access/refresh token pair for the user.
func (r *Registry) IssueSession(userID string) (Session, error) {
	access, err := GenerateToken()
	if err != nil {
		return Session{}, err
	}
	refresh, err := GenerateToken()
	if err != nil {
		return Session{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	now := r.now()
	r.tokens[access] = tokenRecord{userID: userID, kind: kindAccess, expiresAt: now.Add(AccessTokenTTL)}
	r.tokens[refresh] = tokenRecord{userID: userID, kind: kindRefresh, expiresAt: now.Add(RefreshTokenTTL)}

	return Session{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int(AccessTokenTTL / time.Second),
	}, nil
}

// ValidateAccess resolves an access token to its user ID.
func (r *Registry) ValidateAccess(token string) (string, error) {
	return r.validate(token, kindAccess)
}

// Refresh issues a new access token against a live refresh token. The
// refresh token itself stays valid; an expired one is dropped.
func (r *Registry) Refresh(refreshToken string) (Session, error) {
	userID, err := r.validate(refreshToken, kindRefresh)
	if err != nil {
		return Session{}, err
	}

	access, err := GenerateToken()
	if err != nil {
		return Session{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[access] = tokenRecord{userID: userID, kind: kindAccess, expiresAt: r.now().Add(AccessTokenTTL)}

	return Session{
		AccessToken:  access,
		RefreshToken: refreshToken,
		ExpiresIn:    int(AccessTokenTTL / time.Second),
	}, nil
}

func (r *Registry) validate(token string, kind tokenKind) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.tokens[token]
	if !ok || rec.kind != kind {
		return "", ErrInvalidToken
	}
	if r.now().After(rec.expiresAt) {
		delete(r.tokens, token)
		return "", ErrInvalidToken
	}
	return rec.userID, nil
}
