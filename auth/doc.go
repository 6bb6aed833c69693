// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides OTP login, session tokens, and identity derivation.

# Login flow

Phone-number OTP is the sole credential. No SMS gateway is wired: every
issued OTP is the fixed TestOTP ("123456"), which always verifies. The
flow is request-otp, verify-otp, then bearer tokens:

	otp := registry.IssueOTP(phone)
	err := registry.VerifyOTP(phone, otp)
	sess, err := registry.IssueSession(auth.GenerateUserID(phone))

# User identity

User IDs derive deterministically from the phone number
(first 16 hex chars of SHA-256), so verifying an OTP for a known phone
resolves to the existing user rather than creating a duplicate:

	userID := auth.GenerateUserID(phone)

# Sessions

The Registry holds tokens in memory. Access tokens live 24 hours,
refresh tokens 30 days; Refresh rotates the access token and keeps the
refresh token. A restart drops all sessions, which clients recover from
by logging in again.

	userID, err := registry.ValidateAccess(bearerToken)
	sess, err := registry.Refresh(refreshToken)

# Tokens and IDs

Bearer tokens are random 24-byte (192-bit) secrets, URL-safe base64
without padding. Random hex IDs for database records:

	id, err := auth.GenerateID(16)  // 32 hex characters
*/
package auth
