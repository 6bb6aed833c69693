// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The schema is deliberately portable across postgres and sqlite:
// $n placeholders, no server-side clock defaults (timestamps come from
// Go), and JSON payloads stored as TEXT.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Parties
CREATE TABLE IF NOT EXISTS party (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    name_nepali TEXT,
    short_name TEXT NOT NULL,
    color TEXT,
    leader TEXT,
    logo_url TEXT
);

-- Constituencies
CREATE TABLE IF NOT EXISTS constituency (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    name_nepali TEXT,
    province TEXT NOT NULL,
    district TEXT NOT NULL,
    type TEXT,
    registered_voters INTEGER NOT NULL DEFAULT 0,
    center_lat REAL,
    center_lng REAL,
    bounds TEXT
);

CREATE INDEX IF NOT EXISTS idx_constituency_province ON constituency(province);
CREATE INDEX IF NOT EXISTS idx_constituency_district ON constituency(district);

-- Events
CREATE TABLE IF NOT EXISTS event (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    title_nepali TEXT,
    type TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'confirmed' CHECK (status IN ('draft', 'confirmed', 'cancelled', 'completed')),
    description TEXT,
    datetime TIMESTAMP NOT NULL,
    end_time TIMESTAMP,
    venue_name TEXT,
    venue_address TEXT,
    venue_lat REAL,
    venue_lng REAL,
    party_id TEXT REFERENCES party(id),
    constituency_id TEXT REFERENCES constituency(id),
    speakers TEXT,
    tags TEXT,
    expected_attendance INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_event_datetime ON event(datetime);
CREATE INDEX IF NOT EXISTS idx_event_status ON event(status);
CREATE INDEX IF NOT EXISTS idx_event_party_id ON event(party_id);
CREATE INDEX IF NOT EXISTS idx_event_constituency_id ON event(constituency_id);

-- Users ("user" is reserved in postgres)
CREATE TABLE IF NOT EXISTS app_user (
    id TEXT PRIMARY KEY,
    phone TEXT NOT NULL UNIQUE,
    name TEXT,
    role TEXT NOT NULL DEFAULT 'citizen' CHECK (role IN ('citizen', 'party_admin', 'super_admin')),
    constituency_id TEXT REFERENCES constituency(id),
    created_at TIMESTAMP NOT NULL
);

-- RSVPs. The UNIQUE constraint is the idempotence guarantee: one row
-- per (user, event), upserted on conflict.
CREATE TABLE IF NOT EXISTS rsvp (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL REFERENCES app_user(id) ON DELETE CASCADE,
    event_id TEXT NOT NULL REFERENCES event(id) ON DELETE CASCADE,
    status TEXT NOT NULL CHECK (status IN ('going', 'interested', 'not_going')),
    created_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL,
    UNIQUE (user_id, event_id)
);

CREATE INDEX IF NOT EXISTS idx_rsvp_event_id ON rsvp(event_id);
CREATE INDEX IF NOT EXISTS idx_rsvp_user_id ON rsvp(user_id);
`
