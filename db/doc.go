// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation and seeding.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Portability

One schema runs on both postgres (production, lib/pq) and sqlite
(development and tests, modernc.org/sqlite):

  - $n placeholders, valid in both drivers
  - timestamps supplied from Go, never NOW()
  - JSON payloads (constituency bounds, event speakers and tags) in TEXT

# Tables

  - party: political-party reference data
  - constituency: electoral districts with boundary rings
  - event: campaign events with venue and schedule
  - app_user: citizens created on first OTP verification
  - rsvp: one row per (user, event), upserted on conflict

# Derived Counts

There is no rsvp_count column. The count is always derived by a subquery
over going RSVP rows, so it can never drift from the rows themselves.

# Seeding

Seed loads the bundled dataset into an empty database; Seeded checks
whether that already happened. Dataset rsvp counts materialize as real
user and rsvp rows, keeping the derived-count rule intact.
*/
package db
