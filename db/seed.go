// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chautari-app/chautari/dataset"
)

// Seeded reports whether reference data has already been loaded.
func Seeded(db *sql.DB) (bool, error) {
	var n int
	if err := db.QueryRow(`SELECT COUNT(*) FROM event`).Scan(&n); err != nil {
		return false, fmt.Errorf("failed to count events: %w", err)
	}
	return n > 0, nil
}

// Seed loads the bundled dataset into an empty database: parties and
// constituencies first, then events referencing them. Callers check
// Seeded first; Seed itself assumes empty tables.
func Seed(db *sql.DB, ds *dataset.Dataset) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback()

	for _, p := range ds.Parties {
		_, err := tx.Exec(`
			INSERT INTO party (id, name, name_nepali, short_name, color, leader, logo_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			p.ID, p.Name, p.NameNepali, p.ShortName, p.Color, p.Leader, p.LogoURL)
		if err != nil {
			return fmt.Errorf("failed to seed party %s: %w", p.ID, err)
		}
	}

	for _, c := range ds.Constituencies {
		bounds, err := json.Marshal(c.Bounds)
		if err != nil {
			return fmt.Errorf("failed to encode bounds for %s: %w", c.ID, err)
		}

		var centerLat, centerLng any
		if c.Center != nil {
			centerLat, centerLng = c.Center.Lat, c.Center.Lng
		}

		_, err = tx.Exec(`
			INSERT INTO constituency (id, name, name_nepali, province, district, type, registered_voters, center_lat, center_lng, bounds)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			c.ID, c.Name, c.NameNepali, c.Province, c.District, c.Type,
			c.RegisteredVoters, centerLat, centerLng, string(bounds))
		if err != nil {
			return fmt.Errorf("failed to seed constituency %s: %w", c.ID, err)
		}
	}

	now := time.Now().UTC()
	for _, ev := range ds.Events {
		speakers, err := json.Marshal(ev.Speakers)
		if err != nil {
			return fmt.Errorf("failed to encode speakers for %s: %w", ev.ID, err)
		}
		tags, err := json.Marshal(ev.Tags)
		if err != nil {
			return fmt.Errorf("failed to encode tags for %s: %w", ev.ID, err)
		}

		var venueName, venueAddress any
		var venueLat, venueLng any
		if ev.Venue != nil {
			venueName, venueAddress = ev.Venue.Name, ev.Venue.Address
			if ev.Venue.Coordinates != nil {
				venueLat, venueLng = ev.Venue.Coordinates.Lat, ev.Venue.Coordinates.Lng
			}
		}

		var partyID, constituencyID any
		if ev.PartyID != "" {
			partyID = ev.PartyID
		}
		if ev.ConstituencyID != "" {
			constituencyID = ev.ConstituencyID
		}

		_, err = tx.Exec(`
			INSERT INTO event (id, title, title_nepali, type, status, description, datetime, end_time,
				venue_name, venue_address, venue_lat, venue_lng, party_id, constituency_id,
				speakers, tags, expected_attendance, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
			ev.ID, ev.Title, ev.TitleNepali, ev.Type, ev.Status, ev.Description,
			ev.Datetime.UTC(), nullableTime(ev.EndTime),
			venueName, venueAddress, venueLat, venueLng, partyID, constituencyID,
			string(speakers), string(tags), ev.ExpectedAttendance, now)
		if err != nil {
			return fmt.Errorf("failed to seed event %s: %w", ev.ID, err)
		}

		// The seed rsvp_count becomes real rows so counts stay derived,
		// never stored.
		for i := 0; i < ev.RSVPCount; i++ {
			userID := fmt.Sprintf("seed-%s-%03d", ev.ID, i)
			_, err := tx.Exec(`
				INSERT INTO app_user (id, phone, role, created_at)
				VALUES ($1, $2, 'citizen', $3)`,
				userID, fmt.Sprintf("+977-seed-%s-%03d", ev.ID, i), now)
			if err != nil {
				return fmt.Errorf("failed to seed user for %s: %w", ev.ID, err)
			}
			_, err = tx.Exec(`
				INSERT INTO rsvp (id, user_id, event_id, status, created_at, updated_at)
				VALUES ($1, $2, $3, 'going', $4, $5)`,
				fmt.Sprintf("seed-rsvp-%s-%03d", ev.ID, i), userID, ev.ID, now, now)
			if err != nil {
				return fmt.Errorf("failed to seed rsvp for %s: %w", ev.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit seed: %w", err)
	}
	return nil
}

func nullableTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}
