// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/chautari-app/chautari/geo"
	"github.com/chautari-app/chautari/models"
)

// eventSelect is the one event projection every endpoint reads. The
// rsvp_count is derived from going rows on every read; there is no
// stored counter to drift.
const eventSelect = `
	SELECT e.id, e.title, e.title_nepali, e.type, e.status, e.description,
	       e.datetime, e.end_time,
	       e.venue_name, e.venue_address, e.venue_lat, e.venue_lng,
	       e.party_id, e.constituency_id, e.speakers, e.tags,
	       e.expected_attendance,
	       (SELECT COUNT(*) FROM rsvp WHERE event_id = e.id AND status = 'going') AS rsvp_count
	FROM event e
`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(row rowScanner) (models.Event, error) {
	var (
		ev           models.Event
		titleNepali  sql.NullString
		description  sql.NullString
		endTime      sql.NullTime
		venueName    sql.NullString
		venueAddress sql.NullString
		venueLat     sql.NullFloat64
		venueLng     sql.NullFloat64
		partyID      sql.NullString
		constID      sql.NullString
		speakers     sql.NullString
		tags         sql.NullString
	)

	err := row.Scan(&ev.ID, &ev.Title, &titleNepali, &ev.Type, &ev.Status, &description,
		&ev.Datetime, &endTime,
		&venueName, &venueAddress, &venueLat, &venueLng,
		&partyID, &constID, &speakers, &tags,
		&ev.ExpectedAttendance, &ev.RSVPCount)
	if err != nil {
		return models.Event{}, err
	}

	ev.TitleNepali = titleNepali.String
	ev.Description = description.String
	if endTime.Valid {
		t := endTime.Time
		ev.EndTime = &t
	}
	if venueName.Valid || venueAddress.Valid {
		venue := &models.Venue{Name: venueName.String, Address: venueAddress.String}
		if venueLat.Valid && venueLng.Valid {
			venue.Coordinates = &geo.Point{Lat: venueLat.Float64, Lng: venueLng.Float64}
		}
		ev.Venue = venue
	}
	ev.PartyID = partyID.String
	ev.ConstituencyID = constID.String

	if speakers.Valid && speakers.String != "" {
		if err := json.Unmarshal([]byte(speakers.String), &ev.Speakers); err != nil {
			return models.Event{}, fmt.Errorf("bad speakers payload for %s: %w", ev.ID, err)
		}
	}
	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &ev.Tags); err != nil {
			return models.Event{}, fmt.Errorf("bad tags payload for %s: %w", ev.ID, err)
		}
	}

	return ev, nil
}

func scanParty(row rowScanner) (models.Party, error) {
	var (
		p          models.Party
		nameNepali sql.NullString
		color      sql.NullString
		leader     sql.NullString
		logoURL    sql.NullString
	)
	err := row.Scan(&p.ID, &p.Name, &nameNepali, &p.ShortName, &color, &leader, &logoURL)
	if err != nil {
		return models.Party{}, err
	}
	p.NameNepali = nameNepali.String
	p.Color = color.String
	p.Leader = leader.String
	p.LogoURL = logoURL.String
	return p, nil
}

func scanConstituency(row rowScanner) (models.Constituency, error) {
	var (
		c          models.Constituency
		nameNepali sql.NullString
		ctype      sql.NullString
		centerLat  sql.NullFloat64
		centerLng  sql.NullFloat64
		bounds     sql.NullString
	)
	err := row.Scan(&c.ID, &c.Name, &nameNepali, &c.Province, &c.District, &ctype,
		&c.RegisteredVoters, &centerLat, &centerLng, &bounds)
	if err != nil {
		return models.Constituency{}, err
	}
	c.NameNepali = nameNepali.String
	c.Type = ctype.String
	if centerLat.Valid && centerLng.Valid {
		c.Center = &geo.Point{Lat: centerLat.Float64, Lng: centerLng.Float64}
	}
	if bounds.Valid && bounds.String != "" {
		if err := json.Unmarshal([]byte(bounds.String), &c.Bounds); err != nil {
			return models.Constituency{}, fmt.Errorf("bad bounds payload for %s: %w", c.ID, err)
		}
	}
	return c, nil
}

const partySelect = `SELECT id, name, name_nepali, short_name, color, leader, logo_url FROM party`

const constituencySelect = `
	SELECT id, name, name_nepali, province, district, type,
	       registered_voters, center_lat, center_lng, bounds
	FROM constituency
`

func loadParties(db *sql.DB) (map[string]models.Party, error) {
	rows, err := db.Query(partySelect)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]models.Party)
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		out[p.ID] = p
	}
	return out, rows.Err()
}

func loadConstituencies(db *sql.DB) (map[string]models.Constituency, error) {
	rows, err := db.Query(constituencySelect)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]models.Constituency)
	for rows.Next() {
		c, err := scanConstituency(rows)
		if err != nil {
			return nil, err
		}
		out[c.ID] = c
	}
	return out, rows.Err()
}

// userRSVPStatuses maps event ID to the user's RSVP status. Empty map
// for the anonymous case.
func userRSVPStatuses(db *sql.DB, userID string) (map[string]string, error) {
	out := make(map[string]string)
	if userID == "" {
		return out, nil
	}

	rows, err := db.Query(`SELECT event_id, status FROM rsvp WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var eventID, status string
		if err := rows.Scan(&eventID, &status); err != nil {
			return nil, err
		}
		out[eventID] = status
	}
	return out, rows.Err()
}

// loadEventDetails reads every event fully joined, with the user's RSVP
// status applied when userID is set. The event table is small enough
// that endpoint semantics (filter, sort, paginate, nearby) run over the
// loaded slice with the same code the static provider uses, which is
// what keeps the two modes behaviorally identical.
func loadEventDetails(db *sql.DB, userID string) ([]models.EventDetail, error) {
	parties, err := loadParties(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load parties: %w", err)
	}
	constituencies, err := loadConstituencies(db)
	if err != nil {
		return nil, fmt.Errorf("failed to load constituencies: %w", err)
	}
	rsvps, err := userRSVPStatuses(db, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load rsvps: %w", err)
	}

	rows, err := db.Query(eventSelect + ` ORDER BY e.datetime`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var out []models.EventDetail
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		ev.UserRSVP = rsvps[ev.ID]
		out = append(out, joinEvent(ev, parties, constituencies))
	}
	return out, rows.Err()
}

// loadEventDetail reads one event fully joined, or sql.ErrNoRows.
func loadEventDetail(db *sql.DB, eventID, userID string) (models.EventDetail, error) {
	ev, err := scanEvent(db.QueryRow(eventSelect+` WHERE e.id = $1`, eventID))
	if err != nil {
		return models.EventDetail{}, err
	}

	if userID != "" {
		var status string
		err := db.QueryRow(`SELECT status FROM rsvp WHERE user_id = $1 AND event_id = $2`,
			userID, eventID).Scan(&status)
		if err == nil {
			ev.UserRSVP = status
		} else if err != sql.ErrNoRows {
			return models.EventDetail{}, err
		}
	}

	parties, err := loadParties(db)
	if err != nil {
		return models.EventDetail{}, err
	}
	constituencies, err := loadConstituencies(db)
	if err != nil {
		return models.EventDetail{}, err
	}
	return joinEvent(ev, parties, constituencies), nil
}

func joinEvent(ev models.Event, parties map[string]models.Party, constituencies map[string]models.Constituency) models.EventDetail {
	detail := models.EventDetail{Event: ev}
	if p, ok := parties[ev.PartyID]; ok {
		party := p
		detail.Party = &party
	}
	if c, ok := constituencies[ev.ConstituencyID]; ok {
		constituency := c
		detail.Constituency = &constituency
	}
	return detail
}
