// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package provider

import (
	"context"
	"fmt"

	"github.com/chautari-app/chautari/dataset"
	"github.com/chautari-app/chautari/eventquery"
	"github.com/chautari-app/chautari/geo"
	"github.com/chautari-app/chautari/models"
)

// Static serves everything from the bundled dataset, entirely in
// process. The dataset is read-only: nothing, including RSVP, mutates
// it.
type Static struct {
	data     *dataset.Dataset
	contains geo.ContainsFunc
}

// StaticOption customizes a Static provider.
type StaticOption func(*Static)

// WithContainsFunc swaps the constituency containment test. The default
// is the bounding-box approximation geo.PointInBounds.
func WithContainsFunc(f geo.ContainsFunc) StaticOption {
	return func(s *Static) { s.contains = f }
}

func NewStatic(ds *dataset.Dataset, opts ...StaticOption) *Static {
	s := &Static{data: ds, contains: geo.PointInBounds}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// enrich joins an event summary with its reference data. Dangling
// foreign keys resolve to nil.
func (s *Static) enrich(ev models.Event) models.EventDetail {
	detail := models.EventDetail{Event: ev}
	if ev.PartyID != "" {
		detail.Party = s.data.Party(ev.PartyID)
	}
	if ev.ConstituencyID != "" {
		detail.Constituency = s.data.Constituency(ev.ConstituencyID)
	}
	return detail
}

func (s *Static) enrichAll() []models.EventDetail {
	out := make([]models.EventDetail, len(s.data.Events))
	for i, ev := range s.data.Events {
		out[i] = s.enrich(ev)
	}
	return out
}

func (s *Static) ListEvents(_ context.Context, filters models.EventFilters) (*models.EventPage, error) {
	filtered := eventquery.Filter(s.enrichAll(), filters)
	sorted := eventquery.Sort(filtered, filters.Sort)
	page, pagination := eventquery.Paginate(sorted, filters.Page, filters.PerPage)

	return &models.EventPage{Data: page, Pagination: pagination}, nil
}

func (s *Static) NearbyEvents(_ context.Context, q models.NearbyQuery) (*models.NearbyResult, error) {
	radius := q.RadiusMeters
	if radius <= 0 {
		radius = eventquery.DefaultRadiusMeters
	}

	return &models.NearbyResult{
		Data:         eventquery.Nearby(s.enrichAll(), q),
		Center:       models.NearbyCenter{Lat: q.Lat, Lng: q.Lng},
		RadiusMeters: radius,
	}, nil
}

func (s *Static) GetEvent(_ context.Context, id string) (*models.EventDetail, error) {
	ev := s.data.Event(id)
	if ev == nil {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}
	detail := s.enrich(*ev)
	return &detail, nil
}

// RSVP in static mode is a non-persistent simulation: it returns a
// locally incremented projection and leaves the dataset untouched. The
// result is tagged Simulated so callers never mistake it for confirmed
// server state.
func (s *Static) RSVP(_ context.Context, id, status string) (*RSVPResult, error) {
	if status == "" {
		status = models.RSVPGoing
	}

	ev := s.data.Event(id)
	if ev == nil {
		return nil, fmt.Errorf("event %s: %w", id, ErrNotFound)
	}

	detail := s.enrich(*ev)
	detail.RSVPCount++
	detail.UserRSVP = status
	return &RSVPResult{Event: detail, Simulated: true}, nil
}

func (s *Static) ListParties(_ context.Context) ([]models.Party, error) {
	out := make([]models.Party, len(s.data.Parties))
	copy(out, s.data.Parties)
	return out, nil
}

func (s *Static) GetParty(_ context.Context, id string) (*models.Party, error) {
	p := s.data.Party(id)
	if p == nil {
		return nil, fmt.Errorf("party %s: %w", id, ErrNotFound)
	}
	party := *p
	return &party, nil
}

func (s *Static) ListConstituencies(_ context.Context, filters models.ConstituencyFilters) ([]models.Constituency, error) {
	out := make([]models.Constituency, 0, len(s.data.Constituencies))
	for _, c := range s.data.Constituencies {
		if filters.Province != "" && c.Province != filters.Province {
			continue
		}
		if filters.District != "" && c.District != filters.District {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (s *Static) GetConstituency(_ context.Context, id string) (*models.Constituency, error) {
	c := s.data.Constituency(id)
	if c == nil {
		return nil, fmt.Errorf("constituency %s: %w", id, ErrNotFound)
	}
	constituency := *c
	return &constituency, nil
}

// DetectConstituency returns the first constituency, in stored order,
// whose bounds contain the point, or (nil, nil) when none match.
func (s *Static) DetectConstituency(_ context.Context, lat, lng float64) (*models.Constituency, error) {
	pt := geo.Point{Lat: lat, Lng: lng}
	for i := range s.data.Constituencies {
		if s.contains(pt, s.data.Constituencies[i].Bounds) {
			c := s.data.Constituencies[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *Static) EventTypes(_ context.Context) (map[string]models.EventTypeInfo, error) {
	out := make(map[string]models.EventTypeInfo, len(s.data.EventTypes))
	for k, v := range s.data.EventTypes {
		out[k] = v
	}
	return out, nil
}
