// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package eventquery

import (
	"math"
	"slices"
	"sort"
	"strings"

	"github.com/chautari-app/chautari/geo"
	"github.com/chautari-app/chautari/models"
)

// Listing defaults and limits, shared by the static provider and the
// server so both modes paginate identically.
const (
	DefaultPerPage      = 20
	MaxPerPage          = 100
	DefaultRadiusMeters = 5000
)

// Filter applies the filter set to events: equality filters, then the
// inclusive date range, then tags contains-any, then free-text search.
// All other filters apply before search.
func Filter(events []models.EventDetail, f models.EventFilters) []models.EventDetail {
	out := make([]models.EventDetail, 0, len(events))
	for _, ev := range events {
		if f.ConstituencyID != "" && ev.ConstituencyID != f.ConstituencyID {
			continue
		}
		if f.PartyID != "" && ev.PartyID != f.PartyID {
			continue
		}
		if f.EventType != "" && ev.Type != f.EventType {
			continue
		}
		if f.Status != "" && ev.Status != f.Status {
			continue
		}
		if f.DateFrom != nil && ev.Datetime.Before(*f.DateFrom) {
			continue
		}
		if f.DateTo != nil && ev.Datetime.After(*f.DateTo) {
			continue
		}
		if len(f.Tags) > 0 && !hasAnyTag(ev.Tags, f.Tags) {
			continue
		}
		if f.Search != "" && !matchesSearch(ev, f.Search) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func hasAnyTag(eventTags, wanted []string) bool {
	for _, tag := range wanted {
		if slices.Contains(eventTags, tag) {
			return true
		}
	}
	return false
}

// matchesSearch does a case-insensitive substring match over the fixed
// concatenation of title, localized title, description, venue name, and
// venue address.
func matchesSearch(ev models.EventDetail, query string) bool {
	fields := []string{ev.Title, ev.TitleNepali, ev.Description}
	if ev.Venue != nil {
		fields = append(fields, ev.Venue.Name, ev.Venue.Address)
	}
	haystack := strings.ToLower(strings.Join(fields, " "))
	return strings.Contains(haystack, strings.ToLower(query))
}

// Sort orders events by the given sort key, stably. Unknown or empty
// keys fall back to datetime ascending.
func Sort(events []models.EventDetail, key string) []models.EventDetail {
	sorted := make([]models.EventDetail, len(events))
	copy(sorted, events)

	switch key {
	case models.SortDatetimeDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Datetime.After(sorted[j].Datetime)
		})
	case models.SortRSVPCount:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RSVPCount < sorted[j].RSVPCount
		})
	case models.SortRSVPCountDesc:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].RSVPCount > sorted[j].RSVPCount
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Datetime.Before(sorted[j].Datetime)
		})
	}
	return sorted
}

// Paginate slices out one 1-indexed page and describes it. Out-of-range
// pages return an empty slice with correct totals.
func Paginate(events []models.EventDetail, page, perPage int) ([]models.EventDetail, models.Pagination) {
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	total := len(events)
	totalPages := int(math.Ceil(float64(total) / float64(perPage)))

	start := (page - 1) * perPage
	if start > total {
		start = total
	}
	end := start + perPage
	if end > total {
		end = total
	}

	return events[start:end], models.Pagination{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Nearby computes the distance from the query point to every event venue,
// keeps events within the radius, sorts ascending by distance, and
// truncates to per_page after the radius filter and sort. Events with no
// resolvable coordinate are treated as infinitely far: excluded by any
// finite radius.
func Nearby(events []models.EventDetail, q models.NearbyQuery) []models.NearbyEvent {
	radius := q.RadiusMeters
	if radius <= 0 {
		radius = DefaultRadiusMeters
	}
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	if perPage > MaxPerPage {
		perPage = MaxPerPage
	}

	center := geo.Point{Lat: q.Lat, Lng: q.Lng}

	within := make([]models.NearbyEvent, 0, len(events))
	for _, ev := range events {
		pt := ev.Coordinates()
		if pt == nil {
			continue
		}
		d := geo.Distance(center, *pt)
		if d > radius {
			continue
		}
		within = append(within, models.NearbyEvent{EventDetail: ev, DistanceMeters: d})
	}

	sort.SliceStable(within, func(i, j int) bool {
		return within[i].DistanceMeters < within[j].DistanceMeters
	})

	if len(within) > perPage {
		within = within[:perPage]
	}
	return within
}
