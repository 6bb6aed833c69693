// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package eventview

import (
	"testing"
	"time"

	"github.com/chautari-app/chautari/models"
)

func at(day, hour int) time.Time {
	return time.Date(2026, time.September, day, hour, 0, 0, 0, time.UTC)
}

func fixture() []models.EventDetail {
	return []models.EventDetail{
		{Event: models.Event{ID: "a", Type: models.TypeRally, Datetime: at(3, 15)}},
		{Event: models.Event{ID: "b", Type: models.TypeTownhall, Datetime: at(1, 10)}},
		{Event: models.Event{ID: "c", Type: models.TypeRally, Datetime: at(1, 17)}},
		{Event: models.Event{ID: "d", Type: models.TypeMarch, Datetime: at(12, 9)}},
	}
}

func TestFilteredAppliesFiltersAndSort(t *testing.T) {
	out := Filtered(fixture(), models.EventFilters{EventType: models.TypeRally})

	if len(out) != 2 {
		t.Fatalf("got %d events, want 2", len(out))
	}
	if out[0].ID != "c" || out[1].ID != "a" {
		t.Errorf("order = %s, %s; want c, a", out[0].ID, out[1].ID)
	}
}

func TestGroupByDay(t *testing.T) {
	groups := GroupByDay(fixture())

	if len(groups) != 3 {
		t.Fatalf("got %d groups, want 3", len(groups))
	}
	for i := 1; i < len(groups); i++ {
		if !groups[i-1].Day.Before(groups[i].Day) {
			t.Errorf("groups not ascending at index %d", i)
		}
	}

	// Sept 1 holds b (10:00) then c (17:00).
	first := groups[0]
	if !first.Day.Equal(at(1, 0)) {
		t.Errorf("first day = %v", first.Day)
	}
	if len(first.Events) != 2 || first.Events[0].ID != "b" || first.Events[1].ID != "c" {
		t.Errorf("first day events = %+v", first.Events)
	}
}

func TestGroupByDayEmpty(t *testing.T) {
	if groups := GroupByDay(nil); len(groups) != 0 {
		t.Errorf("empty input produced %d groups", len(groups))
	}
}

func TestUpcomingWindow(t *testing.T) {
	now := at(1, 12)
	out := Upcoming(fixture(), now)

	// b is in the past by two hours, d is eleven days out; c and a are
	// inside [now, now+7d].
	if len(out) != 2 {
		t.Fatalf("got %d upcoming, want 2: %+v", len(out), out)
	}
	if out[0].ID != "c" || out[1].ID != "a" {
		t.Errorf("upcoming order = %s, %s; want c, a", out[0].ID, out[1].ID)
	}
}

func TestUpcomingBoundaryInclusive(t *testing.T) {
	now := at(1, 12)
	edge := []models.EventDetail{
		{Event: models.Event{ID: "now", Datetime: now}},
		{Event: models.Event{ID: "edge", Datetime: now.Add(UpcomingWindow)}},
		{Event: models.Event{ID: "past", Datetime: now.Add(-time.Second)}},
		{Event: models.Event{ID: "late", Datetime: now.Add(UpcomingWindow + time.Second)}},
	}

	out := Upcoming(edge, now)
	if len(out) != 2 || out[0].ID != "now" || out[1].ID != "edge" {
		t.Errorf("window must include both endpoints, got %+v", out)
	}
}

func TestLabels(t *testing.T) {
	end := at(3, 17)
	ev := models.Event{
		Datetime:           at(3, 15),
		EndTime:            &end,
		RSVPCount:          1234,
		ExpectedAttendance: 5000,
	}

	if got := TimeLabel(ev); got != "3:00 PM - 5:00 PM" {
		t.Errorf("TimeLabel = %q", got)
	}
	ev.EndTime = nil
	if got := TimeLabel(ev); got != "3:00 PM" {
		t.Errorf("TimeLabel without end = %q", got)
	}

	if got := AttendanceLabel(ev); got != "1,234 going of 5,000 expected" {
		t.Errorf("AttendanceLabel = %q", got)
	}
	ev.ExpectedAttendance = 0
	if got := AttendanceLabel(ev); got != "1,234 going" {
		t.Errorf("AttendanceLabel without expectation = %q", got)
	}

	if got := DayLabel(at(3, 0)); got != "Thursday, Sep 3" {
		t.Errorf("DayLabel = %q", got)
	}

	if got := DistanceLabel(850); got != "850 m away" {
		t.Errorf("DistanceLabel = %q", got)
	}
	if got := DistanceLabel(2300); got != "2.3 km away" {
		t.Errorf("DistanceLabel = %q", got)
	}
}
