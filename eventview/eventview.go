// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package eventview

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/chautari-app/chautari/eventquery"
	"github.com/chautari-app/chautari/models"
)

// UpcomingWindow is how far ahead the upcoming subview looks.
const UpcomingWindow = 7 * 24 * time.Hour

// DayGroup is one calendar day's worth of events, ordered by time.
type DayGroup struct {
	Day    time.Time
	Events []models.EventDetail
}

// Filtered applies the active filter set and its sort key to the loaded
// events. Pure: recomputed from inputs on every call, pagination does
// not apply to the in-memory view.
func Filtered(events []models.EventDetail, filters models.EventFilters) []models.EventDetail {
	return eventquery.Sort(eventquery.Filter(events, filters), filters.Sort)
}

// GroupByDay buckets events by calendar day, ascending, with each
// bucket's events ascending by time. Grouping is stable over the input
// order for events at the same instant.
func GroupByDay(events []models.EventDetail) []DayGroup {
	sorted := eventquery.Sort(events, models.SortDatetime)

	var groups []DayGroup
	for _, ev := range sorted {
		day := startOfDay(ev.Datetime)
		if n := len(groups); n > 0 && groups[n-1].Day.Equal(day) {
			groups[n-1].Events = append(groups[n-1].Events, ev)
			continue
		}
		groups = append(groups, DayGroup{Day: day, Events: []models.EventDetail{ev}})
	}
	return groups
}

// Upcoming keeps events in the window [now, now+7d], ascending by time.
func Upcoming(events []models.EventDetail, now time.Time) []models.EventDetail {
	end := now.Add(UpcomingWindow)

	var out []models.EventDetail
	for _, ev := range eventquery.Sort(events, models.SortDatetime) {
		if ev.Datetime.Before(now) || ev.Datetime.After(end) {
			continue
		}
		out = append(out, ev)
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

// Display labels

// DayLabel renders a group's day for section headers, e.g.
// "Monday, Jan 2".
func DayLabel(day time.Time) string {
	return day.Format("Monday, Jan 2")
}

// TimeLabel renders an event's start (and end, when known) for cards,
// e.g. "3:00 PM" or "3:00 PM - 5:00 PM".
func TimeLabel(ev models.Event) string {
	start := ev.Datetime.Format("3:04 PM")
	if ev.EndTime == nil {
		return start
	}
	return start + " - " + ev.EndTime.Format("3:04 PM")
}

// RelativeLabel renders how far away an event is from now, e.g.
// "2 days from now" or "3 hours ago".
func RelativeLabel(ev models.Event, now time.Time) string {
	return humanize.RelTime(ev.Datetime, now, "ago", "from now")
}

// AttendanceLabel summarizes turnout, e.g. "1,234 going" or
// "12 going of 5,000 expected".
func AttendanceLabel(ev models.Event) string {
	going := humanize.Comma(int64(ev.RSVPCount))
	if ev.ExpectedAttendance <= 0 {
		return going + " going"
	}
	return fmt.Sprintf("%s going of %s expected", going, humanize.Comma(int64(ev.ExpectedAttendance)))
}

// DistanceLabel renders a nearby result's distance, e.g. "850 m away"
// or "2.3 km away".
func DistanceLabel(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%.0f m away", meters)
	}
	return fmt.Sprintf("%.1f km away", meters/1000)
}
