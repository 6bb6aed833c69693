// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package appstate

import (
	"context"
	"log/slog"
	"sync"

	"github.com/chautari-app/chautari/geo"
	"github.com/chautari-app/chautari/models"
	"github.com/chautari-app/chautari/provider"
)

// Load phases. A store starts in PhaseLoading and moves to PhaseReady or
// PhaseError on the first Load; a failed load is terminal until the next
// full Load call.
const (
	PhaseLoading = "loading"
	PhaseReady   = "ready"
	PhaseError   = "error"
)

// State is an immutable snapshot of the store. Slices and maps are
// copies; callers may keep a snapshot across later store mutations.
type State struct {
	Phase   string
	LoadErr error

	Events         []models.EventDetail
	Parties        []models.Party
	Constituencies []models.Constituency
	EventTypes     map[string]models.EventTypeInfo

	Filters  models.EventFilters
	Selected *models.EventDetail

	UserLocation *geo.Point
	Detected     *models.Constituency
}

// Store is the single mutable state container behind the UI. All
// mutation goes through named actions; reads go through Snapshot. Every
// action applies its result in one locked transition, so observers never
// see partial updates.
type Store struct {
	provider provider.Provider
	logger   *slog.Logger

	mu    sync.Mutex
	state State

	// selectSeq guards against stale detail fetches: a resolution only
	// applies if no newer selection happened while it was in flight.
	selectSeq uint64
}

// New builds a store in PhaseLoading around the given provider. A nil
// logger discards.
func New(p provider.Provider, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Store{
		provider: p,
		logger:   logger,
		state:    State{Phase: PhaseLoading},
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyState(s.state)
}

func copyState(st State) State {
	out := st
	out.Events = append([]models.EventDetail(nil), st.Events...)
	out.Parties = append([]models.Party(nil), st.Parties...)
	out.Constituencies = append([]models.Constituency(nil), st.Constituencies...)
	if st.EventTypes != nil {
		out.EventTypes = make(map[string]models.EventTypeInfo, len(st.EventTypes))
		for k, v := range st.EventTypes {
			out.EventTypes[k] = v
		}
	}
	if st.Selected != nil {
		sel := *st.Selected
		out.Selected = &sel
	}
	if st.UserLocation != nil {
		loc := *st.UserLocation
		out.UserLocation = &loc
	}
	if st.Detected != nil {
		det := *st.Detected
		out.Detected = &det
	}
	return out
}

// Load performs the initial parallel fetch of events, parties,
// constituencies, and event-type metadata. It is all-or-nothing: if any
// fetch fails the store enters PhaseError with no partial data, and the
// caller retries with another full Load.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	s.state = State{Phase: PhaseLoading}
	s.selectSeq++
	s.mu.Unlock()

	var (
		wg   sync.WaitGroup
		errs [4]error

		events         *models.EventPage
		parties        []models.Party
		constituencies []models.Constituency
		eventTypes     map[string]models.EventTypeInfo
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		events, errs[0] = s.provider.ListEvents(ctx, models.EventFilters{PerPage: 100})
	}()
	go func() {
		defer wg.Done()
		parties, errs[1] = s.provider.ListParties(ctx)
	}()
	go func() {
		defer wg.Done()
		constituencies, errs[2] = s.provider.ListConstituencies(ctx, models.ConstituencyFilters{})
	}()
	go func() {
		defer wg.Done()
		eventTypes, errs[3] = s.provider.EventTypes(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err == nil {
			continue
		}
		s.logger.Error("initial load failed", "error", err)
		s.mu.Lock()
		s.state = State{Phase: PhaseError, LoadErr: err}
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.state = State{
		Phase:          PhaseReady,
		Events:         events.Data,
		Parties:        parties,
		Constituencies: constituencies,
		EventTypes:     eventTypes,
	}
	s.mu.Unlock()

	s.logger.Info("initial load complete",
		"events", len(events.Data),
		"parties", len(parties),
		"constituencies", len(constituencies))
	return nil
}

// SetFilters replaces the active filter set. Pure transition: no network
// call, the derived view recomputes from already-loaded events.
func (s *Store) SetFilters(f models.EventFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Filters = f
}

// ClearFilters resets the filter set to empty.
func (s *Store) ClearFilters() {
	s.SetFilters(models.EventFilters{})
}

// SelectEvent makes ev the current selection and requests its full
// detail. Selection never hard-fails: when the detail fetch errors, the
// event stays selected as given with whatever joins the loaded reference
// data can supply. A resolution arriving after a newer selection (or a
// reload) is dropped.
func (s *Store) SelectEvent(ctx context.Context, ev models.Event) {
	s.mu.Lock()
	s.selectSeq++
	seq := s.selectSeq
	fallback := s.enrichLocked(ev)
	s.state.Selected = &fallback
	s.mu.Unlock()

	detail, err := s.provider.GetEvent(ctx, ev.ID)
	if err != nil {
		s.logger.Warn("event detail fetch failed", "event_id", ev.ID, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectSeq != seq {
		return
	}
	s.state.Selected = detail
}

// ClearSelection drops the current selection and invalidates any detail
// fetch still in flight.
func (s *Store) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectSeq++
	s.state.Selected = nil
}

// enrichLocked joins ev against the loaded reference data. Callers hold
// s.mu.
func (s *Store) enrichLocked(ev models.Event) models.EventDetail {
	detail := models.EventDetail{Event: ev}
	for i := range s.state.Parties {
		if s.state.Parties[i].ID == ev.PartyID {
			detail.Party = &s.state.Parties[i]
			break
		}
	}
	for i := range s.state.Constituencies {
		if s.state.Constituencies[i].ID == ev.ConstituencyID {
			detail.Constituency = &s.state.Constituencies[i]
			break
		}
	}
	return detail
}

// RSVPEvent performs the RSVP and, on success, applies the confirmed
// post-RSVP event to both the events collection and the selection (when
// it is the same entity) in one transition. No count is shown before
// confirmation, and a failed RSVP leaves state untouched; the error goes
// back to the caller for inline display.
func (s *Store) RSVPEvent(ctx context.Context, eventID, status string) (*provider.RSVPResult, error) {
	res, err := s.provider.RSVP(ctx, eventID, status)
	if err != nil {
		s.logger.Warn("rsvp failed", "event_id", eventID, "error", err)
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.state.Events {
		if s.state.Events[i].ID == eventID {
			s.state.Events[i] = res.Event
			break
		}
	}
	if s.state.Selected != nil && s.state.Selected.ID == eventID {
		confirmed := res.Event
		s.state.Selected = &confirmed
	}
	return res, nil
}

// SetUserLocation records the user's position and resolves their
// constituency best-effort: a detection failure logs and leaves the
// previous resolution in place, while a clean "no constituency here"
// clears it.
func (s *Store) SetUserLocation(ctx context.Context, lat, lng float64) {
	pt := geo.Point{Lat: lat, Lng: lng}
	s.mu.Lock()
	s.state.UserLocation = &pt
	s.mu.Unlock()

	c, err := s.provider.DetectConstituency(ctx, lat, lng)
	if err != nil {
		s.logger.Warn("constituency detection failed", "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Detected = c
}
