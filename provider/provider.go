// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/chautari-app/chautari/apiclient"
	"github.com/chautari-app/chautari/dataset"
	"github.com/chautari-app/chautari/models"
)

// Backing modes. The mode is fixed when the provider is constructed and
// never changes at runtime.
const (
	ModeStatic = "static"
	ModeAPI    = "api"
)

// ErrNotFound reports a lookup for an entity the active mode's dataset
// does not contain.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err means "no such entity" in either mode.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || apiclient.IsNotFound(err)
}

// RSVPResult is the outcome of an RSVP operation. Simulated marks the
// static-mode projection, which is locally computed, never persisted,
// and not suitable for multi-session consistency. Live-mode results are
// always server-confirmed.
type RSVPResult struct {
	Event     models.EventDetail
	Simulated bool
}

// Provider is the single data-access interface the application sees,
// regardless of whether a bundled dataset or the live API backs it.
//
// DetectConstituency returns (nil, nil) when no constituency contains
// the point: absence is an expected outcome there, not a fault. Every
// other lookup fails with a not-found error for missing entities.
type Provider interface {
	ListEvents(ctx context.Context, filters models.EventFilters) (*models.EventPage, error)
	NearbyEvents(ctx context.Context, q models.NearbyQuery) (*models.NearbyResult, error)
	GetEvent(ctx context.Context, id string) (*models.EventDetail, error)
	RSVP(ctx context.Context, id, status string) (*RSVPResult, error)

	ListParties(ctx context.Context) ([]models.Party, error)
	GetParty(ctx context.Context, id string) (*models.Party, error)

	ListConstituencies(ctx context.Context, filters models.ConstituencyFilters) ([]models.Constituency, error)
	GetConstituency(ctx context.Context, id string) (*models.Constituency, error)
	DetectConstituency(ctx context.Context, lat, lng float64) (*models.Constituency, error)

	EventTypes(ctx context.Context) (map[string]models.EventTypeInfo, error)
}

// New selects the backing strategy once, at construction. Static mode
// needs the dataset; api mode needs the client.
func New(mode string, ds *dataset.Dataset, client *apiclient.Client) (Provider, error) {
	switch mode {
	case ModeStatic:
		if ds == nil {
			return nil, errors.New("static mode requires a dataset")
		}
		return NewStatic(ds), nil
	case ModeAPI:
		if client == nil {
			return nil, errors.New("api mode requires a client")
		}
		return NewAPI(client), nil
	default:
		return nil, fmt.Errorf("unknown data mode %q", mode)
	}
}
