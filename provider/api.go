// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package provider

import (
	"context"

	"github.com/chautari-app/chautari/apiclient"
	"github.com/chautari-app/chautari/models"
)

// API backs the provider with the live HTTP service. The server owns
// every piece of mutable state; results pass through as confirmed.
type API struct {
	client *apiclient.Client
}

func NewAPI(client *apiclient.Client) *API {
	return &API{client: client}
}

// Client exposes the underlying gateway for auth flows, which exist only
// in live mode.
func (a *API) Client() *apiclient.Client {
	return a.client
}

func (a *API) ListEvents(ctx context.Context, filters models.EventFilters) (*models.EventPage, error) {
	return a.client.ListEvents(ctx, filters)
}

func (a *API) NearbyEvents(ctx context.Context, q models.NearbyQuery) (*models.NearbyResult, error) {
	return a.client.NearbyEvents(ctx, q)
}

func (a *API) GetEvent(ctx context.Context, id string) (*models.EventDetail, error) {
	return a.client.GetEvent(ctx, id)
}

// RSVP delegates to the server and returns its authoritative post-RSVP
// event state. The client performs no count arithmetic of its own.
func (a *API) RSVP(ctx context.Context, id, status string) (*RSVPResult, error) {
	detail, err := a.client.RSVP(ctx, id, status)
	if err != nil {
		return nil, err
	}
	return &RSVPResult{Event: *detail}, nil
}

func (a *API) ListParties(ctx context.Context) ([]models.Party, error) {
	return a.client.ListParties(ctx)
}

func (a *API) GetParty(ctx context.Context, id string) (*models.Party, error) {
	return a.client.GetParty(ctx, id)
}

func (a *API) ListConstituencies(ctx context.Context, filters models.ConstituencyFilters) ([]models.Constituency, error) {
	return a.client.ListConstituencies(ctx, filters)
}

func (a *API) GetConstituency(ctx context.Context, id string) (*models.Constituency, error) {
	return a.client.GetConstituency(ctx, id)
}

// DetectConstituency translates the server's 404 into (nil, nil):
// "no constituency at this point" is an expected outcome, and this is
// the one error class the provider swallows.
func (a *API) DetectConstituency(ctx context.Context, lat, lng float64) (*models.Constituency, error) {
	c, err := a.client.DetectConstituency(ctx, lat, lng)
	if apiclient.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (a *API) EventTypes(ctx context.Context) (map[string]models.EventTypeInfo, error) {
	return a.client.EventTypes(ctx)
}
