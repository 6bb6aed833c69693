// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/chautari-app/chautari/models"
)

// Events

// ListEvents fetches one page of events matching the filter set.
func (c *Client) ListEvents(ctx context.Context, filters models.EventFilters) (*models.EventPage, error) {
	var page models.EventPage
	err := c.do(ctx, http.MethodGet, "/events", requestOptions{
		params: filters.QueryParams(),
		noAuth: false,
	}, &page)
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// NearbyEvents runs a proximity search around the query point.
func (c *Client) NearbyEvents(ctx context.Context, q models.NearbyQuery) (*models.NearbyResult, error) {
	var result models.NearbyResult
	err := c.do(ctx, http.MethodGet, "/events/nearby", requestOptions{
		params: q.QueryParams(),
	}, &result)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetEvent fetches the fully joined detail for one event.
func (c *Client) GetEvent(ctx context.Context, id string) (*models.EventDetail, error) {
	var detail models.EventDetail
	err := c.do(ctx, http.MethodGet, "/events/"+url.PathEscape(id), requestOptions{}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// RSVP records the authenticated user's RSVP and returns the confirmed
// post-RSVP event state. Requires a session.
func (c *Client) RSVP(ctx context.Context, id, status string) (*models.EventDetail, error) {
	if status == "" {
		status = models.RSVPGoing
	}
	var detail models.EventDetail
	err := c.do(ctx, http.MethodPost, "/events/"+url.PathEscape(id)+"/rsvp", requestOptions{
		body: models.RSVPRequest{Status: status},
	}, &detail)
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

// CancelRSVP revokes the authenticated user's RSVP.
func (c *Client) CancelRSVP(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id)+"/rsvp", requestOptions{}, nil)
}

// Parties

func (c *Client) ListParties(ctx context.Context) ([]models.Party, error) {
	var list models.PartyList
	if err := c.do(ctx, http.MethodGet, "/parties", requestOptions{}, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

func (c *Client) GetParty(ctx context.Context, id string) (*models.Party, error) {
	var party models.Party
	err := c.do(ctx, http.MethodGet, "/parties/"+url.PathEscape(id), requestOptions{}, &party)
	if err != nil {
		return nil, err
	}
	return &party, nil
}

// Constituencies

func (c *Client) ListConstituencies(ctx context.Context, filters models.ConstituencyFilters) ([]models.Constituency, error) {
	var list models.ConstituencyList
	err := c.do(ctx, http.MethodGet, "/constituencies", requestOptions{
		params: filters.QueryParams(),
	}, &list)
	if err != nil {
		return nil, err
	}
	return list.Data, nil
}

func (c *Client) GetConstituency(ctx context.Context, id string) (*models.Constituency, error) {
	var constituency models.Constituency
	err := c.do(ctx, http.MethodGet, "/constituencies/"+url.PathEscape(id), requestOptions{}, &constituency)
	if err != nil {
		return nil, err
	}
	return &constituency, nil
}

// DetectConstituency asks the server which constituency contains the
// point. A 404 propagates as an *APIError; the data provider is the
// layer that translates it into "no constituency here".
func (c *Client) DetectConstituency(ctx context.Context, lat, lng float64) (*models.Constituency, error) {
	var constituency models.Constituency
	err := c.do(ctx, http.MethodGet, "/constituencies/detect", requestOptions{
		params: map[string]string{
			"lat": strconv.FormatFloat(lat, 'f', -1, 64),
			"lng": strconv.FormatFloat(lng, 'f', -1, 64),
		},
	}, &constituency)
	if err != nil {
		return nil, err
	}
	return &constituency, nil
}

// Auth

// RequestOTP asks the server to send a one-time password to the phone.
func (c *Client) RequestOTP(ctx context.Context, phone string) (*models.OTPResponse, error) {
	var resp models.OTPResponse
	err := c.do(ctx, http.MethodPost, "/auth/request-otp", requestOptions{
		body:   models.OTPRequest{Phone: phone},
		noAuth: true,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyOTP exchanges phone+OTP for a session and persists the access
// token, refresh token, and user object through the token store.
func (c *Client) VerifyOTP(ctx context.Context, phone, otp string) (*models.TokenResponse, error) {
	var resp models.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/verify-otp", requestOptions{
		body:   models.OTPVerifyRequest{Phone: phone, OTP: otp},
		noAuth: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.SetAccessToken(resp.AccessToken)
	c.setRefreshToken(resp.RefreshToken)
	c.setStoredUser(resp.User)
	return &resp, nil
}

// Refresh rotates the access token using the stored refresh token.
// Fails with NO_REFRESH_TOKEN when nothing is stored.
func (c *Client) Refresh(ctx context.Context) (*models.TokenResponse, error) {
	refresh := c.tokens.Get(KeyRefreshToken)
	if refresh == "" {
		return nil, &APIError{
			Status:  http.StatusUnauthorized,
			Code:    CodeNoRefreshToken,
			Message: "no refresh token available",
		}
	}

	var resp models.TokenResponse
	err := c.do(ctx, http.MethodPost, "/auth/refresh", requestOptions{
		params: map[string]string{"refresh_token": refresh},
		noAuth: true,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.SetAccessToken(resp.AccessToken)
	return &resp, nil
}

// Users

func (c *Client) Me(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.do(ctx, http.MethodGet, "/users/me", requestOptions{}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateMe patches the profile and refreshes the cached user object.
func (c *Client) UpdateMe(ctx context.Context, update models.UserUpdateRequest) (*models.User, error) {
	var user models.User
	err := c.do(ctx, http.MethodPatch, "/users/me", requestOptions{
		body: update,
	}, &user)
	if err != nil {
		return nil, err
	}
	c.setStoredUser(&user)
	return &user, nil
}

// MyRSVPs lists the events the authenticated user has RSVPed to.
func (c *Client) MyRSVPs(ctx context.Context) ([]models.EventDetail, error) {
	var list models.EventList
	if err := c.do(ctx, http.MethodGet, "/users/me/rsvps", requestOptions{}, &list); err != nil {
		return nil, err
	}
	return list.Data, nil
}

// Meta

func (c *Client) EventTypes(ctx context.Context) (map[string]models.EventTypeInfo, error) {
	var types map[string]models.EventTypeInfo
	if err := c.do(ctx, http.MethodGet, "/meta/event-types", requestOptions{}, &types); err != nil {
		return nil, err
	}
	return types, nil
}
