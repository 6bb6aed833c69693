package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/chautari-app/chautari/geo"
)

// Event type constants
const (
	TypeRally      = "rally"
	TypeTownhall   = "townhall"
	TypeMarch      = "march"
	TypeMeeting    = "meeting"
	TypeAssembly   = "assembly"
	TypeCanvassing = "canvassing"
	TypeConference = "conference"
	TypeDebate     = "debate"
)

// Event status constants
const (
	StatusDraft     = "draft"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// RSVP status constants
const (
	RSVPGoing      = "going"
	RSVPInterested = "interested"
	RSVPNotGoing   = "not_going"
)

// User role constants
const (
	RoleCitizen    = "citizen"
	RolePartyAdmin = "party_admin"
	RoleSuperAdmin = "super_admin"
)

// Sort keys accepted by event listing. A leading "-" means descending.
const (
	SortDatetime      = "datetime"
	SortDatetimeDesc  = "-datetime"
	SortRSVPCount     = "rsvp_count"
	SortRSVPCountDesc = "-rsvp_count"
)

// Domain types

// Venue is where an event takes place. Coordinates may be nil when the
// venue has not been geocoded; such events are invisible to nearby search.
type Venue struct {
	Name        string     `json:"name"`
	Address     string     `json:"address,omitempty"`
	Coordinates *geo.Point `json:"coordinates,omitempty"`
}

// Event is the list-safe summary shape: reference data is carried as
// foreign keys only. EventDetail adds the joined party and constituency.
type Event struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	TitleNepali        string     `json:"title_nepali,omitempty"`
	Type               string     `json:"type"`
	Status             string     `json:"status"`
	Description        string     `json:"description,omitempty"`
	Datetime           time.Time  `json:"datetime"`
	EndTime            *time.Time `json:"end_time,omitempty"`
	Venue              *Venue     `json:"venue,omitempty"`
	PartyID            string     `json:"party_id,omitempty"`
	ConstituencyID     string     `json:"constituency_id,omitempty"`
	Speakers           []string   `json:"speakers,omitempty"`
	Tags               []string   `json:"tags,omitempty"`
	ExpectedAttendance int        `json:"expected_attendance"`
	RSVPCount          int        `json:"rsvp_count"`

	// UserRSVP is the current user's RSVP status ("going", "interested",
	// "not_going") or empty when the user has none. Server-authoritative.
	UserRSVP string `json:"user_rsvp,omitempty"`
}

// Going reports whether the current user has a going RSVP on the event.
func (e Event) Going() bool {
	return e.UserRSVP == RSVPGoing
}

// Coordinates returns the venue coordinate, or nil when the event has no
// resolvable location.
func (e Event) Coordinates() *geo.Point {
	if e.Venue == nil {
		return nil
	}
	return e.Venue.Coordinates
}

// EventDetail is the fully joined event shape: party and constituency are
// resolved from their foreign keys. Missing references stay nil.
type EventDetail struct {
	Event
	Party        *Party        `json:"party,omitempty"`
	Constituency *Constituency `json:"constituency,omitempty"`
}

// Enriched reports whether the detail actually carries its joins, i.e.
// every present foreign key has been resolved.
func (e EventDetail) Enriched() bool {
	if e.PartyID != "" && e.Party == nil {
		return false
	}
	if e.ConstituencyID != "" && e.Constituency == nil {
		return false
	}
	return true
}

// NearbyEvent is an event annotated with its distance from a query point.
type NearbyEvent struct {
	EventDetail
	DistanceMeters float64 `json:"distance_meters"`
}

// Party is immutable political-party reference data.
type Party struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	NameNepali string `json:"name_nepali,omitempty"`
	ShortName  string `json:"short_name"`
	Color      string `json:"color,omitempty"`
	Leader     string `json:"leader,omitempty"`
	LogoURL    string `json:"logo_url,omitempty"`
}

// Constituency is immutable electoral-geography reference data. Bounds is
// an ordered ring of [lat,lng] vertices; membership tests use the box
// spanned by vertices 0 and 2 (see geo.PointInBounds).
type Constituency struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	NameNepali       string      `json:"name_nepali,omitempty"`
	Province         string      `json:"province"`
	District         string      `json:"district"`
	Type             string      `json:"type,omitempty"`
	RegisteredVoters int         `json:"registered_voters"`
	Center           *geo.Point  `json:"center,omitempty"`
	Bounds           []geo.Point `json:"bounds,omitempty"`
}

// User is a citizen identity created on first successful OTP verification.
type User struct {
	ID             string     `json:"id"`
	Phone          string     `json:"phone"`
	Name           string     `json:"name,omitempty"`
	Role           string     `json:"role"`
	ConstituencyID string     `json:"constituency_id,omitempty"`
	CreatedAt      *time.Time `json:"created_at,omitempty"`
}

// EventTypeInfo is display metadata for one event type.
type EventTypeInfo struct {
	Label       string `json:"label"`
	LabelNepali string `json:"label_nepali,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// EventFilters is an ephemeral query over events. Zero values mean "no
// constraint"; set fields combine with logical AND.
type EventFilters struct {
	ConstituencyID string
	PartyID        string
	EventType      string
	Status         string
	DateFrom       *time.Time
	DateTo         *time.Time
	Tags           []string
	Search         string
	Sort           string
	Page           int
	PerPage        int
}

// QueryParams renders the filter set as wire query parameters
// (underscore_case keys, RFC 3339 instants). Unset fields are omitted.
func (f EventFilters) QueryParams() map[string]string {
	params := make(map[string]string)
	if f.ConstituencyID != "" {
		params["constituency_id"] = f.ConstituencyID
	}
	if f.PartyID != "" {
		params["party_id"] = f.PartyID
	}
	if f.EventType != "" {
		params["event_type"] = f.EventType
	}
	if f.Status != "" {
		params["status"] = f.Status
	}
	if f.DateFrom != nil {
		params["date_from"] = f.DateFrom.Format(time.RFC3339)
	}
	if f.DateTo != nil {
		params["date_to"] = f.DateTo.Format(time.RFC3339)
	}
	if len(f.Tags) > 0 {
		params["tags"] = strings.Join(f.Tags, ",")
	}
	if f.Search != "" {
		params["search"] = f.Search
	}
	if f.Sort != "" {
		params["sort"] = f.Sort
	}
	if f.Page > 0 {
		params["page"] = strconv.Itoa(f.Page)
	}
	if f.PerPage > 0 {
		params["per_page"] = strconv.Itoa(f.PerPage)
	}
	return params
}

// NearbyQuery is a radius-bounded proximity search around a point.
// Zero RadiusMeters and PerPage take the server/provider defaults
// (5000 m and 20).
type NearbyQuery struct {
	Lat          float64
	Lng          float64
	RadiusMeters float64
	PerPage      int
}

func (q NearbyQuery) QueryParams() map[string]string {
	params := map[string]string{
		"lat": strconv.FormatFloat(q.Lat, 'f', -1, 64),
		"lng": strconv.FormatFloat(q.Lng, 'f', -1, 64),
	}
	if q.RadiusMeters > 0 {
		params["radius"] = strconv.FormatFloat(q.RadiusMeters, 'f', -1, 64)
	}
	if q.PerPage > 0 {
		params["per_page"] = strconv.Itoa(q.PerPage)
	}
	return params
}

// ConstituencyFilters narrows constituency listings.
type ConstituencyFilters struct {
	Province string
	District string
}

func (f ConstituencyFilters) QueryParams() map[string]string {
	params := make(map[string]string)
	if f.Province != "" {
		params["province"] = f.Province
	}
	if f.District != "" {
		params["district"] = f.District
	}
	return params
}

// Pagination describes one page of a listing.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Response envelopes

type EventPage struct {
	Data       []EventDetail `json:"data"`
	Pagination Pagination    `json:"pagination"`
}

type NearbyCenter struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type NearbyResult struct {
	Data         []NearbyEvent `json:"data"`
	Center       NearbyCenter  `json:"center"`
	RadiusMeters float64       `json:"radius_meters"`
}

type PartyList struct {
	Data []Party `json:"data"`
}

type ConstituencyList struct {
	Data []Constituency `json:"data"`
}

type EventList struct {
	Data []EventDetail `json:"data"`
}

// Request types

type RSVPRequest struct {
	Status string `json:"status"`
}

type OTPRequest struct {
	Phone string `json:"phone"`
}

type OTPVerifyRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type UserUpdateRequest struct {
	Name           *string `json:"name,omitempty"`
	ConstituencyID *string `json:"constituency_id,omitempty"`
}

// Response types

type OTPResponse struct {
	Message   string `json:"message"`
	ExpiresIn int    `json:"expires_in"`

	// DevOTP carries the OTP value back to the caller for test automation.
	// Populated only in development configurations; must never be set in
	// production.
	DevOTP string `json:"dev_otp,omitempty"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
	User         *User  `json:"user,omitempty"`
}

type RSVPCancelResponse struct {
	Status string `json:"status"`
}

// ErrorBody is the machine-readable error shape every non-2xx response
// carries: {code, message, details}.
type ErrorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}
