// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines the domain, request, and response types shared by
the data provider, the API client, and the reference server.

# Domain Types

  - Event: list-safe summary (foreign keys only)
  - EventDetail: Event plus joined Party and Constituency
  - NearbyEvent: EventDetail plus distance_meters
  - Party, Constituency: immutable reference data
  - User: citizen identity keyed by phone number
  - Venue: embedded event location with optional coordinates

The Event/EventDetail split is deliberate: listings carry summaries,
selection always resolves a detail through one typed accessor, and no
code probes at runtime for missing joins.

# Filters

EventFilters is the ephemeral query shape. All fields are independently
optional and combine with logical AND. QueryParams renders the set as
underscore_case wire parameters.

# Wire Convention

JSON tags are underscore_case throughout: struct tags are the boundary
transform between Go naming and the wire naming. Untyped payloads go
through apiclient's recursive key transforms instead.

# Constants

Event types:

	rally | townhall | march | meeting | assembly |
	canvassing | conference | debate

Event status:

	draft | confirmed | cancelled | completed

RSVP status:

	going | interested | not_going

Sort keys (leading "-" = descending):

	datetime | -datetime | rsvp_count | -rsvp_count
*/
package models
