// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package dataset bundles the static seed data for offline operation.

The seed files under seed/ are embedded at build time and mirror the wire
format exactly (underscore_case keys, [lat,lng] coordinate pairs), so the
same catalog backs both the static provider and the reference server's
initial database load.

	ds, err := dataset.Load()

Load allocates a fresh copy per call. The static provider treats its copy
as read-only at all times; RSVP in static mode never writes back.
*/
package dataset
