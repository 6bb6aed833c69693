// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package geo provides the geospatial primitives for event discovery.

# Distance

Distance computes the great-circle (haversine) distance in meters
using a mean Earth radius of 6,371,000 m:

	m := geo.Distance(a, b)
	km := geo.DistanceKm(a, b)

Nearby search works in meters; only presentation code should use the
kilometer variant. Do not mix the two.

# Containment

PointInBounds is the prototype-grade constituency membership test: it
checks the axis-aligned bounding box spanned by a ring's first and third
vertices. Points inside the box but outside the true polygon are
misclassified - this is a known precision limitation carried over from
the data model, not a bug. Callers that need exact containment pass
their own ContainsFunc wherever one is accepted.
*/
package geo
