// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package geo

import (
	"encoding/json"
	"fmt"
	"math"
)

// EarthRadiusMeters is the mean Earth radius used for haversine distances.
// All distances in this package are meters; use DistanceKm for kilometers.
const EarthRadiusMeters = 6371000.0

// Point is a [lat, lng] coordinate pair in degrees (WGS84).
// It marshals to and from the two-element JSON array used on the wire.
type Point struct {
	Lat float64
	Lng float64
}

func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Lat, p.Lng})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return err
	}
	if len(pair) != 2 {
		return fmt.Errorf("coordinate pair must have 2 elements, got %d", len(pair))
	}
	p.Lat, p.Lng = pair[0], pair[1]
	return nil
}

// Distance returns the great-circle (haversine) distance between a and b
// in meters. Distance(p, p) == 0 and Distance(a, b) == Distance(b, a).
func Distance(a, b Point) float64 {
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLng := (b.Lng - a.Lng) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(a.Lat*math.Pi/180)*math.Cos(b.Lat*math.Pi/180)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// DistanceKm returns the haversine distance between a and b in kilometers.
func DistanceKm(a, b Point) float64 {
	return Distance(a, b) / 1000
}

// ContainsFunc reports whether pt lies inside the region described by ring.
// Constituency detection accepts any ContainsFunc so deployments can swap in
// an exact point-in-polygon test.
type ContainsFunc func(pt Point, ring []Point) bool

// PointInBounds reports whether pt falls inside the axis-aligned bounding
// box spanned by the ring's first and third vertices.
//
// This is a deliberately cheap approximation, not a true point-in-polygon
// test: points inside the box but outside the actual polygon boundary are
// misclassified. Production deployments wanting exact containment should
// supply their own ContainsFunc.
func PointInBounds(pt Point, ring []Point) bool {
	if len(ring) < 3 {
		return false
	}

	minLat := math.Min(ring[0].Lat, ring[2].Lat)
	maxLat := math.Max(ring[0].Lat, ring[2].Lat)
	minLng := math.Min(ring[0].Lng, ring[2].Lng)
	maxLng := math.Max(ring[0].Lng, ring[2].Lng)

	return pt.Lat >= minLat && pt.Lat <= maxLat &&
		pt.Lng >= minLng && pt.Lng <= maxLng
}
