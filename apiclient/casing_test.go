// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestCamelToSnake(t *testing.T) {
	tests := map[string]string{
		"rsvpCount":      "rsvp_count",
		"constituencyId": "constituency_id",
		"titleNepali":    "title_nepali",
		"lat":            "lat",
		"perPage":        "per_page",
		"a":              "a",
		"":               "",
	}
	for in, want := range tests {
		if got := CamelToSnake(in); got != want {
			t.Errorf("CamelToSnake(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestSnakeToCamel(t *testing.T) {
	tests := map[string]string{
		"rsvp_count":      "rsvpCount",
		"constituency_id": "constituencyId",
		"title_nepali":    "titleNepali",
		"lat":             "lat",
		"per_page":        "perPage",
		"":                "",
	}
	for in, want := range tests {
		if got := SnakeToCamel(in); got != want {
			t.Errorf("SnakeToCamel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestKeysToCamelRecursesNestedStructures(t *testing.T) {
	in := map[string]any{
		"rsvp_count": 5,
		"venue_info": map[string]any{
			"venue_name": "Tundikhel",
			"geo_point":  []any{27.7041, 85.3143},
		},
		"tag_list": []any{
			map[string]any{"tag_name": "mega-rally"},
		},
	}
	want := map[string]any{
		"rsvpCount": 5,
		"venueInfo": map[string]any{
			"venueName": "Tundikhel",
			"geoPoint":  []any{27.7041, 85.3143},
		},
		"tagList": []any{
			map[string]any{"tagName": "mega-rally"},
		},
	}

	if got := KeysToCamel(in); !reflect.DeepEqual(got, want) {
		t.Errorf("KeysToCamel = %#v, want %#v", got, want)
	}
}

// randomSnakeKey builds an underscore_case key from lowercase words, the
// convertible subset the transform pair guarantees round-trips over.
func randomSnakeKey(rng *rand.Rand) string {
	words := rng.Intn(3) + 1
	key := ""
	for w := 0; w < words; w++ {
		if w > 0 {
			key += "_"
		}
		n := rng.Intn(6) + 1
		for i := 0; i < n; i++ {
			key += string(rune('a' + rng.Intn(26)))
		}
	}
	return key
}

func randomValue(rng *rand.Rand, depth int) any {
	if depth <= 0 {
		return rng.Float64()
	}
	switch rng.Intn(4) {
	case 0:
		m := make(map[string]any)
		for i := 0; i < rng.Intn(4); i++ {
			m[randomSnakeKey(rng)] = randomValue(rng, depth-1)
		}
		return m
	case 1:
		s := make([]any, rng.Intn(4))
		for i := range s {
			s[i] = randomValue(rng, depth-1)
		}
		return s
	case 2:
		return "value"
	default:
		return float64(rng.Intn(1000))
	}
}

func TestKeyTransformRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(2026))

	for i := 0; i < 200; i++ {
		original := map[string]any{randomSnakeKey(rng): randomValue(rng, 4)}
		back := KeysToSnake(KeysToCamel(original))
		if !reflect.DeepEqual(back, original) {
			t.Fatalf("round trip diverged:\noriginal: %#v\nback:     %#v", original, back)
		}
	}
}
