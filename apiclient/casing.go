// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import "strings"

// The wire convention is underscore_case; the internal convention is
// camelCase. Typed structs cross the boundary via their JSON tags; the
// functions here handle untyped payloads (error details, metadata maps)
// and must be lossless: KeysToSnake(KeysToCamel(v)) == v for any value
// whose keys are convertible.

// CamelToSnake converts one camelCase key to underscore_case:
// "rsvpCount" -> "rsvp_count".
func CamelToSnake(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 4)
	for _, r := range key {
		if r >= 'A' && r <= 'Z' {
			b.WriteByte('_')
			b.WriteRune(r + ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// SnakeToCamel converts one underscore_case key to camelCase:
// "rsvp_count" -> "rsvpCount". Only "_" followed by a lowercase letter is
// a word boundary, mirroring CamelToSnake exactly.
func SnakeToCamel(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for i := 0; i < len(key); i++ {
		if key[i] == '_' && i+1 < len(key) && key[i+1] >= 'a' && key[i+1] <= 'z' {
			b.WriteByte(key[i+1] - ('a' - 'A'))
			i++
		} else {
			b.WriteByte(key[i])
		}
	}
	return b.String()
}

// KeysToCamel rewrites every map key in v from underscore_case to
// camelCase, recursing through nested maps and arrays. Non-container
// values pass through unchanged.
func KeysToCamel(v any) any {
	return transformKeys(v, SnakeToCamel)
}

// KeysToSnake is the outbound counterpart of KeysToCamel.
func KeysToSnake(v any) any {
	return transformKeys(v, CamelToSnake)
}

func transformKeys(v any, f func(string) string) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, child := range val {
			out[f(k)] = transformKeys(child, f)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, child := range val {
			out[i] = transformKeys(child, f)
		}
		return out
	default:
		return v
	}
}
