// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package eventview derives display projections from loaded state:
// filtered listings, calendar-day groupings, the seven-day upcoming
// window, and human-readable labels. Every function is pure and
// recomputes from its inputs; nothing here caches or mutates.
package eventview
