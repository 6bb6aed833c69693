// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package appstate holds the application's single mutable state container.

A Store is constructed once at startup around a provider.Provider and
mutated only through named actions: Load, SetFilters, ClearFilters,
SelectEvent, ClearSelection, RSVPEvent, SetUserLocation. Reads go
through Snapshot, which returns a copied State that stays coherent while
the store moves on.

The initial Load fetches events, parties, constituencies, and event-type
metadata in parallel and is all-or-nothing: any failure puts the store
in PhaseError with no partial data, and recovery is a full reload.
Action-time failures are recoverable instead: a failed RSVP returns its
error to the caller and leaves state exactly as it was.

In-flight requests may resolve after the state has moved on. The store
gates every asynchronous resolution on relevance, not call order: a
detail fetch for an event the user has already navigated away from is
dropped rather than applied.
*/
package appstate
