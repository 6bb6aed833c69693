// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package eventquery implements the event listing semantics shared by the
static data provider and the reference server.

Both backing modes must answer a query identically - that is the
compatibility contract between client and server. Rather than maintain
two parallel implementations and test them against each other forever,
the pure query pipeline lives here exactly once:

	Filter -> Sort -> Paginate

and the proximity search:

	Nearby (radius filter, ascending distance, then truncation)

All functions are pure: inputs are never mutated and results carry fresh
slices.
*/
package eventquery
