// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package provider selects between the two data strategies behind a single
interface: a Static provider serving the embedded dataset entirely
in-process, and an API provider backed by the live HTTP service through
the apiclient gateway.

Callers pick a strategy once at startup:

	p, err := provider.New(provider.ModeStatic, dataset.Load(), nil)

or, for live mode:

	client := apiclient.New(apiclient.Config{BaseURL: base}, store)
	p, err := provider.New(provider.ModeAPI, nil, client)

Both strategies honor the same query semantics (filtering, sorting,
pagination, nearby search), so switching modes changes where data comes
from but not what a given query returns.

Two behaviors differ by design. Constituency detection returns
(nil, nil) when no constituency contains the point, in both modes; that
absence is an expected outcome rather than an error. RSVPs in static
mode are simulated: the returned RSVPResult carries Simulated=true and
the underlying dataset is never mutated, whereas in API mode the server
persists the RSVP and the result reflects its authoritative state.
*/
package provider
