// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package apiclient is the HTTP gateway to the Chautari API.

# Construction

The client takes its session store as an explicit dependency; there is no
package-level token state. Tests inject a MemoryTokenStore, real apps a
FileTokenStore:

	store, _ := apiclient.NewFileTokenStore(path)
	client := apiclient.New(apiclient.Config{BaseURL: base}, store)

The in-memory access token is primed from the store at construction, so a
restarted process resumes its session.

# Requests

Every call carries a fixed 10-second deadline. Failures normalize to
*APIError with a distinct code per kind:

  - TIMEOUT: deadline exceeded
  - NETWORK_ERROR: connection-level failure
  - NO_REFRESH_TOKEN: refresh attempted with nothing stored
  - server codes: whatever {code, message, details} a non-2xx body carried

A 204 yields no payload. Unparseable error bodies degrade to an empty
object; the HTTP status is always preserved.

# Session Lifecycle

VerifyOTP persists the access token, refresh token, and user object.
Refresh rotates the access token. Logout clears all three keys. Setting
a token to the empty string clears its persisted entry.

# Key Casing

Outbound query parameters are underscore_case (built by the models
QueryParams methods); typed responses decode through underscore_case JSON
tags. Untyped payloads go through the lossless recursive transforms
KeysToCamel / KeysToSnake.
*/
package apiclient
