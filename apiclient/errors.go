// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"errors"
	"fmt"
)

// Error codes produced by the client itself, as opposed to codes supplied
// by the server in a non-2xx body.
const (
	CodeTimeout        = "TIMEOUT"
	CodeNetworkError   = "NETWORK_ERROR"
	CodeNoRefreshToken = "NO_REFRESH_TOKEN"
	CodeUnknown        = "UNKNOWN_ERROR"
)

// APIError is the normalized error for every failed gateway call. Status
// is 0 for failures that never produced an HTTP response (timeout,
// transport errors).
type APIError struct {
	Status  int
	Code    string
	Message string
	Details map[string]any
}

func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api error %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api error %s: %s", e.Code, e.Message)
}

// AsAPIError unwraps err into an *APIError if there is one in the chain.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is an HTTP 404 from the server.
func IsNotFound(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Status == 404
}

// IsTimeout reports whether err is a client-side deadline failure, as
// distinct from a connection-level NETWORK_ERROR.
func IsTimeout(err error) bool {
	apiErr, ok := AsAPIError(err)
	return ok && apiErr.Code == CodeTimeout
}
