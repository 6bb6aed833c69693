// Copyright (c) 2026 Chautari.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/chautari-app/chautari/models"
)

// DefaultTimeout is the fixed per-request deadline.
const DefaultTimeout = 10 * time.Second

// Config configures a Client.
type Config struct {
	// BaseURL is the API root including the version prefix,
	// e.g. "http://localhost:5012/v1".
	BaseURL string

	// Timeout overrides DefaultTimeout when positive.
	Timeout time.Duration

	// HTTPClient substitutes the transport; nil uses a fresh http.Client.
	HTTPClient *http.Client
}

// Client is the HTTP gateway: it translates in-process calls into
// authenticated requests, normalizes every failure into *APIError, and
// owns the session token lifecycle through its TokenStore.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenStore

	mu          sync.Mutex
	accessToken string
}

// New builds a client around the given session store. The in-memory
// access token is primed from persisted storage so a restarted process
// resumes its session. A nil store gets a MemoryTokenStore.
func New(cfg Config, tokens TokenStore) *Client {
	if tokens == nil {
		tokens = NewMemoryTokenStore()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	httpClient.Timeout = timeout

	return &Client{
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		http:        httpClient,
		tokens:      tokens,
		accessToken: tokens.Get(KeyAccessToken),
	}
}

// requestOptions carries the per-call knobs. noAuth suppresses the
// Authorization header even when a token is held.
type requestOptions struct {
	params map[string]string
	body   any
	noAuth bool
}

// do issues one request and decodes a 2xx JSON body into out (out may be
// nil; a 204 never carries a payload). Every failure path returns an
// *APIError.
func (c *Client) do(ctx context.Context, method, path string, opts requestOptions, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return &APIError{Code: CodeNetworkError, Message: fmt.Sprintf("invalid URL: %v", err)}
	}

	if len(opts.params) > 0 {
		q := u.Query()
		for k, v := range opts.params {
			q.Set(k, v)
		}
		u.RawQuery = q.Encode()
	}

	var bodyReader io.Reader
	if opts.body != nil {
		data, err := json.Marshal(opts.body)
		if err != nil {
			return &APIError{Code: CodeUnknown, Message: fmt.Sprintf("failed to encode body: %v", err)}
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), bodyReader)
	if err != nil {
		return &APIError{Code: CodeNetworkError, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	if !opts.noAuth {
		if token := c.AccessToken(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp)
	}

	if resp.StatusCode == http.StatusNoContent || out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{
			Status:  resp.StatusCode,
			Code:    CodeUnknown,
			Message: fmt.Sprintf("failed to decode response: %v", err),
		}
	}
	return nil
}

// transportError classifies a failure that never produced a response:
// deadline exceeded is TIMEOUT, everything else NETWORK_ERROR.
func transportError(err error) *APIError {
	var urlErr *url.Error
	timedOut := errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &urlErr) && urlErr.Timeout())

	if timedOut {
		return &APIError{Code: CodeTimeout, Message: "request timed out"}
	}
	return &APIError{Code: CodeNetworkError, Message: "network error"}
}

// responseError parses a non-2xx body best-effort into the structured
// {code, message, details} shape; an unparseable body degrades to an
// empty object rather than masking the status.
func responseError(resp *http.Response) *APIError {
	var body models.ErrorBody
	data, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(data, &body)

	code := body.Code
	if code == "" {
		code = CodeUnknown
	}
	message := body.Message
	if message == "" {
		message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	var details map[string]any
	if body.Details != nil {
		details, _ = KeysToCamel(body.Details).(map[string]any)
	}

	return &APIError{
		Status:  resp.StatusCode,
		Code:    code,
		Message: message,
		Details: details,
	}
}

// Token lifecycle

// AccessToken returns the current in-memory access token.
func (c *Client) AccessToken() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.accessToken
}

// SetAccessToken updates the in-memory token and mirrors it to persisted
// storage. An empty token clears both.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
	c.tokens.Set(KeyAccessToken, token)
}

// IsAuthenticated reports whether an access token is held.
func (c *Client) IsAuthenticated() bool {
	return c.AccessToken() != ""
}

// StoredUser returns the cached user object from the session store, or
// nil when none is stored or it fails to parse.
func (c *Client) StoredUser() *models.User {
	raw := c.tokens.Get(KeyUser)
	if raw == "" {
		return nil
	}
	var user models.User
	if err := json.Unmarshal([]byte(raw), &user); err != nil {
		return nil
	}
	return &user
}

func (c *Client) setRefreshToken(token string) {
	c.tokens.Set(KeyRefreshToken, token)
}

func (c *Client) setStoredUser(user *models.User) {
	if user == nil {
		c.tokens.Clear(KeyUser)
		return
	}
	data, err := json.Marshal(user)
	if err != nil {
		return
	}
	c.tokens.Set(KeyUser, string(data))
}

// Logout clears the whole session: in-memory token plus all persisted
// keys.
func (c *Client) Logout() {
	c.SetAccessToken("")
	c.setRefreshToken("")
	c.setStoredUser(nil)
}
