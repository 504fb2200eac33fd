// Package api is the HTTP client half of the admin dashboard core. It wraps
// the JSON API exposed by the server with typed resources and a closed error
// shape so callers never inspect raw responses.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// TokenSource supplies the bearer credential attached to outgoing requests.
// The session manager implements this; an empty token means no header.
type TokenSource interface {
	Token() string
}

// RequestError is the closed error type for every non-2xx response. Message
// carries the server-provided message when the body had one, otherwise the
// HTTP status text.
type RequestError struct {
	Status  int
	Message string
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed (%d): %s", e.Status, e.Message)
}

// IsNotFound reports whether err is a RequestError with status 404.
func IsNotFound(err error) bool {
	var re *RequestError
	return errors.As(err, &re) && re.Status == http.StatusNotFound
}

// ClientOptions groups parameters for NewClient.
type ClientOptions struct {
	BaseURL    string
	Tokens     TokenSource  // optional, nil means unauthenticated requests
	HTTPClient *http.Client // optional, defaults to a 30s-timeout client
}

// Client talks to the server's JSON API.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// NewClient constructs a Client.
func NewClient(opts ClientOptions) (*Client, error) {
	base := strings.TrimSuffix(opts.BaseURL, "/")
	if base == "" {
		return nil, errors.New("base URL is required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: base, tokens: opts.Tokens, http: httpClient}, nil
}

// ListParams are the query parameters accepted by list endpoints.
type ListParams struct {
	Q     string
	Page  int
	Limit int
	// Extra carries entity-specific filters (e.g. category_id, status).
	Extra url.Values
}

func (p ListParams) encode() string {
	q := url.Values{}
	for k, vs := range p.Extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	if p.Q != "" {
		q.Set("q", p.Q)
	}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		q.Set("limit", strconv.Itoa(p.Limit))
	}
	return q.Encode()
}

// Page is one window of a listed collection.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// do executes one request. body is JSON-encoded when non-nil; out is
// JSON-decoded from a 2xx response when non-nil.
func (c *Client) do(ctx context.Context, method, path, rawQuery string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reqBody = bytes.NewReader(buf)
	}

	u := c.baseURL + path
	if rawQuery != "" {
		u += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close on read path

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newRequestError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// newRequestError converts a non-2xx response into a *RequestError, reading
// the server's {"error","message"} body when present.
func newRequestError(resp *http.Response) error {
	msg := http.StatusText(resp.StatusCode)

	var body struct {
		Message string `json:"message"`
	}
	// Cap the error body read; a misbehaving server must not balloon memory.
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&body); err == nil && body.Message != "" {
		msg = body.Message
	}

	return &RequestError{Status: resp.StatusCode, Message: msg}
}
