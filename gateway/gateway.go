// Package gateway is the typed client for the events REST API. It carries
// the caller-supplied identity token, decodes the {ok, reason} response
// envelopes, and classifies every failure into one of the apperrors kinds so
// callers never match on message text.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"regexp"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/linemeet/go-events-client/internal/apperrors"
)

// Client issues authenticated REST calls against the events API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client for API requests.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Client) { g.httpClient = c }
}

// WithLogger sets a structured logger for the client.
func WithLogger(l zerolog.Logger) Option {
	return func(g *Client) { g.logger = l }
}

// New creates a gateway client for the API at baseURL.
func New(baseURL string, opts ...Option) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(client)
	}
	return client
}

// envelope is the {ok, reason} shape every endpoint responds with.
type envelope struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason"`
}

// tokenBody is the body of calls whose only payload is the token.
type tokenBody struct {
	IDToken string `json:"id_token"`
}

// The server reports an expired or rejected token in the reason field, with
// HTTP statuses that vary by endpoint. These patterns plus a 401 are the
// only auth signals.
var authReasonPattern = regexp.MustCompile(`(?i)idtoken expired|invalid[_ ]?token`)

// do issues one request and decodes the response into out (when non-nil).
// Every failure comes back classified; do never retries.
func (g *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "[Client.do] marshal body")
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "[Client.do] new request")
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(apperrors.ErrNetwork, "[Client.do] %s %s: %v", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(apperrors.ErrNetwork, "[Client.do] read body: %v", err)
	}

	g.logger.Debug().
		Str("method", method).
		Str("path", path).
		Str("request_id", requestID).
		Int("status", resp.StatusCode).
		Msg("api call")

	// A body that fails to parse as JSON is treated as an empty object and
	// classification falls back to the HTTP status.
	var env envelope
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &env)
	}

	if err := classify(resp.StatusCode, env); err != nil {
		return errors.Wrapf(err, "[Client.do] %s %s", method, path)
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return errors.Wrapf(apperrors.ErrHTTPFailure, "[Client.do] decode payload: %v", err)
		}
	}
	return nil
}

// classify maps an HTTP status and response envelope to an error kind.
// A 401, or a reason matching the expiry/invalid-token patterns, means
// AuthExpired regardless of method or status.
func classify(status int, env envelope) error {
	if status == http.StatusUnauthorized {
		return errors.Wrap(apperrors.ErrAuthExpired, "server returned 401")
	}
	if env.Reason != "" && authReasonPattern.MatchString(env.Reason) {
		return errors.Wrapf(apperrors.ErrAuthExpired, "server rejected token: %s", env.Reason)
	}
	if status == http.StatusNotFound {
		return errors.Wrap(apperrors.ErrNotFound, "server returned 404")
	}
	if status < 200 || status >= 300 {
		return errors.Wrapf(apperrors.ErrHTTPFailure, "server returned %d: %s", status, env.Reason)
	}
	if !env.OK {
		return errors.Wrapf(apperrors.ErrHTTPFailure, "server refused: %s", env.Reason)
	}
	return nil
}
