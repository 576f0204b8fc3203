package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/linemeet/go-events-client/events"
	"github.com/linemeet/go-events-client/identity"
)

type eventListResponse struct {
	envelope
	Items []events.Event `json:"items"`
}

// ListEvents fetches the events of one chat scope. Listing is readable
// without a token; everything the server returns here is already visible to
// the chat's members.
func (g *Client) ListEvents(ctx context.Context, scopeID events.ScopeID) ([]events.Event, error) {
	path := "/api/events?scope_id=" + url.QueryEscape(string(scopeID))

	var out eventListResponse
	if err := g.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// MyEvents fetches the events the token's user created or joined.
func (g *Client) MyEvents(ctx context.Context, token *identity.Token) ([]events.Event, error) {
	var out eventListResponse
	if err := g.do(ctx, http.MethodPost, "/api/events/mine", tokenBody{IDToken: token.Raw}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

type eventWriteRequest struct {
	tokenBody
	events.EventInput
}

// CreateEvent creates an event in the input's scope. Create is not
// idempotent: callers must not re-issue it blindly after a failure.
func (g *Client) CreateEvent(ctx context.Context, token *identity.Token, input events.EventInput) error {
	body := eventWriteRequest{tokenBody{IDToken: token.Raw}, input}
	return g.do(ctx, http.MethodPost, "/api/events", body, nil)
}

// UpdateEvent patches an existing event.
func (g *Client) UpdateEvent(ctx context.Context, token *identity.Token, eventID int64, input events.EventInput) error {
	body := eventWriteRequest{tokenBody{IDToken: token.Raw}, input}
	return g.do(ctx, http.MethodPatch, fmt.Sprintf("/api/events/%d", eventID), body, nil)
}

// DeleteEvent removes an event.
func (g *Client) DeleteEvent(ctx context.Context, token *identity.Token, eventID int64) error {
	return g.do(ctx, http.MethodDelete, fmt.Sprintf("/api/events/%d", eventID), tokenBody{IDToken: token.Raw}, nil)
}
