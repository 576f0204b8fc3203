package gateway

import (
	"context"
	"net/http"

	"github.com/linemeet/go-events-client/events"
	"github.com/linemeet/go-events-client/identity"
)

type groupValidateRequest struct {
	tokenBody
	GroupID string `json:"group_id"`
}

type groupValidateResponse struct {
	envelope
	Group *events.Group `json:"group"`
}

// ValidateGroup asks the server whether the group exists and the bot is a
// member of it. Format validation happens locally before calling this.
func (g *Client) ValidateGroup(ctx context.Context, token *identity.Token, groupID string) (*events.Group, error) {
	body := groupValidateRequest{tokenBody{IDToken: token.Raw}, groupID}

	var out groupValidateResponse
	if err := g.do(ctx, http.MethodPost, "/api/groups/validate", body, &out); err != nil {
		return nil, err
	}
	return out.Group, nil
}

type groupSuggestResponse struct {
	envelope
	Items []events.Group `json:"items"`
}

// SuggestGroups fetches the groups the server already knows the user by.
func (g *Client) SuggestGroups(ctx context.Context, token *identity.Token) ([]events.Group, error) {
	var out groupSuggestResponse
	if err := g.do(ctx, http.MethodPost, "/api/groups/suggest", tokenBody{IDToken: token.Raw}, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}
