package gateway

import (
	"context"
	"net/http"

	"github.com/linemeet/go-events-client/identity"
)

// VerifyIDToken asks the server to verify the token's signature and
// audience. The client never verifies signatures itself; a nil return means
// the server vouched for the token.
func (g *Client) VerifyIDToken(ctx context.Context, token *identity.Token) error {
	return g.do(ctx, http.MethodPost, "/api/auth/verify-idtoken", tokenBody{IDToken: token.Raw}, nil)
}
