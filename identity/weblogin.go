package identity

import (
	"github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"

	"github.com/linemeet/go-events-client/internal/config"
)

// WebLoginURL builds the provider's authorization URL for running the login
// flow outside the in-app SDK (external browser, demo binary). The in-app
// path goes through SDK.Login instead.
func WebLoginURL(cfg config.LoginConfig, redirectURI, state string) string {
	oauthConfig := &oauth2.Config{
		ClientID:    cfg.GetChannelID(),
		RedirectURL: redirectURI,
		Endpoint: oauth2.Endpoint{
			AuthURL: cfg.GetAuthorizeURL(),
		},
		Scopes: []string{oidc.ScopeOpenID, "profile"},
	}
	return oauthConfig.AuthCodeURL(state)
}
