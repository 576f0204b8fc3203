package identity_test

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linemeet/go-events-client/identity"
	"github.com/linemeet/go-events-client/internal/config"
)

func TestWebLoginURL(t *testing.T) {
	t.Setenv("LINE_CHANNEL_ID", "1234567890")

	raw := identity.WebLoginURL(config.New(), "https://app.example.com/liff/", "state-1")

	parsed, err := url.Parse(raw)
	require.NoError(t, err)

	query := parsed.Query()
	require.Equal(t, "1234567890", query.Get("client_id"))
	require.Equal(t, "https://app.example.com/liff/", query.Get("redirect_uri"))
	require.Equal(t, "state-1", query.Get("state"))
	require.Contains(t, query.Get("scope"), "openid")
	require.Equal(t, "code", query.Get("response_type"))
}
