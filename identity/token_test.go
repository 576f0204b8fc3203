package identity_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/linemeet/go-events-client/identity"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	raw, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return raw
}

func TestParseToken(t *testing.T) {
	t.Run("decodes subject and expiry without verifying", func(t *testing.T) {
		exp := time.Now().Add(time.Hour).Truncate(time.Second)
		raw := signedToken(t, "U1234", exp)

		token, err := identity.ParseToken(raw)
		require.NoError(t, err)
		require.Equal(t, raw, token.Raw)
		require.Equal(t, "U1234", token.Subject)
		require.Equal(t, exp.Unix(), token.ExpiresAt.Unix())
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := identity.ParseToken("")
		require.Error(t, err)
	})

	t.Run("malformed token", func(t *testing.T) {
		_, err := identity.ParseToken("not-a-jwt")
		require.Error(t, err)
	})

	t.Run("missing exp claim", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "U1234"})
		raw, err := token.SignedString([]byte("test-secret"))
		require.NoError(t, err)

		_, parseErr := identity.ParseToken(raw)
		require.Error(t, parseErr)
	})
}

func TestToken_StaleWithin(t *testing.T) {
	margin := 30 * time.Second
	token := &identity.Token{Raw: "raw", ExpiresAt: time.Unix(1000, 0)}

	t.Run("inside the margin is stale", func(t *testing.T) {
		require.True(t, token.StaleWithin(time.Unix(975, 0), margin))
	})

	t.Run("exactly on the margin boundary is stale", func(t *testing.T) {
		require.True(t, token.StaleWithin(time.Unix(970, 0), margin))
	})

	t.Run("outside the margin is fresh", func(t *testing.T) {
		require.False(t, token.StaleWithin(time.Unix(965, 0), margin))
	})

	t.Run("already expired is stale", func(t *testing.T) {
		require.True(t, token.StaleWithin(time.Unix(2000, 0), margin))
	})
}
