package gateway_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linemeet/go-events-client/events"
	"github.com/linemeet/go-events-client/gateway"
	"github.com/linemeet/go-events-client/identity"
	"github.com/linemeet/go-events-client/internal/apperrors"
)

func testToken() *identity.Token {
	return &identity.Token{Raw: "raw-token", Subject: "U1234"}
}

func respondWith(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func TestErrorClassification(t *testing.T) {
	ctx := context.Background()

	call := func(t *testing.T, handler http.HandlerFunc) error {
		t.Helper()
		srv := httptest.NewServer(handler)
		defer srv.Close()
		return gateway.New(srv.URL).VerifyIDToken(ctx, testToken())
	}

	t.Run("401 is AuthExpired regardless of body", func(t *testing.T) {
		err := call(t, respondWith(http.StatusUnauthorized, `{}`))
		require.True(t, apperrors.Is(err, apperrors.ErrAuthExpired))
	})

	t.Run("expired-token reason on 400 is AuthExpired, not a validation failure", func(t *testing.T) {
		err := call(t, respondWith(http.StatusBadRequest, `{"ok":false,"reason":"IdToken expired."}`))
		require.True(t, apperrors.Is(err, apperrors.ErrAuthExpired))
		require.False(t, apperrors.Is(err, apperrors.ErrValidation))
	})

	t.Run("invalid_token reason is AuthExpired", func(t *testing.T) {
		err := call(t, respondWith(http.StatusOK, `{"ok":false,"reason":"invalid_token"}`))
		require.True(t, apperrors.Is(err, apperrors.ErrAuthExpired))
	})

	t.Run("invalid token with space is AuthExpired", func(t *testing.T) {
		err := call(t, respondWith(http.StatusForbidden, `{"ok":false,"reason":"Invalid token supplied"}`))
		require.True(t, apperrors.Is(err, apperrors.ErrAuthExpired))
	})

	t.Run("404 is NotFound", func(t *testing.T) {
		err := call(t, respondWith(http.StatusNotFound, `{"ok":false}`))
		require.True(t, apperrors.Is(err, apperrors.ErrNotFound))
	})

	t.Run("unparseable body falls back to status", func(t *testing.T) {
		err := call(t, respondWith(http.StatusInternalServerError, `<html>boom</html>`))
		require.True(t, apperrors.Is(err, apperrors.ErrHTTPFailure))
	})

	t.Run("2xx with ok=false and unrecognized reason is a generic failure", func(t *testing.T) {
		err := call(t, respondWith(http.StatusOK, `{"ok":false,"reason":"capacity exceeded"}`))
		require.True(t, apperrors.Is(err, apperrors.ErrHTTPFailure))
		require.Contains(t, err.Error(), "capacity exceeded")
	})

	t.Run("unreachable server is a network failure", func(t *testing.T) {
		srv := httptest.NewServer(respondWith(http.StatusOK, `{"ok":true}`))
		srv.Close() // connection refused from here on

		err := gateway.New(srv.URL).VerifyIDToken(ctx, testToken())
		require.True(t, apperrors.Is(err, apperrors.ErrNetwork))
	})

	t.Run("success", func(t *testing.T) {
		err := call(t, respondWith(http.StatusOK, `{"ok":true}`))
		require.NoError(t, err)
	})
}

func TestClient_ListEvents(t *testing.T) {
	scope := events.ScopeID("C0123456789abcdef0123456789abcdef")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/events", r.URL.Path)
		require.Equal(t, string(scope), r.URL.Query().Get("scope_id"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))

		respondWith(http.StatusOK, `{"ok":true,"items":[
			{"id":7,"name":"Hanami","date":"2026-04-01","capacity":12},
			{"id":8,"name":"Bonenkai","date":"2026-12-20","capacity":null}
		]}`)(w, r)
	}))
	defer srv.Close()

	items, err := gateway.New(srv.URL).ListEvents(context.Background(), scope)
	require.NoError(t, err)
	require.Len(t, items, 2)
	require.Equal(t, int64(7), items[0].ID)
	require.Equal(t, "Hanami", items[0].Name)
	require.NotNil(t, items[0].Capacity)
	require.Equal(t, 12, *items[0].Capacity)
	require.Nil(t, items[1].Capacity, "null capacity means unlimited")
}
