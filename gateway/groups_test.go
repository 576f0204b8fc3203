package gateway_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linemeet/go-events-client/gateway"
)

func TestClient_ValidateGroup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/groups/validate", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "C0123456789abcdef0123456789abcdef", body["group_id"])

		respondWith(http.StatusOK, `{"ok":true,"group":{"id":"C0123456789abcdef0123456789abcdef","name":"Futsal","member_count":9}}`)(w, r)
	}))
	defer srv.Close()

	group, err := gateway.New(srv.URL).ValidateGroup(context.Background(), testToken(), "C0123456789abcdef0123456789abcdef")
	require.NoError(t, err)
	require.NotNil(t, group)
	require.Equal(t, "Futsal", group.Name)
	require.Equal(t, 9, group.MemberCount)
}

func TestClient_SuggestGroups(t *testing.T) {
	srv := httptest.NewServer(respondWith(http.StatusOK, `{"ok":true,"items":[{"id":"Cffffffffffffffffffffffffffffffff","name":"Book club"}]}`))
	defer srv.Close()

	items, err := gateway.New(srv.URL).SuggestGroups(context.Background(), testToken())
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Book club", items[0].Name)
}
