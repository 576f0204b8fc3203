package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/linemeet/go-events-client/identity/fakeidentity"
	"github.com/linemeet/go-events-client/internal/config"
	"github.com/linemeet/go-events-client/storage/memstore"
)

func TestDraftSealing(t *testing.T) {
	seed, err := newSealSeed()
	require.NoError(t, err)
	key, err := deriveSealKey(seed)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		draft := Draft{"name": "Bonenkai", "date": "2026-12-20"}

		sealed, err := sealDraft(draft, key)
		require.NoError(t, err)

		opened, err := openDraft(sealed, key)
		require.NoError(t, err)
		require.Equal(t, draft, opened)
	})

	t.Run("wrong key fails", func(t *testing.T) {
		otherSeed, err := newSealSeed()
		require.NoError(t, err)
		otherKey, err := deriveSealKey(otherSeed)
		require.NoError(t, err)

		sealed, err := sealDraft(Draft{"name": "x"}, key)
		require.NoError(t, err)

		_, err = openDraft(sealed, otherKey)
		require.Error(t, err)
	})

	t.Run("garbage fails", func(t *testing.T) {
		_, err := openDraft("%%%", key)
		require.Error(t, err)

		_, err = openDraft("c2hvcnQ=", key) // valid base64, too short
		require.Error(t, err)
	})
}

func TestGuard_DraftRoundTrip(t *testing.T) {
	draft := Draft{
		"name":       "Hanami",
		"date":       "2026-04-01",
		"start_time": "18:30",
		"capacity":   "12",
	}

	t.Run("preserved draft restores exactly once", func(t *testing.T) {
		store := memstore.New()
		guard, err := NewGuard(fakeidentity.NewFakeSDK(), store, config.New())
		require.NoError(t, err)

		navigating, err := guard.ForceReloginOnce(true, draft)
		require.NoError(t, err)
		require.True(t, navigating)

		restored, ok, err := guard.RestoreDraftIfAny()
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, draft, restored)

		_, ok, err = guard.RestoreDraftIfAny()
		require.NoError(t, err)
		require.False(t, ok, "snapshot is removed after restoration")
	})

	t.Run("no draft saved when preserveDraft is false", func(t *testing.T) {
		guard, err := NewGuard(fakeidentity.NewFakeSDK(), memstore.New(), config.New())
		require.NoError(t, err)

		_, err = guard.ForceReloginOnce(false, draft)
		require.NoError(t, err)

		_, ok, err := guard.RestoreDraftIfAny()
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("tampered snapshot fails restore and is consumed", func(t *testing.T) {
		store := memstore.New()
		guard, err := NewGuard(fakeidentity.NewFakeSDK(), store, config.New())
		require.NoError(t, err)

		_, err = guard.ForceReloginOnce(true, draft)
		require.NoError(t, err)

		sealed, err := store.Get(draftKey)
		require.NoError(t, err)
		require.NoError(t, store.Set(draftKey, sealed+"AAAA"))

		_, _, err = guard.RestoreDraftIfAny()
		require.Error(t, err)

		_, ok, err := guard.RestoreDraftIfAny()
		require.NoError(t, err)
		require.False(t, ok, "damaged snapshot must not be offered again")
	})
}
