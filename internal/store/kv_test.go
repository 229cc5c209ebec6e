package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/admin-panel/internal/store"
	"github.com/nhle/admin-panel/tests/testutil"
)

func kvImplementations(t *testing.T) map[string]store.KV {
	t.Helper()
	return map[string]store.KV{
		"sqlite": testutil.NewTestStore(t),
		"memory": store.NewMemoryKV(),
	}
}

func TestKV_GetMissingKey(t *testing.T) {
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			v, ok, err := kv.GetItem(context.Background(), "missing")
			require.NoError(t, err)
			assert.False(t, ok)
			assert.Empty(t, v)

			rev, err := kv.Revision(context.Background(), "missing")
			require.NoError(t, err)
			assert.Zero(t, rev)
		})
	}
}

func TestKV_SetGetAndRevision(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.SetItem(ctx, "billing_plan", "pro"))

			v, ok, err := kv.GetItem(ctx, "billing_plan")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "pro", v)

			rev1, err := kv.Revision(ctx, "billing_plan")
			require.NoError(t, err)

			require.NoError(t, kv.SetItem(ctx, "billing_plan", "pro"))
			rev2, err := kv.Revision(ctx, "billing_plan")
			require.NoError(t, err)
			assert.Greater(t, rev2, rev1, "identical writes still bump the revision")
		})
	}
}

func TestKV_RemoveBumpsRevision(t *testing.T) {
	ctx := context.Background()
	for name, kv := range kvImplementations(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, kv.SetItem(ctx, "app_auth", `{"user":null,"token":null}`))
			before, err := kv.Revision(ctx, "app_auth")
			require.NoError(t, err)

			require.NoError(t, kv.RemoveItem(ctx, "app_auth"))

			_, ok, err := kv.GetItem(ctx, "app_auth")
			require.NoError(t, err)
			assert.False(t, ok)

			after, err := kv.Revision(ctx, "app_auth")
			require.NoError(t, err)
			assert.Greater(t, after, before)

			// Removing again is a no-op.
			require.NoError(t, kv.RemoveItem(ctx, "app_auth"))
			again, err := kv.Revision(ctx, "app_auth")
			require.NoError(t, err)
			assert.Equal(t, after, again)
		})
	}
}

func TestSQLiteStore_SharedFileAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := t.TempDir() + "/panel.db"

	a, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer a.Close()

	b, err := store.NewSQLiteStore(path)
	require.NoError(t, err)
	defer b.Close()

	require.NoError(t, a.SetItem(ctx, "app_notifications", "[]"))

	v, ok, err := b.GetItem(ctx, "app_notifications")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)

	revA, err := a.Revision(ctx, "app_notifications")
	require.NoError(t, err)
	revB, err := b.Revision(ctx, "app_notifications")
	require.NoError(t, err)
	assert.Equal(t, revA, revB)
}

func TestMemoryKV_Failures(t *testing.T) {
	ctx := context.Background()
	kv := store.NewMemoryKV()

	kv.FailWrites = true
	assert.Error(t, kv.SetItem(ctx, "k", "v"))
	assert.Error(t, kv.RemoveItem(ctx, "k"))

	kv.FailWrites = false
	kv.FailReads = true
	require.NoError(t, kv.SetItem(ctx, "k", "v"))
	_, _, err := kv.GetItem(ctx, "k")
	assert.Error(t, err)
	_, err = kv.Revision(ctx, "k")
	assert.Error(t, err)
}
