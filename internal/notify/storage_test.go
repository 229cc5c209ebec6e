package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/store"
	"github.com/nhle/admin-panel/tests/testutil"
)

func TestKVStorage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)

	items := []model.Notification{
		{ID: "a", Title: "Invoice paid", Date: "01/02/2026, 10:00:00", Read: true},
		{ID: "b", Title: "New ticket", Body: "Subject: VPN", Date: "01/02/2026, 11:00:00", Favorite: true},
		{ID: "c", Title: "Old", Date: "01/01/2026, 08:00:00", Archived: true},
	}
	require.NoError(t, storage.Save(ctx, items))
	assert.Equal(t, items, storage.Load(ctx))
}

func TestKVStorage_EmptyListIsNotMissing(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)

	require.NoError(t, storage.Save(ctx, nil))
	assert.Empty(t, storage.Load(ctx))
}

func TestKVStorage_LoadFallsBack(t *testing.T) {
	ctx := context.Background()

	t.Run("malformed", func(t *testing.T) {
		storage, kv, _ := newStorage(t)
		require.NoError(t, kv.SetItem(ctx, notify.StorageKey, "[{"))
		assert.Equal(t, fixedSample(), storage.Load(ctx))
	})

	t.Run("unreadable", func(t *testing.T) {
		storage, kv, _ := newStorage(t)
		kv.FailReads = true
		assert.Equal(t, fixedSample(), storage.Load(ctx))
	})
}

func TestKVStorage_DefaultSampleIsDatedOnce(t *testing.T) {
	ctx := context.Background()
	clock := fixedNow
	tick := func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	storage := notify.NewKVStorage(store.NewMemoryKV(), notify.NewBus(), notify.WithClock(tick))

	page := notify.NewStore(ctx, storage)
	bell := notify.NewStore(ctx, storage)
	tick()

	assert.Equal(t, page.Items(), bell.Items())
	assert.Equal(t, storage.Load(ctx), storage.Load(ctx))
	assert.False(t, page.Reconcile(ctx), "untouched storage keeps the same sample")
	assert.Equal(t, fixedNow.Add(time.Minute).Format(notify.DateLayout), page.Items()[0].Date)
}

func TestKVStorage_SavePublishesOnlyOnSuccess(t *testing.T) {
	ctx := context.Background()
	storage, kv, _ := newStorage(t)

	var signals int
	unsubscribe := storage.Subscribe(func() { signals++ })

	require.NoError(t, storage.Save(ctx, fixedSample()))
	assert.Equal(t, 1, signals)

	kv.FailWrites = true
	assert.Error(t, storage.Save(ctx, fixedSample()))
	assert.Equal(t, 1, signals)

	kv.FailWrites = false
	unsubscribe()
	require.NoError(t, storage.Save(ctx, fixedSample()))
	assert.Equal(t, 1, signals)
}

func TestKVStorage_SharedSQLiteFile(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestStore(t)

	writer := notify.NewKVStorage(db, notify.NewBus(), notify.WithFallback(fixedSample))
	reader := notify.NewKVStorage(db, notify.NewBus(), notify.WithFallback(fixedSample))

	s := notify.NewStore(ctx, writer)
	s.DeleteOne(ctx, "n-3")

	got := reader.Load(ctx)
	assert.Len(t, got, notify.SampleSize-1)
}

func TestDecode(t *testing.T) {
	_, err := notify.Decode("null")
	assert.Error(t, err)

	_, err = notify.Decode(`"text"`)
	assert.Error(t, err)

	items, err := notify.Decode("[]")
	require.NoError(t, err)
	assert.Empty(t, items)
}
