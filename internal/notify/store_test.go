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
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedSample() []model.Notification {
	return notify.SampleNotifications(fixedNow)
}

func newStorage(t *testing.T) (*notify.KVStorage, *store.MemoryKV, *notify.Bus) {
	t.Helper()
	kv := store.NewMemoryKV()
	bus := notify.NewBus()
	return notify.NewKVStorage(kv, bus, notify.WithFallback(fixedSample)), kv, bus
}

func find(t *testing.T, items []model.Notification, id string) model.Notification {
	t.Helper()
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	t.Fatalf("notification %s not found", id)
	return model.Notification{}
}

func TestSampleCounts(t *testing.T) {
	items := fixedSample()
	require.Len(t, items, notify.SampleSize)

	var wantUnread, wantFav int
	for _, it := range items {
		if !it.Archived && !it.Read {
			wantUnread++
		}
		if it.Favorite && !it.Archived {
			wantFav++
		}
	}

	c := notify.Counts(items)
	assert.Equal(t, 2, c.Archived)
	assert.Equal(t, 10, c.All)
	assert.Equal(t, wantFav, c.Fav)
	assert.Equal(t, wantUnread, c.Unread)
	assert.Equal(t, 2, c.Fav, "n-0 is archived so only n-5 and n-10 count")
	assert.Equal(t, 7, c.Unread)
}

func TestNewStore_SeedsFromSampleWhenEmpty(t *testing.T) {
	storage, kv, _ := newStorage(t)

	s := notify.NewStore(context.Background(), storage)
	assert.Equal(t, fixedSample(), s.Items())

	_, ok, err := kv.GetItem(context.Background(), notify.StorageKey)
	require.NoError(t, err)
	assert.False(t, ok, "mounting must not write")
}

func TestToggleFavorite_DoubleToggleRestores(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)

	before := find(t, s.Items(), "n-1").Favorite
	require.True(t, s.ToggleFavorite(ctx, "n-1"))
	assert.Equal(t, !before, find(t, s.Items(), "n-1").Favorite)
	require.True(t, s.ToggleFavorite(ctx, "n-1"))
	assert.Equal(t, before, find(t, s.Items(), "n-1").Favorite)
}

func TestToggles_PreserveCountAndPersist(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)

	s.ToggleRead(ctx, "n-2")
	s.ToggleArchive(ctx, "n-4")
	s.ToggleFavorite(ctx, "n-6")
	assert.Equal(t, notify.SampleSize, s.Len())

	persisted := storage.Load(ctx)
	assert.Equal(t, s.Items(), persisted)
	assert.True(t, find(t, persisted, "n-2").Read)
	assert.True(t, find(t, persisted, "n-4").Archived)
	assert.True(t, find(t, persisted, "n-6").Favorite)
}

func TestMutations_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	storage, kv, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)

	assert.False(t, s.ToggleRead(ctx, "missing"))
	assert.False(t, s.ToggleArchive(ctx, "missing"))
	assert.False(t, s.ToggleFavorite(ctx, "missing"))
	assert.False(t, s.DeleteOne(ctx, "missing"))
	assert.Zero(t, s.DeleteMany(ctx, []string{"x", "y"}))
	assert.Zero(t, s.MarkManyRead(ctx, nil))

	assert.Equal(t, fixedSample(), s.Items())
	rev, err := kv.Revision(ctx, notify.StorageKey)
	require.NoError(t, err)
	assert.Zero(t, rev)
}

func TestDeleteMany_RemovesExactlyGivenIDs(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)

	removed := s.DeleteMany(ctx, []string{"n-1", "n-2", "missing"})
	assert.Equal(t, 2, removed)
	assert.Equal(t, notify.SampleSize-2, s.Len())
	_, ok := s.Get("n-1")
	assert.False(t, ok)
}

func TestDeleteOne_DoesNotResurrect(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)

	require.True(t, s.DeleteOne(ctx, "n-3"))

	assert.False(t, s.Reconcile(ctx))
	_, ok := s.Get("n-3")
	assert.False(t, ok)

	reloaded := notify.NewStore(ctx, storage)
	_, ok = reloaded.Get("n-3")
	assert.False(t, ok)
	assert.Equal(t, notify.SampleSize-1, reloaded.Len())
}

func TestMarkAllRead_SkipsArchived(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)

	affected := s.MarkAllRead(ctx)
	assert.Equal(t, 7, affected)

	for _, it := range s.Items() {
		if it.Archived {
			orig := find(t, fixedSample(), it.ID)
			assert.Equal(t, orig.Read, it.Read, "archived %s must keep its read flag", it.ID)
			continue
		}
		assert.True(t, it.Read, it.ID)
	}
	assert.Zero(t, s.Counts().Unread)
}

func TestMarkManyRead(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)

	n := s.MarkManyRead(ctx, []string{"n-1", "n-2", "n-3"})
	assert.Equal(t, 2, n, "n-3 was already read")
	for _, id := range []string{"n-1", "n-2", "n-3"} {
		assert.True(t, find(t, s.Items(), id).Read)
	}
	assert.False(t, s.MarkRead(ctx, "n-3"))
	assert.True(t, s.MarkRead(ctx, "n-4"))
}

func TestMarkRead_AlreadyReadDoesNotWrite(t *testing.T) {
	ctx := context.Background()
	storage, kv, bus := newStorage(t)
	s := notify.NewStore(ctx, storage)

	signals := 0
	t.Cleanup(bus.Subscribe(notify.EventNotificationsChanged, func() { signals++ }))

	require.Equal(t, 7, s.MarkAllRead(ctx))
	rev, err := kv.Revision(ctx, notify.StorageKey)
	require.NoError(t, err)
	require.Equal(t, 1, signals)

	assert.Zero(t, s.MarkAllRead(ctx))
	assert.Zero(t, s.MarkManyRead(ctx, []string{"n-1", "n-2"}))
	assert.False(t, s.MarkRead(ctx, "n-1"))

	after, err := kv.Revision(ctx, notify.StorageKey)
	require.NoError(t, err)
	assert.Equal(t, rev, after)
	assert.Equal(t, 1, signals)
}

func TestAdd_AppendsUnread(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)

	n := s.Add(ctx, "Ticket created", "Printer on fire")
	assert.NotEmpty(t, n.ID)
	assert.False(t, n.Read)
	assert.False(t, n.Archived)

	items := s.Items()
	assert.Equal(t, n, items[len(items)-1])
	assert.Equal(t, s.Items(), storage.Load(ctx))
}

func TestReconcile_TwoConsumersConverge(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)

	popover := notify.NewStore(ctx, storage)
	page := notify.NewStore(ctx, storage)
	stop := popover.Follow(ctx)
	defer stop()

	page.ToggleRead(ctx, "n-1")
	assert.Equal(t, page.Items(), popover.Items())

	page.DeleteOne(ctx, "n-3")
	_, ok := popover.Get("n-3")
	assert.False(t, ok)
	assert.Equal(t, page.Counts(), popover.Counts())
}

func TestReconcile_IdenticalContentIsNoop(t *testing.T) {
	ctx := context.Background()
	storage, _, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)

	assert.False(t, s.Reconcile(ctx))
	require.NoError(t, storage.Save(ctx, s.Items()))
	assert.False(t, s.Reconcile(ctx))
}

func TestReconcile_MalformedKeepsLocal(t *testing.T) {
	ctx := context.Background()
	storage, kv, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)
	s.ToggleRead(ctx, "n-1")
	local := s.Items()

	for _, raw := range []string{"{not json", "null", `{"id":"n-1"}`} {
		require.NoError(t, kv.SetItem(ctx, notify.StorageKey, raw))
		assert.False(t, s.Reconcile(ctx), raw)
		assert.Equal(t, local, s.Items(), raw)
	}
}

func TestReconcile_RemovedKeyFallsBackToSample(t *testing.T) {
	ctx := context.Background()
	storage, kv, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)
	s.DeleteOne(ctx, "n-0")

	require.NoError(t, kv.RemoveItem(ctx, notify.StorageKey))
	assert.True(t, s.Reconcile(ctx))
	assert.Equal(t, fixedSample(), s.Items())
}

func TestSaveFailure_KeepsLocalChange(t *testing.T) {
	ctx := context.Background()
	storage, kv, _ := newStorage(t)
	s := notify.NewStore(ctx, storage)

	kv.FailWrites = true
	require.True(t, s.ToggleFavorite(ctx, "n-1"))
	assert.True(t, find(t, s.Items(), "n-1").Favorite)

	kv.FailWrites = false
	assert.False(t, find(t, storage.Load(ctx), "n-1").Favorite)
}
