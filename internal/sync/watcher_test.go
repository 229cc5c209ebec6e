package sync_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/store"
	panelsync "github.com/nhle/admin-panel/internal/sync"
)

func receive(t *testing.T, cmd tea.Cmd) panelsync.ChangedMsg {
	t.Helper()
	require.NotNil(t, cmd)

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		changed, ok := msg.(panelsync.ChangedMsg)
		require.True(t, ok, "unexpected message %T", msg)
		return changed
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ChangedMsg")
		return panelsync.ChangedMsg{}
	}
}

func newWatcher(t *testing.T) (*panelsync.Watcher, *store.MemoryKV, *notify.Bus) {
	t.Helper()
	kv := store.NewMemoryKV()
	bus := notify.NewBus()
	w := panelsync.New(kv, bus, time.Hour)
	w.Watch(notify.StorageKey, notify.EventNotificationsChanged)
	t.Cleanup(w.Stop)
	return w, kv, bus
}

func TestWatcher_LocalWrite(t *testing.T) {
	w, kv, bus := newWatcher(t)
	cmd := w.Start()

	storage := notify.NewKVStorage(kv, bus)
	require.NoError(t, storage.Save(context.Background(), []model.Notification{{ID: "a"}}))

	msg := receive(t, cmd)
	assert.Equal(t, notify.StorageKey, msg.Key)
	assert.Equal(t, panelsync.OriginLocal, msg.Origin)
}

func TestWatcher_RemoteWriteRepublishes(t *testing.T) {
	w, kv, bus := newWatcher(t)

	signals := make(chan struct{}, 4)
	bus.Subscribe(notify.EventNotificationsChanged, func() { signals <- struct{}{} })

	cmd := w.Start()
	require.NoError(t, kv.SetItem(context.Background(), notify.StorageKey, "[]"))
	w.Refresh()

	msg := receive(t, cmd)
	assert.Equal(t, panelsync.OriginRemote, msg.Origin)

	select {
	case <-signals:
	case <-time.After(2 * time.Second):
		t.Fatal("remote write was not republished on the bus")
	}

	assert.Equal(t, panelsync.WatchIdle, w.Status().State)
	assert.False(t, w.Status().LastCheck.IsZero())
}

func TestWatcher_RemoteWriteReconcilesStore(t *testing.T) {
	ctx := context.Background()
	w, kv, bus := newWatcher(t)

	storage := notify.NewKVStorage(kv, bus)
	s := notify.NewStore(ctx, storage)
	defer s.Follow(ctx)()

	other := notify.NewKVStorage(kv, notify.NewBus())

	cmd := w.Start()
	require.NoError(t, other.Save(ctx, []model.Notification{{ID: "only"}}))
	w.Refresh()

	receive(t, cmd)
	assert.Equal(t, []model.Notification{{ID: "only"}}, s.Items())
}

func TestWatcher_ErrorStatus(t *testing.T) {
	w, kv, _ := newWatcher(t)
	w.Start()

	kv.FailReads = true
	w.Refresh()

	assert.Eventually(t, func() bool {
		return w.Status().State == panelsync.WatchError
	}, 2*time.Second, 10*time.Millisecond)
	assert.Error(t, w.Status().Error)
}

func TestWatcher_StartTwice(t *testing.T) {
	w, _, _ := newWatcher(t)
	require.NotNil(t, w.Start())
	assert.Nil(t, w.Start())
	w.Stop()
	w.Stop()
}
