package popover_test

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/keys"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/store"
	"github.com/nhle/admin-panel/internal/ui"
	"github.com/nhle/admin-panel/internal/ui/popover"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

// newPair returns a popover and a second store over the same storage,
// standing in for the notifications page.
func newPair(t *testing.T) (popover.Model, *notify.Store, *notify.Store) {
	t.Helper()
	ctx := context.Background()
	storage := notify.NewKVStorage(store.NewMemoryKV(), notify.NewBus(), notify.WithFallback(func() []model.Notification {
		return notify.SampleNotifications(fixedNow)
	}))

	bell := notify.NewStore(ctx, storage)
	page := notify.NewStore(ctx, storage)
	t.Cleanup(bell.Follow(ctx))
	t.Cleanup(page.Follow(ctx))

	return popover.New(bell, keys.DefaultKeyMap(), i18n.MustNew(), i18n.English, 60, 20), bell, page
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_ListsRecentNonArchived(t *testing.T) {
	m, _, _ := newPair(t)

	items := m.Items()
	require.Len(t, items, popover.RecentLimit)
	for _, n := range items {
		assert.False(t, n.Archived, n.ID)
	}
	assert.Equal(t, 7, m.Unread())
}

func TestMarkRead_ReachesTheOtherStore(t *testing.T) {
	m, _, page := newPair(t)
	first := m.Items()[0]
	require.False(t, first.Read)

	m, cmd := m.Update(runes("m"))

	got, ok := page.Get(first.ID)
	require.True(t, ok)
	assert.True(t, got.Read)
	assert.Equal(t, 6, m.Unread())
	require.NotNil(t, cmd)
	assert.IsType(t, ui.ToastMsg{}, cmd())
}

func TestMarkAllRead_SkipsArchived(t *testing.T) {
	m, _, page := newPair(t)

	m, cmd := m.Update(runes("M"))

	assert.Equal(t, 0, m.Unread())
	assert.Equal(t, 0, page.Counts().Unread)
	require.NotNil(t, cmd)
	assert.Equal(t, ui.ToastMsg{Text: "7 notifications marked as read"}, cmd())

	archived, _ := page.Get("n-7")
	assert.False(t, archived.Read, "archived records keep their read flag")

	_, cmd = m.Update(runes("M"))
	assert.Nil(t, cmd, "nothing left to mark")
}

func TestKeys_CloseAndViewAll(t *testing.T) {
	m, _, _ := newPair(t)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, popover.PopoverCloseMsg{}, cmd())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.Equal(t, popover.ViewAllMsg{}, cmd())
}

func TestView_ShowsBadge(t *testing.T) {
	m, _, _ := newPair(t)
	assert.Contains(t, m.View(), "Notifications")
	assert.Contains(t, m.View(), "7")
}

func TestMarkAllRead_SingularToast(t *testing.T) {
	m, _, page := newPair(t)
	require.Equal(t, 6, page.MarkManyRead(context.Background(), []string{"n-1", "n-2", "n-4", "n-5", "n-8", "n-10"}))
	m.Refresh()
	require.Equal(t, 1, m.Unread())

	_, cmd := m.Update(runes("M"))
	require.NotNil(t, cmd)
	assert.Equal(t, ui.ToastMsg{Text: "1 notification marked as read"}, cmd())
}
