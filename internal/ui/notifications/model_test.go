package notifications_test

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
	"github.com/nhle/admin-panel/internal/ui/notifications"
)

var fixedNow = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func newPage(t *testing.T) (notifications.Model, *notify.Store) {
	t.Helper()
	storage := notify.NewKVStorage(store.NewMemoryKV(), notify.NewBus(), notify.WithFallback(func() []model.Notification {
		return notify.SampleNotifications(fixedNow)
	}))
	s := notify.NewStore(context.Background(), storage)
	return notifications.New(s, keys.DefaultKeyMap(), i18n.MustNew(), i18n.English, 80, 40), s
}

func press(m notifications.Model, k string) (notifications.Model, tea.Cmd) {
	var msg tea.KeyMsg
	switch k {
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		msg = tea.KeyMsg{Type: tea.KeyShiftTab}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEscape}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	return m.Update(msg)
}

func ids(items []model.Notification) []string {
	out := make([]string, len(items))
	for i, n := range items {
		out[i] = n.ID
	}
	return out
}

func TestNew_ListsAllTab(t *testing.T) {
	m, _ := newPage(t)

	assert.Equal(t, model.TabAll, m.Tab())
	visible := m.Visible()
	require.Len(t, visible, 10)
	assert.NotContains(t, ids(visible), "n-0", "archived records stay out of the all tab")
	assert.NotContains(t, ids(visible), "n-7")
	assert.False(t, m.Capturing())
}

func TestTabCycling(t *testing.T) {
	m, _ := newPage(t)

	m, _ = press(m, "tab")
	assert.Equal(t, model.TabFavorites, m.Tab())
	assert.Equal(t, []string{"n-5", "n-10"}, ids(m.Visible()))

	m, _ = press(m, "tab")
	assert.Equal(t, model.TabArchived, m.Tab())
	assert.Equal(t, []string{"n-0", "n-7"}, ids(m.Visible()))

	m, _ = press(m, "tab")
	assert.Equal(t, model.TabAll, m.Tab())

	m, _ = press(m, "shift+tab")
	assert.Equal(t, model.TabArchived, m.Tab())
}

func TestToggleFavorite_PersistsAndToasts(t *testing.T) {
	m, s := newPage(t)
	first := m.Visible()[0]
	require.False(t, first.Favorite)

	m, cmd := press(m, "f")

	got, ok := s.Get(first.ID)
	require.True(t, ok)
	assert.True(t, got.Favorite)
	require.NotNil(t, cmd)
	assert.Equal(t, ui.ToastMsg{Text: "Favorite updated"}, cmd())

	_, _ = press(m, "f")
	got, _ = s.Get(first.ID)
	assert.False(t, got.Favorite)
}

func TestSearch_FiltersAsYouType(t *testing.T) {
	m, _ := newPage(t)

	m, _ = press(m, "/")
	assert.True(t, m.Capturing())

	m, _ = press(m, "11")
	assert.Equal(t, "11", m.Query())
	assert.Equal(t, []string{"n-10"}, ids(m.Visible()))

	m, _ = press(m, "enter")
	assert.False(t, m.Capturing())
	assert.Equal(t, "11", m.Query(), "enter keeps the query")

	m, _ = press(m, "/")
	m, _ = press(m, "esc")
	assert.Empty(t, m.Query())
	assert.Len(t, m.Visible(), 10)
}

func TestSelectAll_TogglesVisible(t *testing.T) {
	m, _ := newPage(t)

	m, _ = press(m, "a")
	assert.Len(t, m.Selection(), 10)

	m, _ = press(m, "a")
	assert.Empty(t, m.Selection())
}

func TestBulkRead_MarksSelectionAndClearsIt(t *testing.T) {
	m, s := newPage(t)
	visible := m.Visible()

	m, _ = press(m, " ")
	m, _ = press(m, "down")
	m, _ = press(m, " ")
	require.ElementsMatch(t, []string{visible[0].ID, visible[1].ID}, m.Selection())

	m, cmd := press(m, "R")
	assert.Empty(t, m.Selection())
	for _, id := range []string{visible[0].ID, visible[1].ID} {
		got, _ := s.Get(id)
		assert.True(t, got.Read, id)
	}
	require.NotNil(t, cmd)
	assert.IsType(t, ui.ToastMsg{}, cmd())
}

func TestDelete_AsksFirstAndCanBeCancelled(t *testing.T) {
	m, s := newPage(t)
	before := s.Len()

	m, _ = press(m, "d")
	assert.True(t, m.Capturing())

	m, _ = press(m, "esc")
	assert.False(t, m.Capturing())
	assert.Equal(t, before, s.Len())
}

func TestBulkDelete_NothingSelectedIsNoop(t *testing.T) {
	m, _ := newPage(t)

	m, cmd := press(m, "D")
	assert.False(t, m.Capturing())
	assert.Nil(t, cmd)
}

func TestRefresh_PicksUpStoreChanges(t *testing.T) {
	m, s := newPage(t)

	s.Add(context.Background(), "Deploy finished", "api v2 is live")
	m.Refresh()

	assert.Contains(t, ids(m.Visible()), s.Items()[s.Len()-1].ID)
	assert.Len(t, m.Visible(), 11)
}
