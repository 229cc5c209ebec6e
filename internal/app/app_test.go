package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/admin-panel/internal/auth"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/store"
	appsync "github.com/nhle/admin-panel/internal/sync"
	"github.com/nhle/admin-panel/internal/ui"
	"github.com/nhle/admin-panel/internal/ui/authform"
	"github.com/nhle/admin-panel/internal/ui/command"
	"github.com/nhle/admin-panel/internal/ui/errorpage"
	"github.com/nhle/admin-panel/tests/testutil"
)

func newApp(t *testing.T, signedIn bool) (Model, *store.SQLiteStore) {
	t.Helper()
	s := testutil.NewTestStore(t)

	if signedIn {
		token := "token"
		err := auth.NewSession(s, notify.NewBus()).Save(context.Background(), model.AuthState{
			User:  &model.User{ID: 1, Name: "Ada", Email: "ada@example.com", Role: "admin"},
			Token: &token,
		})
		require.NoError(t, err)
	}

	dir := t.TempDir()
	cfg := model.DefaultAppConfig()
	cfg.Storage.ExportDir = filepath.Join(dir, "exports")
	cfg.Storage.OutboxDir = filepath.Join(dir, "outbox")
	cfg.Display.SyncIntervalMS = int(time.Hour / time.Millisecond)

	m := New(s, Options{Config: cfg, ConfigPath: filepath.Join(dir, "config.yaml")})
	t.Cleanup(func() { m.quit() })

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	return m, s
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(Model)
	require.True(t, ok)
	return am, cmd
}

func press(s string) tea.KeyMsg {
	switch s {
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "ctrl+o":
		return tea.KeyMsg{Type: tea.KeyCtrlO}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNew_StartsOnLandingWithoutSession(t *testing.T) {
	m, _ := newApp(t, false)

	assert.Equal(t, ViewLanding, m.currentView)
	assert.Nil(t, m.user)
	assert.Contains(t, m.keyHints(), "log in")
	assert.Contains(t, m.View(), "Run your business from one panel")
}

func TestNew_StartsOnDashboardWithSession(t *testing.T) {
	m, _ := newApp(t, true)

	assert.Equal(t, ViewNotifications, m.currentView)
	require.NotNil(t, m.user)
	assert.Equal(t, "Ada", m.user.Name)
	assert.Contains(t, m.headerTitle(), "Notifications")
}

func TestLanding_OpensLoginForm(t *testing.T) {
	m, _ := newApp(t, false)

	m, cmd := send(t, m, press("l"))
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	assert.Equal(t, ViewAuth, m.currentView)
	assert.Equal(t, authform.ModeLogin, m.authView.Mode())
	assert.Equal(t, "/login", m.route())

	m, _ = send(t, m, authform.AuthCloseMsg{})
	assert.Equal(t, ViewLanding, m.currentView)
}

func TestDashboard_RequiresSession(t *testing.T) {
	m, _ := newApp(t, false)

	m, _ = send(t, m, press("2"))
	assert.Equal(t, ViewLanding, m.currentView, "page keys are ignored when signed out")

	m, _ = send(t, m, press(":"))
	assert.Equal(t, ViewCommand, m.currentView)
	m, _ = runCommand(t, m, "billing")
	assert.Equal(t, ViewError, m.currentView)
	assert.Equal(t, 401, m.errorView.Page().Code)
}

func TestPageKeys_SwitchPages(t *testing.T) {
	m, _ := newApp(t, true)

	m, _ = send(t, m, press("2"))
	assert.Equal(t, ViewBilling, m.currentView)

	m, cmd := send(t, m, press("3"))
	assert.Equal(t, ViewTickets, m.currentView)
	assert.NotNil(t, cmd, "the ticket list is reloaded")

	m, _ = send(t, m, press("b"))
	assert.Equal(t, ViewPopover, m.currentView)

	m, _ = send(t, m, press("b"))
	assert.Equal(t, ViewTickets, m.currentView)
}

func TestCapturingPage_SuppressesGlobalKeys(t *testing.T) {
	m, _ := newApp(t, true)

	m, _ = send(t, m, press("/"))
	require.True(t, m.capturing())

	m, _ = send(t, m, press("2"))
	assert.Equal(t, ViewNotifications, m.currentView)
	assert.Equal(t, "2", m.notificationsView.Query())

	m, _ = send(t, m, press("q"))
	assert.Equal(t, ViewNotifications, m.currentView)
	assert.Equal(t, "2q", m.notificationsView.Query())
}

func TestLogout_ClearsSession(t *testing.T) {
	m, s := newApp(t, true)

	m, cmd := send(t, m, press("ctrl+o"))
	assert.Equal(t, ViewLanding, m.currentView)
	assert.Nil(t, m.user)

	require.NotNil(t, cmd)
	cmd()
	assert.Nil(t, auth.NewSession(s, notify.NewBus()).Load(context.Background()).User)
}

func TestExecuteCommand_ErrorPages(t *testing.T) {
	m, _ := newApp(t, true)

	m, _ = runCommand(t, m, "error 503")
	assert.Equal(t, ViewError, m.currentView)
	assert.Equal(t, 503, m.errorView.Page().Code)
	assert.Equal(t, []errorpage.Action{errorpage.ActionHome, errorpage.ActionRetry}, m.errorView.Actions())

	m, _ = send(t, m, press("esc"))
	assert.Equal(t, ViewNotifications, m.currentView)

	m, _ = runCommand(t, m, "no such page")
	assert.Equal(t, 404, m.errorView.Page().Code)

	m, _ = send(t, m, errorpage.ActionMsg{Code: 404, Action: errorpage.ActionContact})
	assert.Equal(t, ViewTickets, m.currentView)
}

func TestExecuteCommand_Language(t *testing.T) {
	m, _ := newApp(t, true)

	m, cmd := runCommand(t, m, "lang id")
	assert.Equal(t, "id", m.lang)
	require.NotNil(t, cmd)
	cmd()
	assert.Equal(t, "id", m.settings.Language())
	assert.Contains(t, m.headerTitle(), "Notifikasi")

	m, cmd = runCommand(t, m, "lang fr")
	assert.Equal(t, "id", m.lang)
	require.NotNil(t, cmd)
	assert.IsType(t, ui.ToastMsg{}, cmd())
}

func TestToast_OnlyLatestExpires(t *testing.T) {
	m, _ := newApp(t, true)

	m, _ = send(t, m, ui.ToastMsg{Text: "first"})
	first := m.toastSeq
	m, _ = send(t, m, ui.ToastMsg{Text: "second"})

	m, _ = send(t, m, ui.ToastExpiredMsg{Seq: first})
	assert.Equal(t, "second", m.toast)
	assert.Contains(t, m.statusText(), "second")

	m, _ = send(t, m, ui.ToastExpiredMsg{Seq: m.toastSeq})
	assert.Empty(t, m.toast)
}

func TestChangedMsg_RemoteLogout(t *testing.T) {
	m, s := newApp(t, true)

	other := auth.NewSession(s, notify.NewBus())
	require.NoError(t, other.Clear(context.Background()))

	m, _ = send(t, m, appsync.ChangedMsg{Key: auth.StorageKey, Origin: appsync.OriginRemote})
	assert.Equal(t, ViewLanding, m.currentView)
	assert.Nil(t, m.user)
}

func TestWatcher_FollowsOtherInstance(t *testing.T) {
	m, s := newApp(t, true)
	require.Equal(t, 7, m.popoverView.Unread())

	wait := m.watcher.Start()

	ctx := context.Background()
	other := notify.NewStore(ctx, notify.NewKVStorage(s, notify.NewBus()))
	require.Equal(t, 7, other.MarkAllRead(ctx))

	m.watcher.Refresh()
	msg := receive(t, wait)
	assert.Equal(t, notify.StorageKey, msg.Key)

	m, _ = send(t, m, msg)
	assert.Equal(t, 0, m.popoverView.Unread())
	for _, n := range m.notificationsView.Visible() {
		assert.True(t, n.Read, n.ID)
	}
}

// runCommand opens the palette and executes s.
func runCommand(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()
	m, _ = send(t, m, press(":"))
	require.Equal(t, ViewCommand, m.currentView)
	return send(t, m, command.CommandMsg(s))
}

func receive(t *testing.T, cmd tea.Cmd) appsync.ChangedMsg {
	t.Helper()
	require.NotNil(t, cmd)

	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()

	select {
	case msg := <-ch:
		changed, ok := msg.(appsync.ChangedMsg)
		require.True(t, ok, "unexpected message %T", msg)
		return changed
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ChangedMsg")
		return appsync.ChangedMsg{}
	}
}
