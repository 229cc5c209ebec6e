package app

import (
	"context"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/admin-panel/internal/auth"
	"github.com/nhle/admin-panel/internal/billing"
	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/settings"
	"github.com/nhle/admin-panel/internal/store"
	"github.com/nhle/admin-panel/internal/support"
	appsync "github.com/nhle/admin-panel/internal/sync"
	"github.com/nhle/admin-panel/internal/theme"
	"github.com/nhle/admin-panel/internal/ui"
	"github.com/nhle/admin-panel/internal/ui/account"
	"github.com/nhle/admin-panel/internal/ui/authform"
	billingview "github.com/nhle/admin-panel/internal/ui/billing"
	"github.com/nhle/admin-panel/internal/ui/command"
	"github.com/nhle/admin-panel/internal/ui/errorpage"
	helpview "github.com/nhle/admin-panel/internal/ui/help"
	"github.com/nhle/admin-panel/internal/ui/landing"
	"github.com/nhle/admin-panel/internal/ui/notifications"
	"github.com/nhle/admin-panel/internal/ui/popover"
	settingsview "github.com/nhle/admin-panel/internal/ui/settings"
	"github.com/nhle/admin-panel/internal/ui/tickets"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewLanding ViewState = iota
	ViewAuth
	ViewNotifications
	ViewBilling
	ViewTickets
	ViewSettings
	ViewAccount
	ViewPopover
	ViewHelp
	ViewCommand
	ViewError
)

// pages lists the dashboard pages in sidebar order.
var pages = []ViewState{
	ViewNotifications,
	ViewBilling,
	ViewTickets,
	ViewSettings,
	ViewAccount,
}

// routes maps each view to the path its title is derived from.
var routes = map[ViewState]string{
	ViewLanding:       "/",
	ViewNotifications: "/dashboard/notifications",
	ViewBilling:       "/dashboard/billing",
	ViewTickets:       "/dashboard/gethelp",
	ViewSettings:      "/dashboard/settings",
	ViewAccount:       "/dashboard/account",
}

// Options holds what New needs besides the store.
type Options struct {
	Config     *model.AppConfig
	ConfigPath string
	Catalog    *i18n.Catalog
}

// Model is the root Bubble Tea model that manages view routing,
// layout, and access to the services.
type Model struct {
	currentView  ViewState
	previousView ViewState
	lastPage     ViewState
	layout       ui.Layout
	keys         *KeyMap
	catalog      *i18n.Catalog
	lang         string
	user         *model.User

	watcher   *appsync.Watcher
	pageStore *notify.Store
	bellStore *notify.Store
	stops     []func()

	auth     *auth.Service
	settings *settings.Service

	landingView       landing.Model
	authView          authform.Model
	notificationsView notifications.Model
	popoverView       popover.Model
	billingView       billingview.Model
	ticketsView       tickets.Model
	settingsView      settingsview.Model
	accountView       account.Model
	helpView          helpview.Model
	commandView       command.Model
	errorView         errorpage.Model

	toast    string
	toastSeq int
	ready    bool
}

// New creates the root application model over s.
//
// The notifications page and the bell popover each own a notify.Store
// over the same storage key; both follow the bus so a change made in one
// shows up in the other.
func New(s *store.SQLiteStore, opts Options) Model {
	ctx := context.Background()
	cfg := opts.Config
	if cfg == nil {
		cfg = model.DefaultAppConfig()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = i18n.MustNew()
	}
	lang := cfg.Display.Language
	if !supported(catalog, lang) {
		lang = i18n.English
	}

	keys := DefaultKeyMap()
	bus := notify.NewBus()
	storage := notify.NewKVStorage(s, bus)
	pageStore := notify.NewStore(ctx, storage)
	bellStore := notify.NewStore(ctx, storage)

	w := appsync.New(s, bus, time.Duration(cfg.Display.SyncIntervalMS)*time.Millisecond)
	w.Watch(notify.StorageKey, notify.EventNotificationsChanged)
	w.Watch(billing.PlanKey, billing.EventPlanChanged)
	w.Watch(auth.StorageKey, auth.EventAuthChanged)

	authSvc := auth.NewService(auth.NewClient(cfg.Auth.BaseURL), auth.NewSession(s, bus))
	billingSvc := billing.NewService(s, bus, pageStore, time.Now())
	supportSvc := support.NewService(s, pageStore)
	settingsSvc := settings.NewService(opts.ConfigPath, cfg)

	ticketOpts := tickets.Options{
		OutboxDir: cfg.Storage.OutboxDir,
		From:      cfg.Support.FromAddress,
		To:        cfg.Support.ToAddress,
	}

	m := Model{
		currentView:       ViewLanding,
		lastPage:          ViewNotifications,
		keys:              keys,
		catalog:           catalog,
		lang:              lang,
		watcher:           w,
		pageStore:         pageStore,
		bellStore:         bellStore,
		auth:              authSvc,
		settings:          settingsSvc,
		landingView:       landing.New(catalog, lang, 80, 24),
		authView:          authform.New(authSvc, catalog, lang, 80, 24),
		notificationsView: notifications.New(pageStore, keys, catalog, lang, 80, 24),
		popoverView:       popover.New(bellStore, keys, catalog, lang, 48, 24),
		billingView:       billingview.New(billingSvc, keys, catalog, lang, cfg.Storage.ExportDir, 80, 24),
		ticketsView:       tickets.New(supportSvc, keys, catalog, lang, ticketOpts, 80, 24),
		settingsView:      settingsview.New(settingsSvc, keys, catalog, lang, 80, 24),
		accountView:       account.New(settingsSvc, keys, catalog, lang, 80, 24),
		helpView:          helpview.New(keys, 80, 24),
		commandView:       command.New(commandNames, 80, 24),
		errorView:         errorpage.New(keys, catalog, lang, 80, 24),
	}
	m.stops = []func(){pageStore.Follow(ctx), bellStore.Follow(ctx)}

	if u := authSvc.Current(ctx); u != nil {
		m.user = u
		m.accountView.SetUser(u)
		m.currentView = ViewNotifications
	}
	return m
}

// Init starts the watcher and loads the ticket list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.watcher.Start(),
		m.ticketsView.Init(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		m.resize()
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case appsync.ChangedMsg:
		cmd := m.handleChange(msg)
		return m, tea.Batch(cmd, m.watcher.WaitForNext())

	case ui.ToastMsg:
		m.toastSeq++
		m.toast = msg.Text
		return m, ui.ExpireToast(m.toastSeq)

	case ui.ToastExpiredMsg:
		if msg.Seq == m.toastSeq {
			m.toast = ""
		}
		return m, nil

	case landing.LoginMsg:
		cmd := m.openAuth(authform.ModeLogin)
		return m, cmd

	case landing.SignupMsg:
		cmd := m.openAuth(authform.ModeSignup)
		return m, cmd

	case authform.LoggedInMsg:
		m.setUser(m.auth.Current(context.Background()))
		cmd := m.showPage(ViewNotifications)
		return m, cmd

	case authform.AuthCloseMsg:
		m.currentView = ViewLanding
		return m, nil

	case popover.PopoverCloseMsg:
		m.currentView = m.lastPage
		return m, nil

	case popover.ViewAllMsg:
		cmd := m.showPage(ViewNotifications)
		return m, cmd

	case tickets.TicketCreatedMsg:
		m.refreshNotifications()
		return m, nil

	case errorpage.ActionMsg:
		cmd := m.handleErrorAction(msg)
		return m, cmd

	case command.CommandMsg:
		m.currentView = m.previousView
		cmd := m.executeCommand(string(msg))
		return m, cmd

	case tea.KeyMsg:
		if handled, cmd := m.handleKey(msg); handled {
			return m, cmd
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// handleChange brings the views up to date after a watched key was
// written, here or by another running instance.
func (m *Model) handleChange(msg appsync.ChangedMsg) tea.Cmd {
	switch msg.Key {
	case notify.StorageKey:
		m.refreshNotifications()
	case billing.PlanKey:
		m.billingView.Refresh()
	case auth.StorageKey:
		return m.syncSession()
	}
	return nil
}

// syncSession follows a login or logout made by another instance.
func (m *Model) syncSession() tea.Cmd {
	wasSignedIn := m.user != nil
	m.setUser(m.auth.Current(context.Background()))

	switch {
	case m.user == nil && wasSignedIn:
		m.currentView = ViewLanding
	case m.user != nil && !wasSignedIn && (m.currentView == ViewLanding || m.currentView == ViewAuth):
		return m.showPage(ViewNotifications)
	}
	return nil
}

func (m *Model) setUser(u *model.User) {
	m.user = u
	m.accountView.SetUser(u)
}

func (m *Model) refreshNotifications() {
	m.notificationsView.Refresh()
	m.popoverView.Refresh()
}

// openAuth shows the login or signup form.
func (m *Model) openAuth(mode authform.Mode) tea.Cmd {
	m.currentView = ViewAuth
	return m.authView.Start(mode)
}

// showPage switches to a dashboard page, or to the 401 page when nobody
// is signed in.
func (m *Model) showPage(v ViewState) tea.Cmd {
	if m.user == nil {
		m.showError(401)
		return nil
	}
	m.currentView = v
	m.lastPage = v

	switch v {
	case ViewNotifications:
		m.notificationsView.Refresh()
	case ViewBilling:
		m.billingView.Refresh()
	case ViewTickets:
		return m.ticketsView.Init()
	}
	return nil
}

// showError replaces the screen with the error page for code.
func (m *Model) showError(code int) {
	if m.currentView != ViewError {
		m.previousView = m.currentView
	}
	m.errorView.Show(code)
	m.currentView = ViewError
}

// leaveError returns to where the user was before the error page.
func (m *Model) leaveError() {
	switch {
	case m.previousView == ViewError, m.previousView == ViewHelp, m.previousView == ViewCommand:
		m.currentView = ViewLanding
	case isPage(m.previousView) && m.user == nil:
		m.currentView = ViewLanding
	default:
		m.currentView = m.previousView
	}
}

func (m *Model) handleErrorAction(msg errorpage.ActionMsg) tea.Cmd {
	switch msg.Action {
	case errorpage.ActionContact:
		if m.user != nil {
			return m.showPage(ViewTickets)
		}
		m.currentView = ViewLanding
	case errorpage.ActionRetry:
		m.leaveError()
	default:
		if m.user != nil {
			return m.showPage(m.lastPage)
		}
		m.currentView = ViewLanding
	}
	return nil
}

// logout clears the session and returns to the landing page.
func (m *Model) logout() tea.Cmd {
	svc := m.auth
	m.setUser(nil)
	m.currentView = ViewLanding
	return func() tea.Msg {
		if err := svc.Logout(context.Background()); err != nil {
			log.Printf("app: logout: %v", err)
		}
		return nil
	}
}

// setLanguage switches every view to lang and saves the choice.
func (m *Model) setLanguage(lang string) tea.Cmd {
	if !supported(m.catalog, lang) {
		return ui.Toast("unknown language: " + lang)
	}
	m.lang = lang
	m.landingView.SetLanguage(lang)
	m.authView.SetLanguage(lang)
	m.notificationsView.SetLanguage(lang)
	m.popoverView.SetLanguage(lang)
	m.billingView.SetLanguage(lang)
	m.ticketsView.SetLanguage(lang)
	m.settingsView.SetLanguage(lang)
	m.accountView.SetLanguage(lang)
	m.errorView.SetLanguage(lang)

	svc := m.settings
	return func() tea.Msg {
		if err := svc.SaveLanguage(lang); err != nil {
			log.Printf("app: saving language: %v", err)
		}
		return nil
	}
}

// quit stops background work and exits.
func (m *Model) quit() tea.Cmd {
	m.watcher.Stop()
	for _, stop := range m.stops {
		stop()
	}
	m.stops = nil
	return tea.Quit
}

// capturing reports whether the active view consumes all keys, so that
// global shortcuts must not fire.
func (m Model) capturing() bool {
	switch m.currentView {
	case ViewAuth, ViewCommand:
		return true
	case ViewNotifications:
		return m.notificationsView.Capturing()
	case ViewBilling:
		return m.billingView.Capturing()
	case ViewTickets:
		return m.ticketsView.Capturing()
	case ViewSettings:
		return m.settingsView.Capturing()
	case ViewAccount:
		return m.accountView.Capturing()
	}
	return false
}

// resize hands the new terminal size to every view.
func (m *Model) resize() {
	w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
	m.landingView.SetSize(w, h)
	m.authView.SetSize(w, h)
	m.helpView.SetSize(w, h)
	m.commandView.SetSize(w, h)
	m.errorView.SetSize(w, h)

	pw := m.layout.PageWidth()
	m.notificationsView.SetSize(pw, h)
	m.billingView.SetSize(pw, h)
	m.ticketsView.SetSize(pw, h)
	m.settingsView.SetSize(pw, h)
	m.accountView.SetSize(pw, h)

	popoverWidth := pw
	if popoverWidth > 56 {
		popoverWidth = 56
	}
	m.popoverView.SetSize(popoverWidth, h)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewLanding:
		m.landingView, cmd = m.landingView.Update(msg)
	case ViewAuth:
		m.authView, cmd = m.authView.Update(msg)
	case ViewNotifications:
		m.notificationsView, cmd = m.notificationsView.Update(msg)
	case ViewBilling:
		m.billingView, cmd = m.billingView.Update(msg)
	case ViewTickets:
		m.ticketsView, cmd = m.ticketsView.Update(msg)
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	case ViewAccount:
		m.accountView, cmd = m.accountView.Update(msg)
	case ViewPopover:
		m.popoverView, cmd = m.popoverView.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewError:
		m.errorView, cmd = m.errorView.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader(m.headerTitle(), m.syncStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusText())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
// Dashboard pages and the popover are drawn next to the sidebar.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewLanding:
		return m.landingView.View()
	case ViewAuth:
		return m.authView.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewError:
		return m.errorView.View()
	}

	active := m.currentView
	var page string
	if active == ViewPopover {
		active = m.lastPage
		page = lipgloss.Place(
			m.layout.PageWidth(),
			m.layout.ContentHeight(),
			lipgloss.Right,
			lipgloss.Top,
			m.popoverView.View(),
		)
	} else {
		page = m.pageView(active)
	}

	sidebar := m.layout.RenderSidebar(m.navItems(), pageIndex(active))
	return m.layout.RenderWithSidebar(sidebar, page)
}

func (m Model) pageView(v ViewState) string {
	switch v {
	case ViewNotifications:
		return m.notificationsView.View()
	case ViewBilling:
		return m.billingView.View()
	case ViewTickets:
		return m.ticketsView.View()
	case ViewSettings:
		return m.settingsView.View()
	case ViewAccount:
		return m.accountView.View()
	default:
		return ""
	}
}

// navItems returns the translated sidebar entries.
func (m Model) navItems() []ui.NavItem {
	items := make([]ui.NavItem, len(pages))
	for i, p := range pages {
		items[i] = ui.NavItem{
			Key:   pageKeyLabel(i),
			Label: m.catalog.TranslateTitle(m.lang, routes[p]),
		}
	}
	return items
}

// headerTitle is the translated page title, followed by the bell once
// somebody is signed in.
func (m Model) headerTitle() string {
	title := m.catalog.TranslateTitle(m.lang, m.route())
	if m.user == nil {
		return title
	}
	return title + "  " + ui.BellBadge(m.popoverView.Unread())
}

// route returns the path of the active view.
func (m Model) route() string {
	switch m.currentView {
	case ViewAuth:
		if m.authView.Mode() == authform.ModeSignup {
			return "/signup"
		}
		return "/login"
	case ViewPopover, ViewHelp, ViewCommand:
		if m.user == nil {
			return routes[ViewLanding]
		}
		return routes[m.lastPage]
	case ViewError:
		return "/" + m.errorView.Page().Title
	}
	return routes[m.currentView]
}

// syncStatus reports whether the shared storage is being followed.
func (m Model) syncStatus() string {
	if m.watcher.Status().State == appsync.WatchError {
		return m.catalog.T(m.lang, "sync.error")
	}
	return m.catalog.T(m.lang, "sync.live")
}

// statusText shows the current toast, or the key hints when there is none.
func (m Model) statusText() string {
	if m.toast != "" {
		return theme.ToastStyle.Render(m.toast)
	}
	return m.keyHints()
}

func supported(c *i18n.Catalog, lang string) bool {
	for _, l := range c.Languages() {
		if l == lang {
			return true
		}
	}
	return false
}

func isPage(v ViewState) bool {
	return pageIndex(v) >= 0
}

func pageIndex(v ViewState) int {
	for i, p := range pages {
		if p == v {
			return i
		}
	}
	return -1
}
