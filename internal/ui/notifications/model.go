// Package notifications is the full notifications page: tabs, search,
// bulk selection and per-item actions over a notify.Store.
package notifications

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/keys"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/theme"
	"github.com/nhle/admin-panel/internal/ui"
)

type mode int

const (
	modeList mode = iota
	modeSearch
	modeConfirmDelete
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	confirm bool
}

// Model is the notifications page.
type Model struct {
	list        list.Model
	store       *notify.Store
	keys        *keys.KeyMap
	catalog     *i18n.Catalog
	lang        string
	tab         int
	query       string
	mode        mode
	searchInput textinput.Model
	selection   *notify.Selection
	confirmForm *huh.Form
	fb          *formBindings
	pending     []string
	width       int
	height      int
}

// New creates the page over s.
func New(s *notify.Store, k *keys.KeyMap, catalog *i18n.Catalog, lang string, width, height int) Model {
	sel := &notify.Selection{}
	l := list.New([]list.Item{}, ItemDelegate{selection: sel}, width, height-4)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)

	si := textinput.New()
	si.Placeholder = catalog.T(lang, "notifications.searchPlaceholder")
	si.Prompt = "/ "
	si.Width = width - 4

	m := Model{
		list:        l,
		store:       s,
		keys:        k,
		catalog:     catalog,
		lang:        lang,
		searchInput: si,
		selection:   sel,
		fb:          &formBindings{},
		width:       width,
		height:      height,
	}
	m.Refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Tab returns the active tab.
func (m Model) Tab() model.NotificationTab {
	return model.NotificationTabs[m.tab]
}

// Query returns the applied search text.
func (m Model) Query() string {
	return m.query
}

// Selection returns the ids checked for bulk actions.
func (m Model) Selection() []string {
	return m.selection.IDs()
}

// Visible returns the notifications currently listed.
func (m Model) Visible() []model.Notification {
	items := m.list.Items()
	out := make([]model.Notification, 0, len(items))
	for _, it := range items {
		if n, ok := it.(Item); ok {
			out = append(out, n.Notification)
		}
	}
	return out
}

// Capturing reports whether the page is reading text or answering a
// prompt, so global shortcuts must not fire.
func (m Model) Capturing() bool {
	return m.mode != modeList
}

// SetLanguage switches the language of labels and toasts.
func (m *Model) SetLanguage(lang string) {
	m.lang = lang
	m.searchInput.Placeholder = m.catalog.T(lang, "notifications.searchPlaceholder")
}

// Refresh rebuilds the list from the store, keeping the cursor position
// and dropping selected ids that no longer exist.
func (m *Model) Refresh() {
	all := m.store.Items()
	m.selection.Prune(all)

	visible := m.store.View(m.Tab(), m.query)
	items := make([]list.Item, len(visible))
	for i, n := range visible {
		items[i] = Item{Notification: n}
	}
	idx := m.list.Index()
	m.list.SetItems(items)
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx >= 0 {
		m.list.Select(idx)
	}
}

// Update handles messages for the notifications page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch m.mode {
	case modeConfirmDelete:
		return m.updateConfirm(msg)
	case modeSearch:
		if msg, ok := msg.(tea.KeyMsg); ok {
			return m.handleSearchKeys(msg)
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleNormalKeys(msg)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys applies the query as it is typed; esc clears it.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeList
		m.searchInput.Blur()
		return m, nil

	case "esc":
		m.mode = modeList
		m.searchInput.Reset()
		m.searchInput.Blur()
		m.query = ""
		m.Refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	if q := m.searchInput.Value(); q != m.query {
		m.query = q
		m.Refresh()
	}
	return m, cmd
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	ctx := context.Background()

	switch {
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.SetValue(m.query)
		cmd := m.searchInput.Focus()
		return m, cmd

	case key.Matches(msg, m.keys.NextTab):
		m.tab = (m.tab + 1) % len(model.NotificationTabs)
		m.Refresh()
		return m, nil

	case key.Matches(msg, m.keys.PrevTab):
		m.tab = (m.tab + len(model.NotificationTabs) - 1) % len(model.NotificationTabs)
		m.Refresh()
		return m, nil

	case key.Matches(msg, m.keys.ToggleSelect):
		if n, ok := m.current(); ok {
			m.selection.Toggle(n.ID)
		}
		return m, nil

	case key.Matches(msg, m.keys.SelectAll):
		m.selection.ToggleAll(m.Visible())
		return m, nil

	case key.Matches(msg, m.keys.Select):
		if n, ok := m.current(); ok && m.store.MarkRead(ctx, n.ID) {
			m.Refresh()
			return m, ui.Toast(m.t("notifications.toast.readUpdated"))
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleRead):
		if n, ok := m.current(); ok && m.store.ToggleRead(ctx, n.ID) {
			m.Refresh()
			return m, ui.Toast(m.t("notifications.toast.readUpdated"))
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleFavorite):
		if n, ok := m.current(); ok && m.store.ToggleFavorite(ctx, n.ID) {
			m.Refresh()
			return m, ui.Toast(m.t("notifications.toast.toggledFavorite"))
		}
		return m, nil

	case key.Matches(msg, m.keys.ToggleArchive):
		if n, ok := m.current(); ok && m.store.ToggleArchive(ctx, n.ID) {
			m.Refresh()
			return m, ui.Toast(m.t("notifications.toast.archivedUpdated"))
		}
		return m, nil

	case key.Matches(msg, m.keys.BulkRead):
		ids := m.selection.IDs()
		if len(ids) == 0 {
			return m, nil
		}
		n := m.store.MarkManyRead(ctx, ids)
		m.selection.Clear()
		m.Refresh()
		if n == 0 {
			return m, nil
		}
		return m, ui.Toast(m.n("notifications.toast.bulkMarkedRead", n))

	case key.Matches(msg, m.keys.Delete):
		n, ok := m.current()
		if !ok {
			return m, nil
		}
		return m.startConfirm([]string{n.ID})

	case key.Matches(msg, m.keys.BulkDelete):
		ids := m.selection.IDs()
		if len(ids) == 0 {
			return m, nil
		}
		return m.startConfirm(ids)
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) startConfirm(ids []string) (Model, tea.Cmd) {
	m.pending = ids
	m.fb.confirm = false
	m.confirmForm = m.buildConfirmForm()
	m.mode = modeConfirmDelete
	return m, m.confirmForm.Init()
}

func (m Model) buildConfirmForm() *huh.Form {
	desc := m.t("notifications.deleteConfirm.descriptionSingle")
	if len(m.pending) > 1 {
		desc = m.n("notifications.deleteConfirm.descriptionBulk", len(m.pending))
	}
	return ui.NewForm(m.width, m.height,
		huh.NewGroup(
			huh.NewConfirm().
				Title(m.t("notifications.deleteConfirm.title")).
				Description(desc).
				Affirmative("Yes, delete").
				Negative("Cancel").
				Value(&m.fb.confirm),
		),
	)
}

func (m Model) updateConfirm(msg tea.Msg) (Model, tea.Cmd) {
	if m.confirmForm == nil {
		m.mode = modeList
		return m, nil
	}
	mdl, cmd := m.confirmForm.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.confirmForm = f
	}

	switch m.confirmForm.State {
	case huh.StateCompleted:
		m.mode = modeList
		ids := m.pending
		m.pending = nil
		if !m.fb.confirm {
			return m, nil
		}
		return m.delete(ids)
	case huh.StateAborted:
		m.mode = modeList
		m.pending = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) delete(ids []string) (Model, tea.Cmd) {
	ctx := context.Background()
	if len(ids) == 1 {
		if !m.store.DeleteOne(ctx, ids[0]) {
			return m, nil
		}
		m.Refresh()
		return m, ui.Toast(m.t("notifications.toast.deleted"))
	}

	n := m.store.DeleteMany(ctx, ids)
	m.selection.Clear()
	m.Refresh()
	if n == 0 {
		return m, nil
	}
	return m, ui.Toast(m.n("notifications.toast.bulkDeleted", n))
}

func (m Model) current() (model.Notification, bool) {
	it, ok := m.list.SelectedItem().(Item)
	if !ok {
		return model.Notification{}, false
	}
	return it.Notification, true
}

func (m Model) t(key string, args ...any) string {
	return m.catalog.T(m.lang, key, args...)
}

func (m Model) n(key string, count int) string {
	return m.catalog.N(m.lang, key, count)
}

// View renders the page.
func (m Model) View() string {
	if m.mode == modeConfirmDelete && m.confirmForm != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.confirmForm.View())
	}

	counts := m.store.Counts()

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(m.t("notifications.title")))
	b.WriteString("  ")
	b.WriteString(theme.DimmedStyle.Render(m.t("notifications.unread", counts.Unread)))
	b.WriteString("\n")
	b.WriteString(m.renderTabs(counts))
	b.WriteString("\n")

	switch {
	case m.mode == modeSearch:
		b.WriteString(m.searchInput.View())
	case m.query != "":
		b.WriteString(theme.HelpStyle.Render("/ " + m.query))
	}
	if n := m.selection.Len(); n > 0 {
		b.WriteString("  ")
		b.WriteString(theme.CheckedStyle.Render(m.t("notifications.selected", n)))
	}
	b.WriteString("\n")

	if len(m.list.Items()) == 0 {
		b.WriteString(m.renderEmptyState())
	} else {
		b.WriteString(m.list.View())
	}

	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(b.String())
}

func (m Model) renderTabs(counts model.NotificationCounts) string {
	labels := []string{
		m.t("notifications.tabs.all", counts.All),
		m.t("notifications.tabs.favorites", counts.Fav),
		m.t("notifications.tabs.archived", counts.Archived),
	}
	parts := make([]string, len(labels))
	for i, l := range labels {
		if i == m.tab {
			parts[i] = theme.ActiveTabStyle.Render(l)
		} else {
			parts[i] = theme.TabStyle.Render(l)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

// renderEmptyState shows guidance text when nothing matches.
func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height-4).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(m.t("notifications.noNotifications"))
}

// SetSize updates the page dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-4)
	m.searchInput.Width = width - 4
}
