package popover

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/keys"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/theme"
	"github.com/nhle/admin-panel/internal/ui"
)

// RecentLimit is how many notifications the popover lists.
const RecentLimit = 5

// PopoverCloseMsg signals the popover should close.
type PopoverCloseMsg struct{}

// ViewAllMsg asks for the full notifications page.
type ViewAllMsg struct{}

// Model is the bell dropdown with the most recent notifications.
type Model struct {
	store       *notify.Store
	keys        *keys.KeyMap
	catalog     *i18n.Catalog
	lang        string
	items       []model.Notification
	selectedIdx int
	width       int
	height      int
}

// New creates the popover over its own store.
func New(s *notify.Store, k *keys.KeyMap, catalog *i18n.Catalog, lang string, width, height int) Model {
	m := Model{
		store:   s,
		keys:    k,
		catalog: catalog,
		lang:    lang,
		width:   width,
		height:  height,
	}
	m.Refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Unread returns the number shown on the bell.
func (m Model) Unread() int {
	return m.store.Counts().Unread
}

// Items returns the listed notifications.
func (m Model) Items() []model.Notification {
	return m.items
}

// SetLanguage switches the label language.
func (m *Model) SetLanguage(lang string) {
	m.lang = lang
}

// Refresh reloads the recent notifications from the store.
func (m *Model) Refresh() {
	m.items = m.store.Recent(RecentLimit)
	if m.selectedIdx >= len(m.items) {
		m.selectedIdx = len(m.items) - 1
	}
	if m.selectedIdx < 0 {
		m.selectedIdx = 0
	}
}

// Update handles messages for the popover.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	ctx := context.Background()

	switch {
	case key.Matches(kmsg, m.keys.Back), key.Matches(kmsg, m.keys.Bell):
		return m, func() tea.Msg { return PopoverCloseMsg{} }

	case key.Matches(kmsg, m.keys.Down):
		if len(m.items) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.items)
		}
		return m, nil

	case key.Matches(kmsg, m.keys.Up):
		if len(m.items) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.items) - 1
			}
		}
		return m, nil

	case key.Matches(kmsg, m.keys.MarkRead):
		if len(m.items) == 0 {
			return m, nil
		}
		if m.store.MarkRead(ctx, m.items[m.selectedIdx].ID) {
			m.Refresh()
			return m, ui.Toast(m.catalog.T(m.lang, "notifications.toast.readUpdated"))
		}
		return m, nil

	case key.Matches(kmsg, m.keys.MarkAllRead):
		if n := m.store.MarkAllRead(ctx); n > 0 {
			m.Refresh()
			return m, ui.Toast(m.catalog.N(m.lang, "notifications.toast.bulkMarkedRead", n))
		}
		return m, nil

	case key.Matches(kmsg, m.keys.Select):
		return m, func() tea.Msg { return ViewAllMsg{} }
	}
	return m, nil
}

// View renders the popover panel.
func (m Model) View() string {
	var b strings.Builder

	title := m.catalog.T(m.lang, "notifications.title")
	b.WriteString(theme.TitleStyle.Render(fmt.Sprintf("%s  %s", title, ui.BellBadge(m.Unread()))))
	b.WriteString("\n")

	if len(m.items) == 0 {
		b.WriteString(theme.DimmedStyle.Italic(true).Render(m.catalog.T(m.lang, "nonotifications")))
		b.WriteString("\n")
	}
	for i, n := range m.items {
		dot := " "
		if !n.Read {
			dot = theme.UnreadMarkerStyle.Render("●")
		}
		line := fmt.Sprintf("%s %s  %s", dot, n.Title, theme.DimmedStyle.Render(n.Date))
		if i == m.selectedIdx {
			b.WriteString(theme.SelectedItemStyle.Render(line))
		} else {
			b.WriteString(theme.ListItemStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.HelpStyle.Render(fmt.Sprintf(
		"m %s | M %s | enter %s | esc",
		m.catalog.T(m.lang, "markread"),
		m.catalog.T(m.lang, "markall"),
		m.catalog.T(m.lang, "viewall"),
	)))

	w := m.width / 2
	if w < 50 {
		w = 50
	}
	return theme.DetailPanelStyle.Width(w).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
