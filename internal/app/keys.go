package app

import (
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/admin-panel/internal/keys"
)

// KeyMap is re-exported from the keys package so existing code that
// references app.KeyMap continues to work.
type KeyMap = keys.KeyMap

// DefaultKeyMap delegates to keys.DefaultKeyMap.
func DefaultKeyMap() *KeyMap {
	return keys.DefaultKeyMap()
}

// pageBindings pairs each dashboard page with its number key.
func (m Model) pageBindings() []key.Binding {
	return []key.Binding{
		m.keys.PageNotifications,
		m.keys.PageBilling,
		m.keys.PageTickets,
		m.keys.PageSettings,
		m.keys.PageAccount,
	}
}

// pageKeyLabel is the number shown next to page i in the sidebar.
func pageKeyLabel(i int) string {
	return strconv.Itoa(i + 1)
}

// handleKey runs the global shortcuts. It reports false when the key
// belongs to the active view.
func (m *Model) handleKey(msg tea.KeyMsg) (bool, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return true, m.quit()
	}

	// The palette owns its input; esc is the only way out besides enter.
	if m.currentView == ViewCommand && key.Matches(msg, m.keys.Back) {
		m.currentView = m.previousView
		return true, nil
	}

	if m.capturing() {
		return false, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.currentView == ViewLanding || isPage(m.currentView) {
			return true, m.quit()
		}

	case key.Matches(msg, m.keys.Help):
		if m.currentView == ViewHelp {
			m.currentView = m.previousView
			return true, nil
		}
		m.previousView = m.currentView
		m.currentView = ViewHelp
		m.helpView.SetText(
			m.catalog.TranslateTitle(m.lang, m.route()),
			m.catalog.T(m.lang, "footer", currentYear()),
		)
		return true, nil

	case key.Matches(msg, m.keys.Command):
		m.previousView = m.currentView
		m.currentView = ViewCommand
		return true, m.commandView.Focus()

	case key.Matches(msg, m.keys.Back):
		switch m.currentView {
		case ViewHelp:
			m.currentView = m.previousView
			return true, nil
		case ViewError:
			m.leaveError()
			return true, nil
		}
	}

	if m.user == nil {
		return false, nil
	}

	for i, b := range m.pageBindings() {
		if key.Matches(msg, b) {
			return true, m.showPage(pages[i])
		}
	}

	switch {
	case key.Matches(msg, m.keys.Bell):
		if m.currentView == ViewPopover {
			m.currentView = m.lastPage
			return true, nil
		}
		if isPage(m.currentView) {
			m.popoverView.Refresh()
			m.currentView = ViewPopover
			return true, nil
		}

	case key.Matches(msg, m.keys.Refresh):
		m.watcher.Refresh()
		m.refreshNotifications()
		m.billingView.Refresh()
		return true, m.ticketsView.Init()

	case key.Matches(msg, m.keys.Logout):
		return true, m.logout()
	}

	return false, nil
}
