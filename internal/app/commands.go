package app

import (
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/admin-panel/internal/ui/authform"
)

// commandNames are offered as completions in the command palette.
var commandNames = []string{
	"notifications",
	"billing",
	"tickets",
	"settings",
	"account",
	"refresh",
	"reset plan",
	"lang en",
	"lang id",
	"login",
	"signup",
	"logout",
	"error 401",
	"error 403",
	"error 404",
	"error 500",
	"error 503",
	"quit",
}

// executeCommand handles a command string from the command palette.
// Unknown commands land on the 404 page.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	cmd = strings.ToLower(strings.TrimSpace(cmd))

	switch {
	case cmd == "refresh" || cmd == "sync":
		m.watcher.Refresh()
		m.refreshNotifications()
		m.billingView.Refresh()
		return nil
	case cmd == "quit" || cmd == "q":
		return m.quit()
	case cmd == "notifications":
		return m.showPage(ViewNotifications)
	case cmd == "billing":
		return m.showPage(ViewBilling)
	case cmd == "tickets" || cmd == "gethelp":
		return m.showPage(ViewTickets)
	case cmd == "settings":
		return m.showPage(ViewSettings)
	case cmd == "account":
		return m.showPage(ViewAccount)
	case cmd == "reset plan":
		if m.user == nil {
			m.showError(401)
			return nil
		}
		show := m.showPage(ViewBilling)
		return tea.Batch(show, m.billingView.ResetPlan())
	case strings.HasPrefix(cmd, "lang "):
		return m.setLanguage(strings.TrimSpace(strings.TrimPrefix(cmd, "lang ")))
	case cmd == "login" || cmd == "signup":
		if m.user != nil {
			return m.showPage(m.lastPage)
		}
		if cmd == "signup" {
			return m.openAuth(authform.ModeSignup)
		}
		return m.openAuth(authform.ModeLogin)
	case cmd == "logout":
		if m.user == nil {
			return nil
		}
		return m.logout()
	case strings.HasPrefix(cmd, "error "):
		code, err := strconv.Atoi(strings.TrimSpace(strings.TrimPrefix(cmd, "error ")))
		if err != nil {
			code = 404
		}
		m.showError(code)
		return nil
	default:
		m.showError(404)
		return nil
	}
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	if m.capturing() {
		switch m.currentView {
		case ViewCommand:
			return "enter execute | esc back"
		case ViewAuth:
			return "enter submit | ctrl+l login | ctrl+s sign up | esc back"
		}
		return "enter confirm | esc cancel"
	}

	nav := "1-5 pages | b bell | ? help | : command | q quit"
	switch m.currentView {
	case ViewLanding:
		return "l log in | s sign up | ? help | : command | q quit"
	case ViewHelp:
		return "? close help | esc back"
	case ViewError:
		return "h/l choose | enter open | esc back"
	case ViewPopover:
		return "j/k move | m mark read | M mark all | enter view all | esc close"
	case ViewNotifications:
		return "tab tabs | / search | space select | a all | r read | f favorite | A archive | R read selected | d/D delete | " + nav
	case ViewBilling:
		return "h/l page | z rows | n plan | p pay | x export | " + nav
	case ViewTickets:
		return "tab status | n new | s next status | x export | " + nav
	case ViewSettings:
		return "tab section | enter edit | " + nav
	case ViewAccount:
		return "enter edit | ctrl+o log out | " + nav
	default:
		return nav
	}
}

func currentYear() int {
	return time.Now().Year()
}
