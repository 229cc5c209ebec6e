// Package errorpage renders the full-screen error views (401, 403, 404,
// 500, 503) with their action buttons.
package errorpage

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/keys"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/theme"
)

// Action is one of the buttons an error page may offer.
type Action int

const (
	ActionHome Action = iota
	ActionContact
	ActionRetry
)

// ActionMsg is dispatched when a button is pressed.
type ActionMsg struct {
	Code   int
	Action Action
}

// Model is the error view.
type Model struct {
	page     model.ErrorPage
	actions  []Action
	selected int
	keys     *keys.KeyMap
	catalog  *i18n.Catalog
	lang     string
	width    int
	height   int
}

// New creates the error view showing the 404 page.
func New(k *keys.KeyMap, catalog *i18n.Catalog, lang string, width, height int) Model {
	m := Model{
		keys:    k,
		catalog: catalog,
		lang:    lang,
		width:   width,
		height:  height,
	}
	m.Show(404)
	return m
}

// Show switches to the page for code; unknown codes show 404.
func (m *Model) Show(code int) {
	m.page = model.ErrorPageFor(code)
	m.actions = nil
	if m.page.ShowHomeButton {
		m.actions = append(m.actions, ActionHome)
	}
	if m.page.ShowContactButton {
		m.actions = append(m.actions, ActionContact)
	}
	if m.page.ShowRetryButton {
		m.actions = append(m.actions, ActionRetry)
	}
	m.selected = 0
}

// Page returns the page on screen.
func (m Model) Page() model.ErrorPage {
	return m.page
}

// Actions returns the buttons offered, in display order.
func (m Model) Actions() []Action {
	return m.actions
}

// SetLanguage switches the label language.
func (m *Model) SetLanguage(lang string) {
	m.lang = lang
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the error view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.actions) == 0 {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.keys.Left), key.Matches(kmsg, m.keys.PrevTab):
		m.selected = (m.selected - 1 + len(m.actions)) % len(m.actions)
	case key.Matches(kmsg, m.keys.Right), key.Matches(kmsg, m.keys.NextTab):
		m.selected = (m.selected + 1) % len(m.actions)
	case key.Matches(kmsg, m.keys.Select):
		out := ActionMsg{Code: m.page.Code, Action: m.actions[m.selected]}
		return m, func() tea.Msg { return out }
	}
	return m, nil
}

// View renders the error view.
func (m Model) View() string {
	code := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorRed).
		Render(fmt.Sprintf("%d", m.page.Code))
	title := theme.TitleStyle.Render(m.page.Title)
	desc := lipgloss.NewStyle().
		Width(m.textWidth()).
		Align(lipgloss.Center).
		Foreground(theme.ColorGray).
		Render(m.page.Description)

	buttons := make([]string, len(m.actions))
	for i, a := range m.actions {
		style := theme.TabStyle
		if i == m.selected {
			style = theme.ActiveTabStyle
		}
		buttons[i] = style.Render(m.label(a))
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		code,
		title,
		m.page.Message,
		"",
		desc,
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, buttons...),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) label(a Action) string {
	switch a {
	case ActionContact:
		return m.t("errors.contact")
	case ActionRetry:
		return m.t("errors.retry")
	default:
		return m.t("errors.home")
	}
}

func (m Model) textWidth() int {
	if m.width > 8 && m.width-8 < 64 {
		return m.width - 8
	}
	return 64
}

func (m Model) t(key string, args ...any) string {
	return m.catalog.T(m.lang, key, args...)
}
