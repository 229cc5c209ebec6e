// Package landing is the public start screen shown before sign-in.
package landing

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/theme"
)

// LoginMsg asks for the login form.
type LoginMsg struct{}

// SignupMsg asks for the signup form.
type SignupMsg struct{}

// Model is the landing screen.
type Model struct {
	catalog *i18n.Catalog
	lang    string
	now     func() time.Time
	width   int
	height  int
}

// New creates the landing screen.
func New(catalog *i18n.Catalog, lang string, width, height int) Model {
	return Model{
		catalog: catalog,
		lang:    lang,
		now:     time.Now,
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// SetLanguage switches the label language.
func (m *Model) SetLanguage(lang string) {
	m.lang = lang
}

// Update handles messages for the landing screen.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch kmsg.String() {
	case "l", "enter":
		return m, func() tea.Msg { return LoginMsg{} }
	case "s":
		return m, func() tea.Msg { return SignupMsg{} }
	}
	return m, nil
}

// View renders the landing screen.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue).
		Render(m.t("hero.title"))
	subtitle := lipgloss.NewStyle().
		Width(m.textWidth()).
		Align(lipgloss.Center).
		Render(m.t("hero.subtitle"))
	cta := theme.BorderStyle.
		Padding(0, 2).
		Render(m.t("hero.cta"))
	footer := theme.DimmedStyle.Render(m.t("footer", m.now().Year()))

	body := lipgloss.JoinVertical(lipgloss.Center,
		title,
		"",
		subtitle,
		"",
		cta,
		"",
		"",
		footer,
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) textWidth() int {
	if m.width > 8 && m.width-8 < 72 {
		return m.width - 8
	}
	return 72
}

func (m Model) t(key string, args ...any) string {
	return m.catalog.T(m.lang, key, args...)
}
