package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/admin-panel/internal/keys"
	"github.com/nhle/admin-panel/internal/theme"
)

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	title  string
	footer string
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		title:  "Keyboard Shortcuts",
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// SetText replaces the overlay title and the line shown below the
// shortcuts, for example the translated page name and footer.
func (m *Model) SetText(title, footer string) {
	if title != "" {
		m.title = title
	}
	m.footer = footer
}

// View renders the help overlay.
func (m Model) View() string {
	title := theme.TitleStyle.Render(m.title)

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	parts := []string{title, helpText}
	if m.footer != "" {
		parts = append(parts, "", theme.HelpStyle.Render(m.footer))
	}
	content := lipgloss.JoinVertical(lipgloss.Left, parts...)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// ShortView renders the compact one-line help used by the landing page.
func (m Model) ShortView() string {
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
