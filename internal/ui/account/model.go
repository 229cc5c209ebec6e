package account

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/keys"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/settings"
	"github.com/nhle/admin-panel/internal/theme"
	"github.com/nhle/admin-panel/internal/ui"
)

// accountSavedMsg is sent after the profile was persisted.
type accountSavedMsg struct {
	err error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	form settings.AccountForm
}

// Model is the account page: the signed-in user and the editable profile.
type Model struct {
	editing bool
	service *settings.Service
	keys    *keys.KeyMap
	catalog *i18n.Catalog
	lang    string
	user    *model.User
	form    *huh.Form
	fb      *formBindings
	errs    []string
	width   int
	height  int
}

// New creates the account page.
func New(svc *settings.Service, k *keys.KeyMap, catalog *i18n.Catalog, lang string, width, height int) Model {
	return Model{
		service: svc,
		keys:    k,
		catalog: catalog,
		lang:    lang,
		fb:      &formBindings{},
		width:   width,
		height:  height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Capturing reports whether the form has focus.
func (m Model) Capturing() bool {
	return m.editing
}

// SetLanguage switches the label language.
func (m *Model) SetLanguage(lang string) {
	m.lang = lang
}

// SetUser sets the signed-in user shown above the profile.
func (m *Model) SetUser(u *model.User) {
	m.user = u
}

// Update handles messages for the account page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(accountSavedMsg); ok {
		if msg.err != nil {
			var verr *settings.ValidationError
			if errors.As(msg.err, &verr) {
				m.errs = verr.Lines()
			} else {
				m.errs = []string{msg.err.Error()}
			}
			return m, nil
		}
		m.errs = nil
		return m, ui.Toast(m.t("profile.success.profileSaved"))
	}

	if m.editing {
		return m.updateForm(msg)
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok && key.Matches(kmsg, m.keys.Select) {
		m.fb.form = m.initialForm()
		m.form = m.buildForm()
		m.editing = true
		return m, m.form.Init()
	}
	return m, nil
}

// initialForm fills the form from the saved profile, falling back to the
// signed-in user for empty fields.
func (m Model) initialForm() settings.AccountForm {
	saved := m.service.Account()
	f := settings.AccountForm{
		Username:  saved.Username,
		FullName:  saved.FullName,
		Email:     saved.Email,
		AvatarURL: saved.AvatarURL,
	}
	if m.user != nil {
		if f.FullName == "" {
			f.FullName = m.user.Name
		}
		if f.Email == "" {
			f.Email = m.user.Email
		}
	}
	return f
}

func (m Model) buildForm() *huh.Form {
	f := &m.fb.form
	return ui.NewForm(m.width, m.height,
		huh.NewGroup(
			huh.NewInput().Title(m.t("profile.username")).Value(&f.Username),
			huh.NewInput().Title(m.t("profile.fullName")).Value(&f.FullName),
			huh.NewInput().Title(m.t("profile.email")).Value(&f.Email),
			huh.NewInput().Title(m.t("profile.image")).Value(&f.AvatarURL),
		),
		huh.NewGroup(
			huh.NewInput().
				Title(m.t("profile.changePassword")).
				EchoMode(huh.EchoModePassword).
				Value(&f.NewPassword),
			huh.NewInput().
				Title(m.t("profile.confirmPassword")).
				EchoMode(huh.EchoModePassword).
				Value(&f.ConfirmPassword),
		),
	)
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.editing = false
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.editing = false
		return m, m.save()
	}
	if m.form.State == huh.StateAborted {
		m.editing = false
		return m, nil
	}
	return m, cmd
}

// View renders the account page.
func (m Model) View() string {
	if m.editing && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(
			theme.TitleStyle.Render(m.t("dashboard.account")) + "\n\n" + m.form.View(),
		)
	}

	var b strings.Builder
	b.WriteString(theme.TitleStyle.Render(m.t("dashboard.account")))
	b.WriteString("\n")

	if m.user != nil {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.user.Name))
		b.WriteString("  ")
		b.WriteString(theme.DimmedStyle.Render(m.user.Email))
		if m.user.Role != "" {
			b.WriteString("  ")
			b.WriteString(theme.ArchivedStyle.Render(m.user.Role))
		}
		b.WriteString("\n\n")
	}

	saved := m.service.Account()
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(14)
	for _, r := range [][2]string{
		{m.t("profile.username"), saved.Username},
		{m.t("profile.fullName"), saved.FullName},
		{m.t("profile.email"), saved.Email},
		{m.t("profile.image"), saved.AvatarURL},
	} {
		value := r[1]
		if value == "" {
			value = theme.DimmedStyle.Render("-")
		}
		b.WriteString(labelStyle.Render(r[0]))
		b.WriteString(value)
		b.WriteString("\n")
	}

	for _, e := range m.errs {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render("• " + e))
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) t(key string, args ...any) string {
	return m.catalog.T(m.lang, key, args...)
}

func (m Model) save() tea.Cmd {
	svc := m.service
	form := m.fb.form
	return func() tea.Msg {
		return accountSavedMsg{err: svc.SaveAccount(form)}
	}
}
