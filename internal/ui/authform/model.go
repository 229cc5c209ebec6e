// Package authform holds the login and signup forms.
package authform

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/admin-panel/internal/auth"
	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/theme"
	"github.com/nhle/admin-panel/internal/ui"
)

// requestTimeout bounds a single call to the auth backend.
const requestTimeout = 10 * time.Second

// Mode selects the form.
type Mode int

const (
	ModeLogin Mode = iota
	ModeSignup
)

// LoggedInMsg is dispatched after a successful login or signup.
type LoggedInMsg struct{}

// AuthCloseMsg is dispatched when the user leaves the form.
type AuthCloseMsg struct{}

// authResultMsg carries the backend answer.
type authResultMsg struct {
	ok  bool
	err error
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name     string
	email    string
	password string
	confirm  string
}

// Model is the login/signup view.
type Model struct {
	mode       Mode
	service    *auth.Service
	catalog    *i18n.Catalog
	lang       string
	form       *huh.Form
	fb         *formBindings
	spinner    spinner.Model
	submitting bool
	errMsg     string
	width      int
	height     int
}

// New creates the view.
func New(svc *auth.Service, catalog *i18n.Catalog, lang string, width, height int) Model {
	return Model{
		service: svc,
		catalog: catalog,
		lang:    lang,
		fb:      &formBindings{},
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(theme.ColorBlue)),
		),
		width:  width,
		height: height,
	}
}

// Start shows the form for mode with empty fields.
func (m *Model) Start(mode Mode) tea.Cmd {
	m.mode = mode
	m.errMsg = ""
	m.submitting = false
	*m.fb = formBindings{}
	m.form = m.buildForm()
	return m.form.Init()
}

// Mode returns the active form.
func (m Model) Mode() Mode {
	return m.mode
}

// SetLanguage switches the label language.
func (m *Model) SetLanguage(lang string) {
	m.lang = lang
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authResultMsg:
		m.submitting = false
		if msg.ok {
			return m, func() tea.Msg { return LoggedInMsg{} }
		}
		m.errMsg = m.describe(msg.err)
		m.fb.password = ""
		m.fb.confirm = ""
		m.form = m.buildForm()
		return m, m.form.Init()

	case spinner.TickMsg:
		if !m.submitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.submitting {
			return m, nil
		}
		switch msg.String() {
		case "ctrl+l":
			cmd := m.Start(ModeLogin)
			return m, cmd
		case "ctrl+s":
			cmd := m.Start(ModeSignup)
			return m, cmd
		}
	}

	if m.form == nil || m.submitting {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.submitting = true
		m.errMsg = ""
		return m, tea.Batch(m.submit(), m.spinner.Tick)
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return AuthCloseMsg{} }
	}
	return m, cmd
}

// describe turns a failed attempt into the line shown under the form.
func (m Model) describe(err error) string {
	if err == nil {
		return m.t("login.error")
	}
	var inputErr *auth.InputError
	if errors.As(err, &inputErr) {
		return inputErr.Error()
	}
	var apiErr *auth.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}

func (m Model) buildForm() *huh.Form {
	email := huh.NewInput().
		Title(m.t("login.email")).
		Placeholder("m@example.com").
		Value(&m.fb.email)
	password := huh.NewInput().
		Title(m.t("login.password")).
		EchoMode(huh.EchoModePassword).
		Value(&m.fb.password)

	if m.mode == ModeLogin {
		return ui.NewForm(m.boxWidth(), m.height, huh.NewGroup(email, password))
	}

	fb := m.fb
	mismatch := errors.New(m.t("signup.passwordsMismatch"))
	return ui.NewForm(m.boxWidth(), m.height,
		huh.NewGroup(
			huh.NewInput().
				Title(m.t("signup.fullName")).
				Value(&m.fb.name),
			email,
			password,
			huh.NewInput().
				Title(m.t("signup.confirmPassword")).
				EchoMode(huh.EchoModePassword).
				Value(&m.fb.confirm).
				Validate(func(s string) error {
					if s != fb.password {
						return mismatch
					}
					return nil
				}),
		),
	)
}

func (m Model) submit() tea.Cmd {
	svc := m.service
	mode := m.mode
	fb := *m.fb
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		if mode == ModeLogin {
			ok, err := svc.Login(ctx, fb.email, fb.password)
			return authResultMsg{ok: ok, err: err}
		}
		err := svc.Signup(ctx, fb.name, fb.email, fb.password)
		return authResultMsg{ok: err == nil, err: err}
	}
}

// View renders the form.
func (m Model) View() string {
	title, subtitle, switchHint := m.t("login.title"), m.t("login.subtitle"), m.t("login.noAccount")
	if m.mode == ModeSignup {
		title, subtitle, switchHint = m.t("signup.title"), "", m.t("signup.haveAccount")
	}

	parts := []string{theme.TitleStyle.Render(title)}
	if subtitle != "" {
		parts = append(parts, theme.DimmedStyle.Render(subtitle), "")
	}
	if m.submitting {
		parts = append(parts, m.spinner.View()+" ...")
	} else if m.form != nil {
		parts = append(parts, m.form.View())
	}
	if m.errMsg != "" {
		parts = append(parts, theme.ErrorStyle.Render(m.errMsg))
	}
	parts = append(parts, "", theme.HelpStyle.Render(switchHint))

	box := theme.BorderStyle.Padding(1, 2).Width(m.boxWidth()).Render(
		lipgloss.JoinVertical(lipgloss.Left, parts...),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// boxWidth is the width of the centered form panel.
func (m Model) boxWidth() int {
	w := m.width - 8
	if w > 64 {
		w = 64
	}
	if w < 44 {
		w = 44
	}
	return w
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) t(key string, args ...any) string {
	return m.catalog.T(m.lang, key, args...)
}
