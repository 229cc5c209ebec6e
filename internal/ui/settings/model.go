// Package settings is the settings page with the company and website
// profile forms.
package settings

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
	settingssvc "github.com/nhle/admin-panel/internal/settings"
	"github.com/nhle/admin-panel/internal/theme"
	"github.com/nhle/admin-panel/internal/ui"
)

// Section selects which profile the page edits.
type Section int

const (
	SectionCompany Section = iota
	SectionWebsite
)

// settingsSavedMsg is sent after a form was persisted.
type settingsSavedMsg struct {
	err error
}

type mode int

const (
	modeView mode = iota
	modeForm
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	company model.CompanySettings
	website model.WebsiteSettings
}

// Model is the settings page.
type Model struct {
	mode    mode
	section Section
	service *settingssvc.Service
	keys    *keys.KeyMap
	catalog *i18n.Catalog
	lang    string
	form    *huh.Form
	fb      *formBindings
	errs    []string
	width   int
	height  int
}

// New creates the settings page.
func New(svc *settingssvc.Service, k *keys.KeyMap, catalog *i18n.Catalog, lang string, width, height int) Model {
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

// Capturing reports whether a form has focus.
func (m Model) Capturing() bool {
	return m.mode == modeForm
}

// SetLanguage switches the label language.
func (m *Model) SetLanguage(lang string) {
	m.lang = lang
}

// Update handles messages for the settings page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if msg, ok := msg.(settingsSavedMsg); ok {
		if msg.err != nil {
			m.errs = validationLines(msg.err)
			return m, nil
		}
		m.errs = nil
		return m, ui.Toast(m.t("settings.saved"))
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(kmsg, m.keys.NextTab), key.Matches(kmsg, m.keys.PrevTab):
		if m.section == SectionCompany {
			m.section = SectionWebsite
		} else {
			m.section = SectionCompany
		}
		m.errs = nil
		return m, nil

	case key.Matches(kmsg, m.keys.Select):
		m.fb.company = m.service.Company()
		m.fb.website = m.service.Website()
		if m.section == SectionCompany {
			m.form = m.buildCompanyForm()
		} else {
			m.form = m.buildWebsiteForm()
		}
		m.mode = modeForm
		return m, m.form.Init()
	}
	return m, nil
}

func (m Model) buildCompanyForm() *huh.Form {
	c := &m.fb.company
	return ui.NewForm(m.width, m.height,
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&c.Name),
			huh.NewInput().Title("Address").Value(&c.Address),
			huh.NewInput().Title("City").Value(&c.City),
			huh.NewInput().Title("Postal code").Value(&c.Postal),
			huh.NewInput().Title("Phone").Value(&c.Phone),
		),
		huh.NewGroup(
			huh.NewInput().Title("Email").Value(&c.Email),
			huh.NewInput().Title("Logo URL").Value(&c.LogoURL),
			huh.NewInput().Title("Latitude").Value(&c.Latitude),
			huh.NewInput().Title("Longitude").Value(&c.Longitude),
			huh.NewInput().Title("Altitude").Value(&c.Altitude),
		),
	)
}

func (m Model) buildWebsiteForm() *huh.Form {
	w := &m.fb.website
	return ui.NewForm(m.width, m.height,
		huh.NewGroup(
			huh.NewInput().Title("Name").Value(&w.Name),
			huh.NewInput().Title("Tagline").Value(&w.Tagline),
			huh.NewText().Title("Description").Value(&w.Description),
			huh.NewInput().Title("Favicon URL").Value(&w.FaviconURL),
		),
	)
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeView
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.mode = modeView
		return m, m.save()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeView
		return m, nil
	}
	return m, cmd
}

// View renders the settings page.
func (m Model) View() string {
	if m.mode == modeForm && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.sectionTitle() + "\n\n" + m.form.View())
	}

	var b strings.Builder
	tabs := []string{m.t("settings.company.info"), m.t("settings.website.info")}
	for i, label := range tabs {
		if Section(i) == m.section {
			b.WriteString(theme.ActiveTabStyle.Render(label))
		} else {
			b.WriteString(theme.TabStyle.Render(label))
		}
	}
	b.WriteString("\n\n")

	var rows [][2]string
	if m.section == SectionCompany {
		c := m.service.Company()
		rows = [][2]string{
			{"Name", c.Name}, {"Address", c.Address}, {"City", c.City},
			{"Postal code", c.Postal}, {"Phone", c.Phone}, {"Email", c.Email},
			{"Logo URL", c.LogoURL}, {"Latitude", c.Latitude},
			{"Longitude", c.Longitude}, {"Altitude", c.Altitude},
		}
	} else {
		w := m.service.Website()
		rows = [][2]string{
			{"Name", w.Name}, {"Tagline", w.Tagline},
			{"Description", w.Description}, {"Favicon URL", w.FaviconURL},
		}
	}
	labelStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Width(14)
	for _, r := range rows {
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
		b.WriteString(theme.ErrorStyle.Render(e))
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m Model) sectionTitle() string {
	if m.section == SectionCompany {
		return theme.TitleStyle.Render(m.t("settings.company.info"))
	}
	return theme.TitleStyle.Render(m.t("settings.website.info"))
}

func (m Model) t(key string, args ...any) string {
	return m.catalog.T(m.lang, key, args...)
}

func (m Model) save() tea.Cmd {
	svc := m.service
	section := m.section
	company := m.fb.company
	website := m.fb.website
	return func() tea.Msg {
		if section == SectionCompany {
			return settingsSavedMsg{err: svc.SaveCompany(company)}
		}
		return settingsSavedMsg{err: svc.SaveWebsite(website)}
	}
}

// validationLines turns a save error into one line per invalid field.
func validationLines(err error) []string {
	var verr *settingssvc.ValidationError
	if !errors.As(err, &verr) {
		return []string{err.Error()}
	}
	lines := verr.Lines()
	for i, l := range lines {
		lines[i] = "• " + l
	}
	return lines
}
