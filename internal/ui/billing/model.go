// Package billing is the billing page: the subscription plan and a paged
// invoice history table.
package billing

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	billingsvc "github.com/nhle/admin-panel/internal/billing"
	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/keys"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/theme"
	"github.com/nhle/admin-panel/internal/ui"
)

// planSavedMsg is sent after a plan choice was stored.
type planSavedMsg struct {
	plan  model.Plan
	reset bool
	err   error
}

// invoiceExportedMsg is sent after an invoice was written to disk.
type invoiceExportedMsg struct {
	path string
	err  error
}

type mode int

const (
	modeTable mode = iota
	modePlanForm
)

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	planID string
}

// Model is the billing page.
type Model struct {
	mode      mode
	service   *billingsvc.Service
	keys      *keys.KeyMap
	catalog   *i18n.Catalog
	lang      string
	exportDir string
	plan      model.Plan
	page      billingsvc.Page
	pageIndex int
	sizeIdx   int
	table     table.Model
	form      *huh.Form
	fb        *formBindings
	errMsg    string
	width     int
	height    int
}

// New creates the billing page. Invoices are exported to exportDir.
func New(svc *billingsvc.Service, k *keys.KeyMap, catalog *i18n.Catalog, lang, exportDir string, width, height int) Model {
	km := table.DefaultKeyMap()
	km.LineUp = k.Up
	km.LineDown = k.Down
	km.PageUp = key.NewBinding(key.WithKeys("pgup"))
	km.PageDown = key.NewBinding(key.WithKeys("pgdown"))
	km.HalfPageUp = key.NewBinding(key.WithKeys("ctrl+u"))
	km.HalfPageDown = key.NewBinding(key.WithKeys("ctrl+d"))

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.ColorBorder).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(theme.ColorBlue).
		Bold(true)

	m := Model{
		service:   svc,
		keys:      k,
		catalog:   catalog,
		lang:      lang,
		exportDir: exportDir,
		fb:        &formBindings{},
		width:     width,
		height:    height,
	}
	m.table = table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithKeyMap(km),
		table.WithStyles(styles),
		table.WithHeight(m.tableHeight()),
	)
	m.Refresh()
	return m
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Capturing reports whether the plan form has focus.
func (m Model) Capturing() bool {
	return m.mode == modePlanForm
}

// Plan returns the plan shown as current.
func (m Model) Plan() model.Plan {
	return m.plan
}

// CurrentPage returns the invoice page on screen.
func (m Model) CurrentPage() billingsvc.Page {
	return m.page
}

// SetLanguage switches the label language.
func (m *Model) SetLanguage(lang string) {
	m.lang = lang
	m.table.SetColumns(m.columns())
}

// Refresh rereads the plan and the current invoice page.
func (m *Model) Refresh() {
	m.plan = m.service.SelectedPlan(context.Background())
	m.page = m.service.Page(m.pageIndex, billingsvc.PageSizes[m.sizeIdx])
	m.pageIndex = m.page.PageIndex

	rows := make([]table.Row, len(m.page.Items))
	for i, inv := range m.page.Items {
		rows[i] = table.Row{inv.ID, inv.Date, inv.Plan, inv.Amount, string(inv.Status)}
	}
	m.table.SetRows(rows)
}

// ResetPlan forgets the stored plan choice.
func (m Model) ResetPlan() tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx := context.Background()
		err := svc.ResetPlan(ctx)
		return planSavedMsg{plan: svc.SelectedPlan(ctx), reset: true, err: err}
	}
}

// Update handles messages for the billing page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case planSavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.Refresh()
		if msg.reset {
			return m, ui.Toast(m.t("billing.subscription.reset"))
		}
		return m, ui.Toast(m.t("billing.subscription.success.subscribed", msg.plan.Name))

	case invoiceExportedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		return m, ui.Toast(m.t("billing.invoice.exported", msg.path))
	}

	if m.mode == modePlanForm {
		return m.updateForm(msg)
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(kmsg, m.keys.Left):
		if m.pageIndex > 0 {
			m.pageIndex--
			m.Refresh()
			m.table.GotoTop()
		}
		return m, nil

	case key.Matches(kmsg, m.keys.Right):
		if m.pageIndex < m.page.PageCount-1 {
			m.pageIndex++
			m.Refresh()
			m.table.GotoTop()
		}
		return m, nil

	case key.Matches(kmsg, m.keys.PageSize):
		m.sizeIdx = (m.sizeIdx + 1) % len(billingsvc.PageSizes)
		m.pageIndex = 0
		m.Refresh()
		m.table.GotoTop()
		return m, nil

	case key.Matches(kmsg, m.keys.New), key.Matches(kmsg, m.keys.Select):
		m.fb.planID = m.plan.ID
		m.form = m.buildPlanForm()
		m.mode = modePlanForm
		return m, m.form.Init()

	case key.Matches(kmsg, m.keys.Pay):
		id, ok := m.selectedInvoice()
		if !ok {
			return m, nil
		}
		if err := m.service.Pay(id); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.Refresh()
		return m, ui.Toast(m.t("billing.invoice.paid", id))

	case key.Matches(kmsg, m.keys.Export):
		id, ok := m.selectedInvoice()
		if !ok {
			return m, nil
		}
		return m, m.export(id)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) buildPlanForm() *huh.Form {
	opts := make([]huh.Option[string], len(model.Plans))
	for i, p := range model.Plans {
		opts[i] = huh.NewOption(fmt.Sprintf("%s  %s  %s", p.Name, p.Price, p.Desc), p.ID)
	}
	return ui.NewForm(m.width, m.height,
		huh.NewGroup(
			huh.NewSelect[string]().
				Title(m.t("billing.subscription.title")).
				Options(opts...).
				Value(&m.fb.planID),
		),
	)
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeTable
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.mode = modeTable
		return m, m.subscribe(m.fb.planID)
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeTable
		return m, nil
	}
	return m, cmd
}

// View renders the billing page.
func (m Model) View() string {
	if m.mode == modePlanForm && m.form != nil {
		return lipgloss.NewStyle().Padding(1, 2).Render(m.form.View())
	}

	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render(m.t("billing.subscription.title")))
	b.WriteString("\n")
	b.WriteString(m.t("billing.subscription.current", m.plan.Name))
	b.WriteString(theme.DimmedStyle.Render(fmt.Sprintf("  %s  %s", m.plan.Price, m.plan.Desc)))
	b.WriteString("\n\n")

	b.WriteString(theme.TitleStyle.Render(m.t("billing.billingHistory.title")))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if row := m.table.SelectedRow(); len(row) == 5 {
		b.WriteString(fmt.Sprintf("%s  %s  ", row[0], row[3]))
		b.WriteString(theme.InvoiceStatusStyle(row[4]).Render(row[4]))
		b.WriteString("\n")
	}

	first, last := 0, 0
	if len(m.page.Items) > 0 {
		first = m.page.PageIndex*m.page.PageSize + 1
		last = first + len(m.page.Items) - 1
	}
	footer := strings.Join([]string{
		m.t("billing.billingHistory.showing", first, last, m.page.Total),
		m.t("billing.billingHistory.page", m.page.PageIndex+1, m.page.PageCount),
		m.t("billing.billingHistory.rowsPerPage", m.page.PageSize),
	}, " | ")
	b.WriteString(theme.HelpStyle.Render(footer))

	if m.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorStyle.Render(m.errMsg))
	}

	return lipgloss.NewStyle().Padding(1, 2).Width(m.width).Height(m.height).Render(b.String())
}

// SetSize updates dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.table.SetHeight(m.tableHeight())
	m.table.SetColumns(m.columns())
}

func (m Model) tableHeight() int {
	h := m.height - 10
	if h < 5 {
		h = 5
	}
	return h
}

func (m Model) columns() []table.Column {
	w := (m.width - 8) / 5
	if w < 10 {
		w = 10
	}
	return []table.Column{
		{Title: m.t("billing.billingHistory.invoice"), Width: w},
		{Title: m.t("billing.billingHistory.date"), Width: w},
		{Title: m.t("billing.billingHistory.plan"), Width: w},
		{Title: m.t("billing.billingHistory.amount"), Width: w},
		{Title: m.t("billing.billingHistory.status"), Width: w},
	}
}

func (m Model) selectedInvoice() (string, bool) {
	row := m.table.SelectedRow()
	if len(row) == 0 {
		return "", false
	}
	return row[0], true
}

func (m Model) t(key string, args ...any) string {
	return m.catalog.T(m.lang, key, args...)
}

func (m Model) subscribe(planID string) tea.Cmd {
	svc := m.service
	return func() tea.Msg {
		ctx := context.Background()
		if err := svc.SelectPlan(ctx, planID); err != nil {
			return planSavedMsg{err: err}
		}
		return planSavedMsg{plan: svc.Subscribe(ctx)}
	}
}

func (m Model) export(id string) tea.Cmd {
	svc := m.service
	dir := m.exportDir
	return func() tea.Msg {
		path, err := svc.Export(dir, id)
		return invoiceExportedMsg{path: path, err: err}
	}
}
