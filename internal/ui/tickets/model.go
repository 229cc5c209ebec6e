// Package tickets is the get-help page: the ticket list, the create form
// and status changes.
package tickets

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/admin-panel/internal/i18n"
	"github.com/nhle/admin-panel/internal/keys"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/support"
	"github.com/nhle/admin-panel/internal/theme"
	"github.com/nhle/admin-panel/internal/ui"
)

// TicketCreatedMsg is dispatched after a ticket was filed.
type TicketCreatedMsg struct {
	Ticket model.Ticket
}

// ticketsLoadedMsg carries the list after a query.
type ticketsLoadedMsg struct {
	tickets []model.Ticket
	err     error
}

// ticketSavedMsg is sent after the create form was submitted.
type ticketSavedMsg struct {
	ticket model.Ticket
	err    error
}

// ticketUpdatedMsg is sent after a status change.
type ticketUpdatedMsg struct {
	ticket model.Ticket
	err    error
}

// ticketExportedMsg is sent after a ticket was written to the outbox.
type ticketExportedMsg struct {
	path string
	err  error
}

type mode int

const (
	modeList mode = iota
	modeForm
)

// Options locates the outbox and addresses used for exports.
type Options struct {
	OutboxDir string
	From      string
	To        string
}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	subject     string
	category    string
	priority    string
	description string
	attachment  string
}

// Model is the tickets page.
type Model struct {
	mode        mode
	service     *support.Service
	keys        *keys.KeyMap
	catalog     *i18n.Catalog
	lang        string
	opts        Options
	tickets     []model.Ticket
	statusIdx   int
	selectedIdx int
	form        *huh.Form
	fb          *formBindings
	errMsg      string
	width       int
	height      int
}

// New creates the tickets page.
func New(svc *support.Service, k *keys.KeyMap, catalog *i18n.Catalog, lang string, opts Options, width, height int) Model {
	return Model{
		service: svc,
		keys:    k,
		catalog: catalog,
		lang:    lang,
		opts:    opts,
		fb:      &formBindings{},
		width:   width,
		height:  height,
	}
}

// Init loads the ticket list.
func (m Model) Init() tea.Cmd {
	return m.loadTickets()
}

// Capturing reports whether the create form has focus.
func (m Model) Capturing() bool {
	return m.mode == modeForm
}

// SetLanguage switches the label language.
func (m *Model) SetLanguage(lang string) {
	m.lang = lang
}

// Tickets returns the listed tickets.
func (m Model) Tickets() []model.Ticket {
	return m.tickets
}

// statusFilter returns the status the list is narrowed to, or "" for all.
func (m Model) statusFilter() string {
	if m.statusIdx == 0 {
		return ""
	}
	return model.TicketStatuses[m.statusIdx-1]
}

// Update handles messages for the tickets page.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ticketsLoadedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		m.tickets = msg.tickets
		if m.selectedIdx >= len(m.tickets) {
			m.selectedIdx = max(len(m.tickets)-1, 0)
		}
		return m, nil

	case ticketSavedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		m.errMsg = ""
		created := msg.ticket
		return m, tea.Batch(
			m.loadTickets(),
			ui.Toast(m.t("gethelp.tickets.success.ticketSubmitted")),
			func() tea.Msg { return TicketCreatedMsg{Ticket: created} },
		)

	case ticketUpdatedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, tea.Batch(
			m.loadTickets(),
			ui.Toast(m.t("gethelp.tickets.statusChanged", msg.ticket.Status)),
		)

	case ticketExportedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
			return m, nil
		}
		return m, ui.Toast(m.t("gethelp.tickets.exported", msg.path))
	}

	if m.mode == modeForm {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleListKey(msg)
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Down):
		if len(m.tickets) > 0 {
			m.selectedIdx = (m.selectedIdx + 1) % len(m.tickets)
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if len(m.tickets) > 0 {
			m.selectedIdx--
			if m.selectedIdx < 0 {
				m.selectedIdx = len(m.tickets) - 1
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.NextTab):
		m.statusIdx = (m.statusIdx + 1) % (len(model.TicketStatuses) + 1)
		m.selectedIdx = 0
		return m, m.loadTickets()

	case key.Matches(msg, m.keys.New):
		m.fb.subject = ""
		m.fb.category = model.TicketCategories[0]
		m.fb.priority = model.PriorityNormal
		m.fb.description = ""
		m.fb.attachment = ""
		m.errMsg = ""
		m.form = m.buildForm()
		m.mode = modeForm
		return m, m.form.Init()

	case key.Matches(msg, m.keys.Status):
		if len(m.tickets) == 0 {
			return m, nil
		}
		return m, m.advanceStatus(m.tickets[m.selectedIdx])

	case key.Matches(msg, m.keys.Export):
		if len(m.tickets) == 0 {
			return m, nil
		}
		return m, m.export(m.tickets[m.selectedIdx])
	}
	return m, nil
}

func (m Model) buildForm() *huh.Form {
	categories := make([]huh.Option[string], len(model.TicketCategories))
	for i, c := range model.TicketCategories {
		categories[i] = huh.NewOption(c, c)
	}
	priorities := make([]huh.Option[string], len(model.TicketPriorities))
	for i, p := range model.TicketPriorities {
		priorities[i] = huh.NewOption(p, p)
	}

	return ui.NewForm(m.width, m.height,
		huh.NewGroup(
			huh.NewInput().
				Title(m.t("gethelp.tickets.subject")).
				CharLimit(120).
				Value(&m.fb.subject).
				Validate(validateRequired(m.t("gethelp.tickets.subject"))),
			huh.NewSelect[string]().
				Title(m.t("gethelp.tickets.category")).
				Options(categories...).
				Value(&m.fb.category),
			huh.NewSelect[string]().
				Title(m.t("gethelp.tickets.priority")).
				Options(priorities...).
				Value(&m.fb.priority),
			huh.NewText().
				Title(m.t("gethelp.tickets.description")).
				Value(&m.fb.description).
				Validate(validateMinLength(m.t("gethelp.tickets.description"), 10)),
			huh.NewInput().
				Title(m.t("gethelp.tickets.attachmentOptional")).
				Placeholder("path/to/file").
				Value(&m.fb.attachment),
		),
	)
}

func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		m.mode = modeList
		return m, nil
	}
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		m.mode = modeList
		return m, m.saveTicket()
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		return m, nil
	}
	return m, cmd
}

// View renders the tickets page.
func (m Model) View() string {
	if m.mode == modeForm && m.form != nil {
		content := theme.TitleStyle.Render(m.t("gethelp.tickets.createNewTicket")) + "\n" + m.form.View()
		if m.errMsg != "" {
			content += "\n" + theme.ErrorStyle.Render(m.errMsg)
		}
		return lipgloss.NewStyle().Padding(1, 2).Render(content)
	}
	return m.viewList()
}

func (m Model) viewList() string {
	var b strings.Builder

	b.WriteString(theme.TitleStyle.Render(m.t("gethelp.tickets.myTickets")))
	b.WriteString("\n")
	filter := m.statusFilter()
	if filter == "" {
		filter = "*"
	}
	b.WriteString(theme.HelpStyle.Render(fmt.Sprintf("%s: %s", m.t("gethelp.tickets.status"), filter)))
	b.WriteString("\n\n")

	if len(m.tickets) == 0 {
		emptyStyle := lipgloss.NewStyle().Foreground(theme.ColorGray).Italic(true)
		b.WriteString(emptyStyle.Render(m.t("gethelp.tickets.none")))
	} else {
		for i, t := range m.tickets {
			label := fmt.Sprintf("%s %s %s  %s",
				theme.TicketStatusStyle(t.Status).Render(t.Status),
				theme.TicketPriorityStyle(t.Priority).Render(t.Priority),
				t.Subject,
				theme.DimmedStyle.Render(t.CreatedAt.Format("01/02/2006 15:04")),
			)
			if i == m.selectedIdx {
				b.WriteString(theme.SelectedItemStyle.Render(label))
			} else {
				b.WriteString(theme.ListItemStyle.Render(label))
			}
			b.WriteString("\n")
		}

		if m.selectedIdx < len(m.tickets) {
			t := m.tickets[m.selectedIdx]
			detail := fmt.Sprintf("%s: %s\n%s: %s\n\n%s",
				m.t("gethelp.tickets.category"), t.Category,
				m.t("gethelp.tickets.updated"), t.UpdatedAt.Format("01/02/2006 15:04"),
				t.Description,
			)
			b.WriteString("\n")
			b.WriteString(theme.BorderStyle.Padding(0, 1).Width(m.width - 6).Render(detail))
		}
	}

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
}

func (m Model) t(key string, args ...any) string {
	return m.catalog.T(m.lang, key, args...)
}

func (m Model) loadTickets() tea.Cmd {
	svc := m.service
	filter := support.Filter{Status: m.statusFilter()}
	return func() tea.Msg {
		tickets, err := svc.List(context.Background(), filter)
		return ticketsLoadedMsg{tickets: tickets, err: err}
	}
}

func (m Model) saveTicket() tea.Cmd {
	svc := m.service
	in := support.TicketInput{
		Subject:     m.fb.subject,
		Category:    m.fb.category,
		Priority:    m.fb.priority,
		Description: m.fb.description,
		Attachment:  m.fb.attachment,
	}
	return func() tea.Msg {
		t, err := svc.Create(context.Background(), in)
		return ticketSavedMsg{ticket: t, err: err}
	}
}

// advanceStatus moves the ticket to the next status in workflow order,
// wrapping from Closed back to Open.
func (m Model) advanceStatus(t model.Ticket) tea.Cmd {
	svc := m.service
	next := model.TicketStatuses[0]
	for i, s := range model.TicketStatuses {
		if s == t.Status {
			next = model.TicketStatuses[(i+1)%len(model.TicketStatuses)]
			break
		}
	}
	return func() tea.Msg {
		updated, err := svc.SetStatus(context.Background(), t.ID, next)
		return ticketUpdatedMsg{ticket: updated, err: err}
	}
}

func (m Model) export(t model.Ticket) tea.Cmd {
	opts := m.opts
	return func() tea.Msg {
		path, err := support.WriteOutbox(opts.OutboxDir, t, opts.From, opts.To)
		return ticketExportedMsg{path: path, err: err}
	}
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateMinLength(fieldName string, n int) func(string) error {
	return func(s string) error {
		if len([]rune(strings.TrimSpace(s))) < n {
			return fmt.Errorf("%s must be at least %d characters", fieldName, n)
		}
		return nil
	}
}
