// Package support files and tracks help-desk tickets.
package support

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/store"
)

// ErrInvalidStatus is returned when setting a status outside the workflow.
var ErrInvalidStatus = errors.New("invalid ticket status")

// TicketStore is the ticket persistence used by Service.
type TicketStore interface {
	CreateTicket(ctx context.Context, t model.Ticket) (model.Ticket, error)
	UpdateTicket(ctx context.Context, t model.Ticket) error
	GetTicketByID(ctx context.Context, id string) (*model.Ticket, error)
	GetTickets(ctx context.Context, filter store.TicketFilter) ([]model.Ticket, error)
}

// Notifier receives user-facing notices.
type Notifier interface {
	Add(ctx context.Context, title, body string) model.Notification
}

// TicketInput is the create-ticket form.
type TicketInput struct {
	Subject     string `validate:"required,max=120"`
	Category    string `validate:"required"`
	Priority    string `validate:"required,oneof=Low Normal High Critical"`
	Description string `validate:"required,min=10"`
	Attachment  string
}

// FieldError reports the first invalid form field.
type FieldError struct {
	Field string
	Tag   string
	Param string
}

func (e *FieldError) Error() string {
	switch e.Tag {
	case "required":
		return fmt.Sprintf("%s is required", e.Field)
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", e.Field, e.Param)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", e.Field, e.Param)
	case "oneof":
		return fmt.Sprintf("%s must be one of %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}

// Filter narrows List. Empty fields match everything.
type Filter struct {
	Status string
	Query  string
}

// Service files tickets and tracks their status.
type Service struct {
	tickets  TicketStore
	notifier Notifier
	validate *validator.Validate
}

// NewService creates a Service. notifier may be nil.
func NewService(tickets TicketStore, notifier Notifier) *Service {
	return &Service{
		tickets:  tickets,
		notifier: notifier,
		validate: validator.New(),
	}
}

// Create validates in and files a new Open ticket.
func (s *Service) Create(ctx context.Context, in TicketInput) (model.Ticket, error) {
	in.Subject = strings.TrimSpace(in.Subject)
	in.Category = strings.TrimSpace(in.Category)
	in.Description = strings.TrimSpace(in.Description)

	if err := s.validate.Struct(in); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return model.Ticket{}, &FieldError{Field: verrs[0].Field(), Tag: verrs[0].Tag(), Param: verrs[0].Param()}
		}
		return model.Ticket{}, err
	}

	t, err := s.tickets.CreateTicket(ctx, model.Ticket{
		Subject:     in.Subject,
		Category:    in.Category,
		Priority:    in.Priority,
		Description: in.Description,
		Attachment:  strings.TrimSpace(in.Attachment),
		Status:      model.TicketOpen,
	})
	if err != nil {
		return model.Ticket{}, err
	}

	if s.notifier != nil {
		s.notifier.Add(ctx,
			fmt.Sprintf("Ticket created: %s", t.Subject),
			fmt.Sprintf("%s priority, category %s.", t.Priority, t.Category),
		)
	}
	return t, nil
}

// List returns tickets newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]model.Ticket, error) {
	var filter store.TicketFilter
	if f.Status != "" {
		status := f.Status
		filter.Status = &status
	}
	if q := strings.TrimSpace(f.Query); q != "" {
		filter.Query = &q
	}
	return s.tickets.GetTickets(ctx, filter)
}

// Get returns a single ticket.
func (s *Service) Get(ctx context.Context, id string) (*model.Ticket, error) {
	return s.tickets.GetTicketByID(ctx, id)
}

// SetStatus moves the ticket to status.
func (s *Service) SetStatus(ctx context.Context, id, status string) (model.Ticket, error) {
	if !slices.Contains(model.TicketStatuses, status) {
		return model.Ticket{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	t, err := s.tickets.GetTicketByID(ctx, id)
	if err != nil {
		return model.Ticket{}, err
	}
	t.Status = status
	if err := s.tickets.UpdateTicket(ctx, *t); err != nil {
		return model.Ticket{}, err
	}

	updated, err := s.tickets.GetTicketByID(ctx, id)
	if err != nil {
		return model.Ticket{}, err
	}
	return *updated, nil
}
