package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/admin-panel/internal/model"
)

// CreateTicket inserts a new ticket. Generates a UUID if ID is empty and
// defaults the status to Open.
func (s *SQLiteStore) CreateTicket(ctx context.Context, t model.Ticket) (model.Ticket, error) {
	if strings.TrimSpace(t.Subject) == "" {
		return model.Ticket{}, fmt.Errorf("ticket subject must not be empty")
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Status == "" {
		t.Status = model.TicketOpen
	}
	if t.Priority == "" {
		t.Priority = model.PriorityNormal
	}
	now := time.Now().UTC()
	t.CreatedAt = now
	t.UpdatedAt = now

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO tickets (
			id, subject, category, priority, description,
			attachment, status, created_at, updated_at
		) VALUES (
			:id, :subject, :category, :priority, :description,
			:attachment, :status, :created_at, :updated_at
		)`, t)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Ticket{}, fmt.Errorf("creating ticket %s: %w", t.ID, ErrConflict)
		}
		return model.Ticket{}, fmt.Errorf("creating ticket: %w", err)
	}
	return t, nil
}

// UpdateTicket updates an existing ticket by ID.
func (s *SQLiteStore) UpdateTicket(ctx context.Context, t model.Ticket) error {
	if strings.TrimSpace(t.Subject) == "" {
		return fmt.Errorf("ticket subject must not be empty")
	}
	t.UpdatedAt = time.Now().UTC()

	result, err := s.db.NamedExecContext(ctx, `
		UPDATE tickets SET
			subject = :subject, category = :category, priority = :priority,
			description = :description, attachment = :attachment,
			status = :status, updated_at = :updated_at
		WHERE id = :id`, t)
	if err != nil {
		return fmt.Errorf("updating ticket %s: %w", t.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("ticket %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// DeleteTicket removes a ticket by ID.
func (s *SQLiteStore) DeleteTicket(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM tickets WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting ticket %s: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("ticket %s: %w", id, ErrNotFound)
	}
	return nil
}

// GetTicketByID retrieves a single ticket by ID.
func (s *SQLiteStore) GetTicketByID(ctx context.Context, id string) (*model.Ticket, error) {
	var t model.Ticket
	err := s.db.GetContext(ctx, &t, "SELECT * FROM tickets WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ticket %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting ticket %s: %w", id, err)
	}
	return &t, nil
}

// GetTickets retrieves tickets matching the filter, newest first.
func (s *SQLiteStore) GetTickets(ctx context.Context, filter TicketFilter) ([]model.Ticket, error) {
	var conditions []string
	var args []interface{}

	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, *filter.Status)
	}
	if filter.Priority != nil {
		conditions = append(conditions, "priority = ?")
		args = append(args, *filter.Priority)
	}
	if filter.Query != nil && strings.TrimSpace(*filter.Query) != "" {
		conditions = append(conditions, "(subject LIKE ? OR description LIKE ?)")
		q := "%" + strings.TrimSpace(*filter.Query) + "%"
		args = append(args, q, q)
	}

	query := "SELECT * FROM tickets"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
		if filter.Offset > 0 {
			query += fmt.Sprintf(" OFFSET %d", filter.Offset)
		}
	}

	var tickets []model.Ticket
	if err := s.db.SelectContext(ctx, &tickets, query, args...); err != nil {
		return nil, fmt.Errorf("querying tickets: %w", err)
	}
	return tickets, nil
}
