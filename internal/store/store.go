package store

import (
	"context"
	"errors"

	"github.com/nhle/admin-panel/internal/model"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned when a unique constraint would be violated.
	ErrConflict = errors.New("already exists")
)

// KV is a string key-value namespace shared by every running instance of
// the panel. Each key carries a revision that increases on every write or
// removal so other instances can notice changes without reading values.
type KV interface {
	// GetItem returns the value stored under key and whether it exists.
	GetItem(ctx context.Context, key string) (string, bool, error)

	// SetItem overwrites the value stored under key.
	SetItem(ctx context.Context, key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(ctx context.Context, key string) error

	// Revision returns the current revision of key, or 0 if it was never written.
	Revision(ctx context.Context, key string) (int64, error)
}

// TicketFilter controls filtering and pagination for ticket queries.
type TicketFilter struct {
	Status   *string // exact status match or nil (all)
	Priority *string // exact priority match or nil (all)
	Query    *string // search subject + description
	Limit    int
	Offset   int
}

// Store defines the persistence interface for the local key-value
// namespace, support tickets, and accounts of the mock auth backend.
type Store interface {
	KV

	// === Tickets ===

	CreateTicket(ctx context.Context, t model.Ticket) (model.Ticket, error)
	UpdateTicket(ctx context.Context, t model.Ticket) error
	DeleteTicket(ctx context.Context, id string) error
	GetTicketByID(ctx context.Context, id string) (*model.Ticket, error)
	GetTickets(ctx context.Context, filter TicketFilter) ([]model.Ticket, error)

	// === Accounts ===

	CreateAccount(ctx context.Context, a model.Account) (model.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByID(ctx context.Context, id int64) (*model.Account, error)
}
