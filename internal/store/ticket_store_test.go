package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/store"
	"github.com/nhle/admin-panel/tests/testutil"
)

func TestTickets_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	created, err := s.CreateTicket(ctx, model.Ticket{
		Subject:     "Cannot export invoice",
		Category:    "Payment",
		Priority:    model.PriorityHigh,
		Description: "The download button does nothing.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, model.TicketOpen, created.Status)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := s.GetTicketByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Subject, got.Subject)
	assert.Equal(t, model.PriorityHigh, got.Priority)
	assert.Equal(t, "Payment", got.Category)
}

func TestTickets_CreateRejectsEmptySubject(t *testing.T) {
	s := testutil.NewTestStore(t)
	_, err := s.CreateTicket(context.Background(), model.Ticket{Category: "Other"})
	assert.Error(t, err)
}

func TestTickets_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	tk, err := s.CreateTicket(ctx, model.Ticket{Subject: "Login loop", Category: "Account"})
	require.NoError(t, err)

	tk.Status = model.TicketInvestigating
	require.NoError(t, s.UpdateTicket(ctx, tk))

	got, err := s.GetTicketByID(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, model.TicketInvestigating, got.Status)

	require.NoError(t, s.DeleteTicket(ctx, tk.ID))
	_, err = s.GetTicketByID(ctx, tk.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.DeleteTicket(ctx, tk.ID), store.ErrNotFound)
	assert.ErrorIs(t, s.UpdateTicket(ctx, tk), store.ErrNotFound)
}

func TestTickets_Filter(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	for _, in := range []model.Ticket{
		{Subject: "Invoice missing", Category: "Payment", Priority: model.PriorityLow},
		{Subject: "Crash on save", Category: "Bug/Error", Description: "settings page crashes", Priority: model.PriorityCritical},
		{Subject: "Dark mode", Category: "Feature Request", Status: model.TicketClosed},
	} {
		_, err := s.CreateTicket(ctx, in)
		require.NoError(t, err)
	}

	all, err := s.GetTickets(ctx, store.TicketFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	open := model.TicketOpen
	openOnly, err := s.GetTickets(ctx, store.TicketFilter{Status: &open})
	require.NoError(t, err)
	assert.Len(t, openOnly, 2)

	q := "SETTINGS"
	found, err := s.GetTickets(ctx, store.TicketFilter{Query: &q})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Crash on save", found[0].Subject)

	limited, err := s.GetTickets(ctx, store.TicketFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestAccounts_CreateAndLookup(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)

	a, err := s.CreateAccount(ctx, model.Account{
		Name:         "Ada",
		Email:        "ada@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	assert.NotZero(t, a.ID)
	assert.Equal(t, "user", a.Role)

	got, err := s.GetAccountByEmail(ctx, "ADA@example.com")
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	byID, err := s.GetAccountByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", byID.Name)

	_, err = s.CreateAccount(ctx, model.Account{Name: "Dup", Email: "Ada@Example.com", PasswordHash: "x"})
	assert.ErrorIs(t, err, store.ErrConflict)

	_, err = s.GetAccountByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
