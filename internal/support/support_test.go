package support_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/emersion/go-message/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/store"
	"github.com/nhle/admin-panel/internal/support"
	"github.com/nhle/admin-panel/tests/testutil"
)

func newService(t *testing.T) (*support.Service, *notify.Store) {
	t.Helper()
	db := testutil.NewTestStore(t)
	notices := notify.NewStore(context.Background(), notify.NewKVStorage(store.NewMemoryKV(), notify.NewBus()))
	return support.NewService(db, notices), notices
}

func validInput() support.TicketInput {
	return support.TicketInput{
		Subject:     "Cannot download invoice",
		Category:    "Payment",
		Priority:    model.PriorityHigh,
		Description: "The download button does nothing for INV-1004.",
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc, notices := newService(t)
	before := notices.Len()

	tk, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, tk.ID)
	assert.Equal(t, model.TicketOpen, tk.Status)

	got, err := svc.Get(ctx, tk.ID)
	require.NoError(t, err)
	assert.Equal(t, "Payment", got.Category)

	items := notices.Items()
	require.Len(t, items, before+1)
	assert.Equal(t, "Ticket created: Cannot download invoice", items[len(items)-1].Title)
}

func TestCreate_Validation(t *testing.T) {
	svc, notices := newService(t)
	before := notices.Len()

	tests := []struct {
		name   string
		mutate func(*support.TicketInput)
		field  string
	}{
		{"blank subject", func(in *support.TicketInput) { in.Subject = "   " }, "Subject"},
		{"long subject", func(in *support.TicketInput) { in.Subject = strings.Repeat("x", 121) }, "Subject"},
		{"no category", func(in *support.TicketInput) { in.Category = "" }, "Category"},
		{"bad priority", func(in *support.TicketInput) { in.Priority = "Urgent" }, "Priority"},
		{"short description", func(in *support.TicketInput) { in.Description = "help" }, "Description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), in)
			var fe *support.FieldError
			require.ErrorAs(t, err, &fe)
			assert.Equal(t, tt.field, fe.Field)
		})
	}
	assert.Equal(t, before, notices.Len())
}

func TestCreate_FreeTextCategory(t *testing.T) {
	svc, _ := newService(t)
	in := validInput()
	in.Category = "Onboarding"

	tk, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Onboarding", tk.Category)
}

func TestListAndSetStatus(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	first, err := svc.Create(ctx, validInput())
	require.NoError(t, err)
	in := validInput()
	in.Subject = "Dark mode request"
	in.Description = "Please add a dark theme to the dashboard."
	_, err = svc.Create(ctx, in)
	require.NoError(t, err)

	all, err := svc.List(ctx, support.Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := svc.List(ctx, support.Filter{Query: "dark THEME"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Dark mode request", found[0].Subject)

	updated, err := svc.SetStatus(ctx, first.ID, model.TicketInvestigating)
	require.NoError(t, err)
	assert.Equal(t, model.TicketInvestigating, updated.Status)

	open, err := svc.List(ctx, support.Filter{Status: model.TicketOpen})
	require.NoError(t, err)
	assert.Len(t, open, 1)

	_, err = svc.SetStatus(ctx, first.ID, "Lost")
	assert.ErrorIs(t, err, support.ErrInvalidStatus)

	_, err = svc.SetStatus(ctx, "missing", model.TicketDone)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestExportMessage(t *testing.T) {
	tk := model.Ticket{
		ID:          "t-1",
		Subject:     "VPN drops",
		Category:    "Bug/Error",
		Priority:    model.PriorityCritical,
		Description: "Connection drops every five minutes.",
		Attachment:  "trace.log",
		Status:      model.TicketOpen,
	}

	data, err := support.ExportMessage(tk, "panel@example.com", "help@example.com")
	require.NoError(t, err)

	mr, err := mail.CreateReader(bytes.NewReader(data))
	require.NoError(t, err)

	subject, err := mr.Header.Subject()
	require.NoError(t, err)
	assert.Equal(t, "[Critical] VPN drops", subject)
	assert.Equal(t, "t-1", mr.Header.Get("X-Ticket-Id"))
	assert.Equal(t, "trace.log", mr.Header.Get("X-Ticket-Attachment"))

	to, err := mr.Header.AddressList("To")
	require.NoError(t, err)
	require.Len(t, to, 1)
	assert.Equal(t, "help@example.com", to[0].Address)

	part, err := mr.NextPart()
	require.NoError(t, err)
	body, err := io.ReadAll(part.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Connection drops every five minutes.")
}

func TestWriteOutbox(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "outbox")
	tk := model.Ticket{ID: "t-2", Subject: "Hi", Priority: model.PriorityLow, Description: "Just saying hello there."}

	path, err := support.WriteOutbox(dir, tk, "a@example.com", "b@example.com")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "t-2.eml"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "X-Ticket-Priority: Low")
}
