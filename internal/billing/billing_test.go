package billing_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/admin-panel/internal/billing"
	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/store"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*billing.Service, *store.MemoryKV, *notify.Store) {
	t.Helper()
	kv := store.NewMemoryKV()
	bus := notify.NewBus()
	notices := notify.NewStore(context.Background(), notify.NewKVStorage(kv, bus))
	return billing.NewService(kv, bus, notices, now), kv, notices
}

func TestSampleInvoices(t *testing.T) {
	invs := billing.SampleInvoices(now)
	require.Len(t, invs, 37)

	assert.Equal(t, model.Invoice{
		ID: "INV-1000", Date: "05/01/2026", Plan: "Pro", Amount: "$9.99", Status: model.InvoicePending,
	}, invs[0])
	assert.Equal(t, "Basic", invs[1].Plan)
	assert.Equal(t, "Enterprise", invs[2].Plan)
	assert.Equal(t, "$29.99", invs[4].Amount)
	assert.Equal(t, "04/30/2026", invs[1].Date)
	assert.Equal(t, model.InvoicePaid, invs[1].Status)
	assert.Equal(t, "INV-1036", invs[36].ID)
}

func TestSelectedPlan_Fallbacks(t *testing.T) {
	ctx := context.Background()
	svc, kv, _ := newService(t)

	assert.Equal(t, model.PlanBasic, svc.SelectedPlan(ctx).ID)

	require.NoError(t, kv.SetItem(ctx, billing.PlanKey, "platinum"))
	assert.Equal(t, model.PlanBasic, svc.SelectedPlan(ctx).ID)

	kv.FailReads = true
	assert.Equal(t, model.PlanBasic, svc.SelectedPlan(ctx).ID)
}

func TestSelectAndResetPlan(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newService(t)

	require.NoError(t, svc.SelectPlan(ctx, model.PlanPro))
	assert.Equal(t, "Pro", svc.SelectedPlan(ctx).Name)

	assert.ErrorIs(t, svc.SelectPlan(ctx, "platinum"), billing.ErrUnknownPlan)
	assert.Equal(t, model.PlanPro, svc.SelectedPlan(ctx).ID)

	require.NoError(t, svc.ResetPlan(ctx))
	assert.Equal(t, model.PlanBasic, svc.SelectedPlan(ctx).ID)
}

func TestSubscribe_PostsNotice(t *testing.T) {
	ctx := context.Background()
	svc, _, notices := newService(t)
	before := notices.Len()

	require.NoError(t, svc.SelectPlan(ctx, model.PlanEnterprise))
	plan := svc.Subscribe(ctx)
	assert.Equal(t, model.PlanEnterprise, plan.ID)

	items := notices.Items()
	require.Len(t, items, before+1)
	assert.Equal(t, "Subscribed to Enterprise", items[len(items)-1].Title)
	assert.False(t, items[len(items)-1].Read)
}

func TestPage(t *testing.T) {
	svc, _, _ := newService(t)

	p := svc.Page(0, 10)
	assert.Len(t, p.Items, 10)
	assert.Equal(t, 37, p.Total)
	assert.Equal(t, 4, p.PageCount)

	last := svc.Page(3, 10)
	assert.Len(t, last.Items, 7)
	assert.Equal(t, "INV-1030", last.Items[0].ID)

	clamped := svc.Page(99, 20)
	assert.Equal(t, 1, clamped.PageIndex)
	assert.Len(t, clamped.Items, 17)

	odd := svc.Page(-1, 7)
	assert.Equal(t, 10, odd.PageSize)
	assert.Equal(t, 0, odd.PageIndex)

	assert.Len(t, svc.Page(0, 50).Items, 37)
}

func TestPay(t *testing.T) {
	svc, _, _ := newService(t)

	require.NoError(t, svc.Pay("INV-1000"))
	inv, err := svc.Invoice("INV-1000")
	require.NoError(t, err)
	assert.Equal(t, model.InvoicePaid, inv.Status)

	assert.ErrorIs(t, svc.Pay("INV-9999"), billing.ErrInvoiceNotFound)
}

func TestExport(t *testing.T) {
	svc, _, _ := newService(t)
	dir := filepath.Join(t.TempDir(), "exports")

	path, err := svc.Export(dir, "INV-1004")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "INV-1004.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var inv model.Invoice
	require.NoError(t, json.Unmarshal(data, &inv))
	assert.Equal(t, "$29.99", inv.Amount)

	_, err = svc.Export(dir, "nope")
	assert.ErrorIs(t, err, billing.ErrInvoiceNotFound)
}
