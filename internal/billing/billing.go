// Package billing holds the subscription plan choice and the invoice
// history shown on the billing page.
package billing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	gosync "sync"
	"time"

	"github.com/nhle/admin-panel/internal/model"
	"github.com/nhle/admin-panel/internal/notify"
	"github.com/nhle/admin-panel/internal/store"
)

// PlanKey holds the selected plan id.
const PlanKey = "billing_plan"

// EventPlanChanged is published after the plan key was written or removed.
const EventPlanChanged = "billing_plan_changed"

// InvoiceDateLayout formats invoice dates.
const InvoiceDateLayout = "01/02/2006"

// PageSizes are the page sizes offered by the history table.
var PageSizes = []int{10, 20, 50}

var (
	// ErrInvoiceNotFound is returned for an unknown invoice id.
	ErrInvoiceNotFound = errors.New("invoice not found")

	// ErrUnknownPlan is returned when selecting a plan outside the catalog.
	ErrUnknownPlan = errors.New("unknown plan")
)

// Notifier receives user-facing notices.
type Notifier interface {
	Add(ctx context.Context, title, body string) model.Notification
}

// Page is one slice of the invoice history.
type Page struct {
	Items     []model.Invoice
	Total     int
	PageIndex int
	PageSize  int
	PageCount int
}

// Service manages the plan and invoices of the signed-in account.
type Service struct {
	kv       store.KV
	bus      *notify.Bus
	notifier Notifier

	mu       gosync.Mutex
	invoices []model.Invoice
}

// NewService creates a Service with the sample invoice history dated
// relative to now.
func NewService(kv store.KV, bus *notify.Bus, notifier Notifier, now time.Time) *Service {
	return &Service{
		kv:       kv,
		bus:      bus,
		notifier: notifier,
		invoices: SampleInvoices(now),
	}
}

// SampleInvoices returns the 37-entry sample history, newest first.
func SampleInvoices(now time.Time) []model.Invoice {
	plans := []string{"Pro", "Basic", "Enterprise"}
	out := make([]model.Invoice, 37)
	for i := range out {
		status := model.InvoicePaid
		if i%4 == 0 {
			status = model.InvoicePending
		}
		out[i] = model.Invoice{
			ID:     fmt.Sprintf("INV-%d", 1000+i),
			Date:   now.AddDate(0, 0, -i).Format(InvoiceDateLayout),
			Plan:   plans[i%3],
			Amount: fmt.Sprintf("$%.2f", 9.99+float64(i%5)*5),
			Status: status,
		}
	}
	return out
}

// SelectedPlan returns the stored plan, or basic when nothing usable is
// stored.
func (s *Service) SelectedPlan(ctx context.Context) model.Plan {
	basic, _ := model.PlanByID(model.PlanBasic)

	raw, ok, err := s.kv.GetItem(ctx, PlanKey)
	if err != nil {
		log.Printf("billing: reading plan: %v", err)
		return basic
	}
	if !ok {
		return basic
	}
	plan, found := model.PlanByID(raw)
	if !found {
		return basic
	}
	return plan
}

// SelectPlan stores id as the chosen plan.
func (s *Service) SelectPlan(ctx context.Context, id string) error {
	if _, ok := model.PlanByID(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownPlan, id)
	}
	if err := s.kv.SetItem(ctx, PlanKey, id); err != nil {
		return fmt.Errorf("saving plan: %w", err)
	}
	s.bus.Publish(EventPlanChanged)
	return nil
}

// Subscribe confirms the selected plan and posts a notice about it.
func (s *Service) Subscribe(ctx context.Context) model.Plan {
	plan := s.SelectedPlan(ctx)
	if s.notifier != nil {
		s.notifier.Add(ctx,
			fmt.Sprintf("Subscribed to %s", plan.Name),
			fmt.Sprintf("Your plan is now %s (%s).", plan.Name, plan.Price),
		)
	}
	return plan
}

// ResetPlan forgets the choice so the plan reads as basic again.
func (s *Service) ResetPlan(ctx context.Context) error {
	if err := s.kv.RemoveItem(ctx, PlanKey); err != nil {
		return fmt.Errorf("resetting plan: %w", err)
	}
	s.bus.Publish(EventPlanChanged)
	return nil
}

// Page returns invoices for the zero-based pageIndex. Unknown page sizes
// fall back to the first entry of PageSizes and out-of-range indexes are
// clamped.
func (s *Service) Page(pageIndex, pageSize int) Page {
	if !validPageSize(pageSize) {
		pageSize = PageSizes[0]
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	total := len(s.invoices)
	count := (total + pageSize - 1) / pageSize
	if count == 0 {
		count = 1
	}
	if pageIndex < 0 {
		pageIndex = 0
	}
	if pageIndex >= count {
		pageIndex = count - 1
	}

	start := pageIndex * pageSize
	end := start + pageSize
	if end > total {
		end = total
	}
	items := make([]model.Invoice, end-start)
	copy(items, s.invoices[start:end])

	return Page{
		Items:     items,
		Total:     total,
		PageIndex: pageIndex,
		PageSize:  pageSize,
		PageCount: count,
	}
}

// Invoice returns the invoice with the given id.
func (s *Service) Invoice(id string) (model.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, inv := range s.invoices {
		if inv.ID == id {
			return inv, nil
		}
	}
	return model.Invoice{}, fmt.Errorf("%s: %w", id, ErrInvoiceNotFound)
}

// Pay marks the invoice paid.
func (s *Service) Pay(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.invoices {
		if s.invoices[i].ID == id {
			s.invoices[i].Status = model.InvoicePaid
			return nil
		}
	}
	return fmt.Errorf("%s: %w", id, ErrInvoiceNotFound)
}

// Export writes the invoice as indented JSON to dir/<id>.json and returns
// the file path.
func (s *Service) Export(dir, id string) (string, error) {
	inv, err := s.Invoice(id)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(inv, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding invoice %s: %w", id, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating export directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, inv.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return path, nil
}

func validPageSize(n int) bool {
	for _, size := range PageSizes {
		if size == n {
			return true
		}
	}
	return false
}
