package model

// Plan describes a subscription tier offered on the billing page.
type Plan struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price string `json:"price"`
	Desc  string `json:"desc"`
}

// Plan identifiers.
const (
	PlanBasic      = "basic"
	PlanPro        = "pro"
	PlanEnterprise = "enterprise"
)

// Plans is the fixed catalog of subscription tiers.
var Plans = []Plan{
	{ID: PlanBasic, Name: "Basic", Price: "$0 / mo", Desc: "For personal use"},
	{ID: PlanPro, Name: "Pro", Price: "$12 / mo", Desc: "For professionals"},
	{ID: PlanEnterprise, Name: "Enterprise", Price: "Contact", Desc: "For teams"},
}

// PlanByID returns the plan with the given id.
func PlanByID(id string) (Plan, bool) {
	for _, p := range Plans {
		if p.ID == id {
			return p, true
		}
	}
	return Plan{}, false
}

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoicePaid    InvoiceStatus = "paid"
	InvoicePending InvoiceStatus = "pending"
	InvoiceFailed  InvoiceStatus = "failed"
)

// Invoice is a single billing history entry.
type Invoice struct {
	ID     string        `json:"id"`
	Date   string        `json:"date"`
	Plan   string        `json:"plan"`
	Amount string        `json:"amount"`
	Status InvoiceStatus `json:"status"`
}
