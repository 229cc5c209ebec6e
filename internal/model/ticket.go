package model

import "time"

// Ticket priority levels, lowest first.
const (
	PriorityLow      = "Low"
	PriorityNormal   = "Normal"
	PriorityHigh     = "High"
	PriorityCritical = "Critical"
)

// Ticket status values.
const (
	TicketOpen          = "Open"
	TicketResponded     = "Responded"
	TicketInvestigating = "Investigating"
	TicketPending       = "Pending"
	TicketDone          = "Done"
	TicketClosed        = "Closed"
)

// TicketCategories are the suggested categories for a new ticket.
// Any non-empty free-text category is also accepted.
var TicketCategories = []string{
	"Bug/Error",
	"Feature Question",
	"Feature Request",
	"Account",
	"Payment",
	"Other",
}

// TicketPriorities lists the accepted priority values.
var TicketPriorities = []string{PriorityLow, PriorityNormal, PriorityHigh, PriorityCritical}

// TicketStatuses lists the accepted status values in workflow order.
var TicketStatuses = []string{
	TicketOpen,
	TicketResponded,
	TicketInvestigating,
	TicketPending,
	TicketDone,
	TicketClosed,
}

// Ticket is a support request raised from the help page.
type Ticket struct {
	ID          string    `json:"id" db:"id"`
	Subject     string    `json:"subject" db:"subject"`
	Category    string    `json:"category" db:"category"`
	Priority    string    `json:"priority" db:"priority"`
	Description string    `json:"description" db:"description"`
	Attachment  string    `json:"attachment,omitempty" db:"attachment"`
	Status      string    `json:"status" db:"status"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
