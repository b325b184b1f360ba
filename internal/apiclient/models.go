package apiclient

import (
	"time"

	"lexportal/internal/roles"
)

// User is the authoritative user object returned by GET /auth/me.
type User struct {
	ID                 string     `json:"id"`
	FullName           string     `json:"full_name"`
	Email              string     `json:"email"`
	Role               roles.Role `json:"role"`
	WorkspaceID        string     `json:"workspace_id"`
	SubscriptionPlan   string     `json:"subscription_plan"`
	SubscriptionStatus string     `json:"subscription_status"`
}

// Invitation is the server-side view of a portal invitation. The token is
// opaque, single use, and its expiry is enforced by the backend.
type Invitation struct {
	Token      string    `json:"token"`
	Email      string    `json:"email"`
	CaseTitle  string    `json:"case_title"`
	ClientName string    `json:"client_name"`
	ExpiresAt  time.Time `json:"expires_at"`
}

// ClientRecord represents a client of the practice.
type ClientRecord struct {
	ID        string    `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Case represents a legal case.
type Case struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	ClientID    string    `json:"client_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CaseUpdate is a progress note on a case, visible in the client portal.
type CaseUpdate struct {
	ID        string    `json:"id"`
	CaseID    string    `json:"case_id"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

// CalendarEvent represents a calendar entry (hearing, meeting, deadline).
type CalendarEvent struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	StartsAt time.Time `json:"starts_at"`
	EndsAt   time.Time `json:"ends_at"`
	CaseID   string    `json:"case_id,omitempty"`
	Location string    `json:"location,omitempty"`
}

// Invoice represents a billing invoice; Balance is amount minus payments.
type Invoice struct {
	ID       string    `json:"id"`
	Number   string    `json:"number"`
	ClientID string    `json:"client_id"`
	CaseID   string    `json:"case_id,omitempty"`
	Amount   float64   `json:"amount"`
	Balance  float64   `json:"balance"`
	Status   string    `json:"status"`
	DueDate  time.Time `json:"due_date"`
}

// Payment represents a payment recorded against an invoice.
type Payment struct {
	ID        string    `json:"id"`
	InvoiceID string    `json:"invoice_id"`
	Amount    float64   `json:"amount"`
	Method    string    `json:"method,omitempty"`
	PaidAt    time.Time `json:"paid_at"`
}

// DashboardSummary is the aggregate view for the lawyer dashboard.
type DashboardSummary struct {
	ActiveCases     int     `json:"active_cases"`
	TotalClients    int     `json:"total_clients"`
	PendingInvoices int     `json:"pending_invoices"`
	OutstandingDue  float64 `json:"outstanding_due"`
	UpcomingEvents  int     `json:"upcoming_events"`
}

// ActivityEntry is one row of the recent-activity feed.
type ActivityEntry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}
