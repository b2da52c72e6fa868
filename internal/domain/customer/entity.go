package customer

import "time"

type Status string

const (
	StatusLead     Status = "lead"
	StatusProspect Status = "prospect"
	StatusCustomer Status = "customer"
	StatusInactive Status = "inactive"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityVIP    Priority = "vip"
)

type Customer struct {
	ID         string
	Code       string
	Name       string
	Email      string
	Phone      string
	Company    *string
	Status     Status
	Priority   Priority
	AssignedTo string // identity ID of the owning sale
	CreatedBy  string
	Tags       []string
	Notes      *string
	TotalValue int64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Join
	AssignedToName *string
}

type HistoryAction string

const (
	HistoryCreated       HistoryAction = "created"
	HistoryUpdated       HistoryAction = "updated"
	HistoryTransferred   HistoryAction = "transferred"
	HistoryStatusChanged HistoryAction = "status_changed"
	HistoryNoteAdded     HistoryAction = "note_added"
)

// History is one care-log line for a customer, append-only.
type History struct {
	ID          string
	CustomerID  string
	Action      HistoryAction
	Description string
	PerformedBy string
	Timestamp   time.Time

	// Join
	PerformedByName *string
}
