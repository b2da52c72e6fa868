package audit

import "time"

type Action string

const (
	ActionLogin        Action = "login"
	ActionLogout       Action = "logout"
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionTransfer     Action = "transfer"
	ActionExport       Action = "export"
	ActionAccessDenied Action = "access_denied"
)

type EntityKind string

const (
	EntityCustomer   EntityKind = "customer"
	EntityEmployee   EntityKind = "employee"
	EntityDepartment EntityKind = "department"
	EntityUser       EntityKind = "user"
	EntityTeam       EntityKind = "team"
	EntitySystem     EntityKind = "system"
)

// Actor is the identity snapshot embedded in an entry. A snapshot, not a
// reference: later edits to the identity must not rewrite history.
type Actor struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	Username string `json:"username,omitempty"`
}

// Entry is an immutable audit record. Entries are only ever appended; a
// correction is a new compensating entry.
type Entry struct {
	ID          string     `json:"id"`
	Actor       Actor      `json:"actor"`
	Action      Action     `json:"action"`
	Entity      EntityKind `json:"entity"`
	EntityID    *string    `json:"entity_id,omitempty"`
	EntityName  *string    `json:"entity_name,omitempty"`
	Description string     `json:"description"`
	IPAddress   string     `json:"ip_address,omitempty"`
	UserAgent   string     `json:"user_agent,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	Success     bool       `json:"success"`
}
