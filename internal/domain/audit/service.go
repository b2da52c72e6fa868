package audit

import "context"

// AuditService exposes the read side of the trail. Writing happens through
// Recorder only; there is no service path that edits an entry.
type AuditService interface {
	ListEntries(ctx context.Context, filter ListFilter) (ListResponse, error)
}
