package attendance

import (
	"context"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type ListAttendanceResponse struct {
	Attendances []AttendanceResponse `json:"attendances"`
	Total       int64                `json:"total"`
	Scope       Scope                `json:"scope"`
}

// AttendanceService defines business logic for attendance. Listings resolve
// the caller to the widest scope their permissions grant (all, department,
// team, own, in that order); a caller with none of the view grants gets
// ErrViewScopeNotGranted.
type AttendanceService interface {
	CheckIn(ctx context.Context, caller identity.Principal) (AttendanceResponse, error)
	CheckOut(ctx context.Context, caller identity.Principal) (AttendanceResponse, error)
	ListAttendance(ctx context.Context, caller identity.Principal, filter ListFilter) (ListAttendanceResponse, error)
	ApproveAttendance(ctx context.Context, caller identity.Principal, id string, req ApproveRequest) (AttendanceResponse, error)
	CorrectAttendance(ctx context.Context, caller identity.Principal, id string, req CorrectRequest) (AttendanceResponse, error)
}
