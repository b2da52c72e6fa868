package attendance

import (
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

// Scope is the widest attendance view a caller is entitled to. The service
// derives it from the caller's permissions, widest first.
type Scope string

const (
	ScopeAll        Scope = "all"
	ScopeDepartment Scope = "department"
	ScopeTeam       Scope = "team"
	ScopeOwn        Scope = "own"
)

type ListFilter struct {
	Scope        Scope
	EmployeeID   string // scope own
	TeamID       string // scope team
	DepartmentID string // scope department
	From         *time.Time
	To           *time.Time
	Limit        int
	Offset       int
}

type ApproveRequest struct {
	Approve bool    `json:"approve"`
	Reason  *string `json:"reason"`
}

func (r *ApproveRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.Approve && (r.Reason == nil || validator.IsEmpty(*r.Reason)) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required when rejecting"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CorrectRequest struct {
	ClockIn  *string `json:"clock_in"`
	ClockOut *string `json:"clock_out"`
	Note     string  `json:"note"`
}

func (r *CorrectRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.ClockIn == nil && r.ClockOut == nil {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "at least one of clock_in or clock_out is required"})
	}
	for field, v := range map[string]*string{"clock_in": r.ClockIn, "clock_out": r.ClockOut} {
		if v == nil {
			continue
		}
		if _, err := time.Parse(time.RFC3339, *v); err != nil {
			errs = append(errs, validator.ValidationError{Field: field, Message: field + " must be an RFC3339 timestamp"})
		}
	}
	if validator.IsEmpty(r.Note) {
		errs = append(errs, validator.ValidationError{Field: "note", Message: "note is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AttendanceResponse struct {
	ID           string     `json:"id"`
	EmployeeID   string     `json:"employee_id"`
	EmployeeName *string    `json:"employee_name,omitempty"`
	Date         string     `json:"date"`
	ClockIn      *time.Time `json:"clock_in,omitempty"`
	ClockOut     *time.Time `json:"clock_out,omitempty"`
	WorkMinutes  *int       `json:"work_minutes,omitempty"`
	LateMinutes  *int       `json:"late_minutes,omitempty"`
	Status       string     `json:"status"`
	ApprovedBy   *string    `json:"approved_by,omitempty"`
	Note         *string    `json:"note,omitempty"`
}

func ToResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		Date:         a.Date.Format("2006-01-02"),
		ClockIn:      a.ClockIn,
		ClockOut:     a.ClockOut,
		WorkMinutes:  a.WorkMinutes,
		LateMinutes:  a.LateMinutes,
		Status:       string(a.Status),
		ApprovedBy:   a.ApprovedBy,
		Note:         a.Note,
	}
}
