package attendance

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCorrected Status = "corrected"
)

type Attendance struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	ClockIn     *time.Time
	ClockOut    *time.Time
	WorkMinutes *int
	LateMinutes *int
	Status      Status
	ApprovedBy  *string
	ApprovedAt  *time.Time
	Note        *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joins
	EmployeeName *string
	DepartmentID *string
	TeamID       *string
}
