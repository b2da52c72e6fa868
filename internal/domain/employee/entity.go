package employee

import "time"

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusResigned Status = "resigned"
)

type Employee struct {
	ID           string
	EmployeeCode string
	FullName     string
	DateOfBirth  time.Time
	Gender       Gender
	Email        string
	Phone        string
	DepartmentID string
	PositionID   string
	BaseSalary   int64
	Status       Status
	JoinDate     time.Time
	ResignDate   *time.Time
	Address      *string
	Avatar       *string
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Joins
	DepartmentName *string
	PositionName   *string
}
