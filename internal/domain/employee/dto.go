package employee

import (
	"time"

	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"
)

// MinBaseSalary is the company floor for monthly base salary (VND).
const MinBaseSalary = 5_000_000

type CreateEmployeeRequest struct {
	EmployeeCode string  `json:"employee_code"`
	FullName     string  `json:"full_name"`
	DateOfBirth  string  `json:"date_of_birth"`
	Gender       string  `json:"gender"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	DepartmentID string  `json:"department_id"`
	PositionID   string  `json:"position_id"`
	BaseSalary   int64   `json:"base_salary"`
	JoinDate     string  `json:"join_date"`
	Address      *string `json:"address"`
	Avatar       *string `json:"avatar"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeCode) {
		errs = append(errs, validator.ValidationError{Field: "employee_code", Message: "employee_code is required"})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name is required"})
	}
	if _, ok := validator.IsValidDate(r.DateOfBirth); !ok {
		errs = append(errs, validator.ValidationError{Field: "date_of_birth", Message: "date_of_birth must be in YYYY-MM-DD format"})
	}
	if !validGender(Gender(r.Gender)) {
		errs = append(errs, validator.ValidationError{Field: "gender", Message: "gender must be one of male, female, other"})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if validator.IsEmpty(r.DepartmentID) {
		errs = append(errs, validator.ValidationError{Field: "department_id", Message: "department_id is required"})
	}
	if validator.IsEmpty(r.PositionID) {
		errs = append(errs, validator.ValidationError{Field: "position_id", Message: "position_id is required"})
	}
	if r.BaseSalary < MinBaseSalary {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary is below the company minimum"})
	}
	if _, ok := validator.IsValidDate(r.JoinDate); !ok {
		errs = append(errs, validator.ValidationError{Field: "join_date", Message: "join_date must be in YYYY-MM-DD format"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateEmployeeRequest struct {
	FullName     *string `json:"full_name"`
	Email        *string `json:"email"`
	Phone        *string `json:"phone"`
	DepartmentID *string `json:"department_id"`
	PositionID   *string `json:"position_id"`
	Status       *string `json:"status"`
	Address      *string `json:"address"`
	Avatar       *string `json:"avatar"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name must not be empty"})
	}
	if r.Email != nil && !validator.IsValidEmail(*r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "email must be a valid email address"})
	}
	if r.Status != nil && !validEmployeeStatus(Status(*r.Status)) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "status must be one of active, inactive, resigned"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AdjustSalaryRequest struct {
	BaseSalary int64  `json:"base_salary"`
	Reason     string `json:"reason"`
}

func (r *AdjustSalaryRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.BaseSalary < MinBaseSalary {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "base_salary is below the company minimum"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "reason is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ListFilter struct {
	// DepartmentID narrows the listing for callers that only hold
	// hr:view_department_employees.
	DepartmentID string
	Search       string
	Status       Status
	Limit        int
	Offset       int
}

// EmployeeResponse carries BaseSalary as a pointer: the service nils it out
// for callers without hr:view_salary, so the field disappears from the JSON
// instead of reading as zero.
type EmployeeResponse struct {
	ID             string    `json:"id"`
	EmployeeCode   string    `json:"employee_code"`
	FullName       string    `json:"full_name"`
	DateOfBirth    string    `json:"date_of_birth"`
	Gender         string    `json:"gender"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	DepartmentID   string    `json:"department_id"`
	DepartmentName *string   `json:"department_name,omitempty"`
	PositionID     string    `json:"position_id"`
	PositionName   *string   `json:"position_name,omitempty"`
	BaseSalary     *int64    `json:"base_salary,omitempty"`
	Status         string    `json:"status"`
	JoinDate       string    `json:"join_date"`
	ResignDate     *string   `json:"resign_date,omitempty"`
	Address        *string   `json:"address,omitempty"`
	Avatar         *string   `json:"avatar,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func ToResponse(e Employee, includeSalary bool) EmployeeResponse {
	resp := EmployeeResponse{
		ID:             e.ID,
		EmployeeCode:   e.EmployeeCode,
		FullName:       e.FullName,
		DateOfBirth:    e.DateOfBirth.Format("2006-01-02"),
		Gender:         string(e.Gender),
		Email:          e.Email,
		Phone:          e.Phone,
		DepartmentID:   e.DepartmentID,
		DepartmentName: e.DepartmentName,
		PositionID:     e.PositionID,
		PositionName:   e.PositionName,
		Status:         string(e.Status),
		JoinDate:       e.JoinDate.Format("2006-01-02"),
		Address:        e.Address,
		Avatar:         e.Avatar,
		UpdatedAt:      e.UpdatedAt,
	}
	if e.ResignDate != nil {
		resign := e.ResignDate.Format("2006-01-02")
		resp.ResignDate = &resign
	}
	if includeSalary {
		salary := e.BaseSalary
		resp.BaseSalary = &salary
	}
	return resp
}

func validGender(g Gender) bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

func validEmployeeStatus(s Status) bool {
	switch s {
	case StatusActive, StatusInactive, StatusResigned:
		return true
	}
	return false
}
