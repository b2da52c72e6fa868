package employee

import (
	"context"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type ListEmployeesResponse struct {
	Employees []EmployeeResponse `json:"employees"`
	Total     int64              `json:"total"`
}

// EmployeeService defines business logic for employee records. Base salary is
// only present in responses when the caller holds hr:view_salary; listings for
// callers limited to hr:view_department_employees are narrowed to the caller's
// own department.
type EmployeeService interface {
	GetEmployee(ctx context.Context, caller identity.Principal, id string) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, caller identity.Principal, filter ListFilter) (ListEmployeesResponse, error)
	CreateEmployee(ctx context.Context, caller identity.Principal, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, caller identity.Principal, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeleteEmployee(ctx context.Context, caller identity.Principal, id string) error
	AdjustSalary(ctx context.Context, caller identity.Principal, id string, req AdjustSalaryRequest) (EmployeeResponse, error)
	ExportEmployees(ctx context.Context, caller identity.Principal, filter ListFilter) ([]EmployeeResponse, error)
}
