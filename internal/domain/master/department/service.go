package department

import (
	"context"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type DepartmentService interface {
	GetDepartment(ctx context.Context, id string) (DepartmentResponse, error)
	ListDepartments(ctx context.Context) ([]DepartmentResponse, error)
	CreateDepartment(ctx context.Context, caller identity.Principal, req CreateDepartmentRequest) (DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, caller identity.Principal, req UpdateDepartmentRequest) (DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, caller identity.Principal, id string) error
}
