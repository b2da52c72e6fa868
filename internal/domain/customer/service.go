package customer

import (
	"context"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type ListCustomersResponse struct {
	Customers []CustomerResponse `json:"customers"`
	Total     int64              `json:"total"`
}

// CustomerService defines business logic for customer operations. Callers
// holding only crm:view_own_customers are confined to their own book: listings
// are narrowed to their assignments and direct reads of other owners' records
// fail with ErrNotAssignedOwner.
type CustomerService interface {
	GetCustomer(ctx context.Context, caller identity.Principal, id string) (CustomerResponse, error)
	ListCustomers(ctx context.Context, caller identity.Principal, filter ListFilter) (ListCustomersResponse, error)
	CreateCustomer(ctx context.Context, caller identity.Principal, req CreateCustomerRequest) (CustomerResponse, error)
	UpdateCustomer(ctx context.Context, caller identity.Principal, id string, req UpdateCustomerRequest) (CustomerResponse, error)
	DeleteCustomer(ctx context.Context, caller identity.Principal, id string) error
	TransferCustomer(ctx context.Context, caller identity.Principal, id string, req TransferCustomerRequest) (CustomerResponse, error)
	GetHistory(ctx context.Context, caller identity.Principal, customerID string) ([]HistoryResponse, error)
	ExportCustomers(ctx context.Context, caller identity.Principal, filter ListFilter) ([]CustomerResponse, error)
}
