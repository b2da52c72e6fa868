package customer

import "context"

type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context, filter ListFilter) ([]Customer, int64, error)
	Create(ctx context.Context, c Customer) (Customer, error)
	Update(ctx context.Context, c Customer) error
	Delete(ctx context.Context, id string) error
	UpdateAssignee(ctx context.Context, id, toUserID string) error

	AppendHistory(ctx context.Context, h History) error
	ListHistory(ctx context.Context, customerID string) ([]History, error)
}
