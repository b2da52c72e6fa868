package identity

import "context"

type IdentityRepository interface {
	GetByID(ctx context.Context, id string) (Identity, error)
	GetByUsername(ctx context.Context, username string) (Identity, error)
	GetByEmail(ctx context.Context, email string) (Identity, error)
	List(ctx context.Context) ([]Identity, error)
	Create(ctx context.Context, newIdentity Identity) (Identity, error)
	UpdateRole(ctx context.Context, id string, role Role, permissions []Permission) error
	UpdatePermissions(ctx context.Context, id string, permissions []Permission) error
	SetActive(ctx context.Context, id string, active bool) error
}
