package identity

import "context"

// IdentityService is the admin-facing user management surface. Role changes
// reset the permission list to the role's defaults; permission edits move a
// single identity away from those defaults without touching the role.
type IdentityService interface {
	ListUsers(ctx context.Context) ([]IdentityResponse, error)
	GetUser(ctx context.Context, id string) (IdentityResponse, error)
	CreateUser(ctx context.Context, caller Principal, req CreateIdentityRequest) (IdentityResponse, error)
	UpdateRole(ctx context.Context, caller Principal, id string, req UpdateRoleRequest) (IdentityResponse, error)
	UpdatePermissions(ctx context.Context, caller Principal, id string, req UpdatePermissionsRequest) (IdentityResponse, error)
	SetActive(ctx context.Context, caller Principal, id string, active bool) (IdentityResponse, error)
}
