package identity

import "errors"

var (
	ErrIdentityNotFound    = errors.New("identity not found")
	ErrUsernameExists      = errors.New("username already registered")
	ErrUnknownRole         = errors.New("unknown role")
	ErrUnknownPermission   = errors.New("unknown permission")
	ErrIdentityInactive    = errors.New("identity is deactivated")
	ErrPermissionsRequired = errors.New("permissions list is required")
)
