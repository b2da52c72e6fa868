package identity

import "github.com/staffdesk/staffdesk-backend-go/internal/pkg/validator"

// IdentityResponse is the outward JSON shape of an identity. Field names match
// the persisted session record so the two round-trip through the same struct.
type IdentityResponse struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	FullName     string   `json:"fullName"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	DepartmentID *string  `json:"departmentId,omitempty"`
	TeamID       *string  `json:"teamId,omitempty"`
	Permissions  []string `json:"permissions"`
	IsActive     bool     `json:"isActive"`
	Avatar       *string  `json:"avatar,omitempty"`
}

func ToResponse(i Identity) IdentityResponse {
	return IdentityResponse{
		ID:           i.ID,
		Username:     i.Username,
		FullName:     i.FullName,
		Email:        i.Email,
		Role:         string(i.Role),
		DepartmentID: i.DepartmentID,
		TeamID:       i.TeamID,
		Permissions:  PermissionStrings(i.Permissions),
		IsActive:     i.IsActive,
		Avatar:       i.Avatar,
	}
}

// ToIdentity rebuilds the domain record from its serialized form. Unknown
// permission tokens are dropped so a stale record cannot smuggle grants from
// outside the universe.
func (r IdentityResponse) ToIdentity() Identity {
	return Identity{
		ID:           r.ID,
		Username:     r.Username,
		FullName:     r.FullName,
		Email:        r.Email,
		Role:         Role(r.Role),
		DepartmentID: r.DepartmentID,
		TeamID:       r.TeamID,
		Permissions:  PermissionsFromStrings(r.Permissions),
		IsActive:     r.IsActive,
		Avatar:       r.Avatar,
	}
}

type CreateIdentityRequest struct {
	Username     string  `json:"username"`
	Password     string  `json:"password"`
	FullName     string  `json:"fullName"`
	Email        string  `json:"email"`
	Role         string  `json:"role"`
	DepartmentID *string `json:"departmentId"`
	TeamID       *string `json:"teamId"`
}

func (r *CreateIdentityRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUsername(r.Username) {
		errs = append(errs, validator.ValidationError{
			Field:   "username",
			Message: "username must be 3-50 characters of letters, digits, '.', '_' or '-'",
		})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{
			Field:   "password",
			Message: "password must be at least 8 characters",
		})
	}
	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "fullName",
			Message: "fullName is required",
		})
	}
	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if !Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is not a known role",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdateRoleRequest struct {
	Role string `json:"role"`
}

func (r *UpdateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Role) {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is required",
		})
	} else if !Role(r.Role).Valid() {
		errs = append(errs, validator.ValidationError{
			Field:   "role",
			Message: "role is not a known role",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpdatePermissionsRequest struct {
	Permissions []string `json:"permissions"`
}

func (r *UpdatePermissionsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Permissions == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "permissions",
			Message: "permissions is required",
		})
	}
	for _, p := range r.Permissions {
		if !Permission(p).Valid() {
			errs = append(errs, validator.ValidationError{
				Field:   "permissions",
				Message: "unknown permission: " + p,
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
