package identity

import "time"

type Role string

const (
	RoleAdmin      Role = "admin"       // Full access to every module
	RoleHRManager  Role = "hr_manager"  // Manages employees, salaries, attendance
	RoleCRMManager Role = "crm_manager" // Manages the whole customer book
	RoleSale       Role = "sale"        // Works own customers only
	RoleHRStaff    Role = "hr_staff"    // Department-scoped HR work
	RoleSupervisor Role = "supervisor"  // Team lead: team attendance and approvals
)

// AllRoles enumerates the closed role catalog.
var AllRoles = []Role{
	RoleAdmin,
	RoleHRManager,
	RoleCRMManager,
	RoleSale,
	RoleHRStaff,
	RoleSupervisor,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// Identity is an authenticated principal. Permissions are resolved from the
// role at assignment time and stored with the record; admin tooling may edit
// them afterwards, so two identities with the same role can diverge.
type Identity struct {
	ID           string
	Username     string
	FullName     string
	Email        string
	Role         Role
	DepartmentID *string
	TeamID       *string
	Permissions  []Permission
	IsActive     bool
	Avatar       *string

	// Persistence only, never serialized outward.
	PasswordHash *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PermissionSet builds the evaluation set for this identity's grants.
func (i *Identity) PermissionSet() PermissionSet {
	return NewPermissionSet(i.Permissions)
}

func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
