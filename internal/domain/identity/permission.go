package identity

// Permission is an opaque "<domain>:<action>" capability token. The set of
// valid tokens is closed; permissions are never created at runtime.
type Permission string

const (
	// CRM
	PermissionCRMViewAllCustomers    Permission = "crm:view_all_customers"
	PermissionCRMViewOwnCustomers    Permission = "crm:view_own_customers"
	PermissionCRMCreateCustomer      Permission = "crm:create_customer"
	PermissionCRMEditCustomer        Permission = "crm:edit_customer"
	PermissionCRMDeleteCustomer      Permission = "crm:delete_customer"
	PermissionCRMTransferCustomer    Permission = "crm:transfer_customer"
	PermissionCRMViewCustomerHistory Permission = "crm:view_customer_history"

	// HR
	PermissionHRViewAllEmployees        Permission = "hr:view_all_employees"
	PermissionHRViewDepartmentEmployees Permission = "hr:view_department_employees"
	PermissionHRCreateEmployee          Permission = "hr:create_employee"
	PermissionHREditEmployee            Permission = "hr:edit_employee"
	PermissionHRDeleteEmployee          Permission = "hr:delete_employee"
	PermissionHRViewSalary              Permission = "hr:view_salary"
	PermissionHRViewOwnSalary           Permission = "hr:view_own_salary"
	PermissionHREditSalary              Permission = "hr:edit_salary"

	// Attendance
	PermissionAttendanceCheckin        Permission = "attendance:checkin"
	PermissionAttendanceCheckout       Permission = "attendance:checkout"
	PermissionAttendanceViewOwn        Permission = "attendance:view_own"
	PermissionAttendanceViewTeam       Permission = "attendance:view_team"
	PermissionAttendanceViewDepartment Permission = "attendance:view_department"
	PermissionAttendanceViewAll        Permission = "attendance:view_all"
	PermissionAttendanceApprove        Permission = "attendance:approve"
	PermissionAttendanceEdit           Permission = "attendance:edit"

	// Admin
	PermissionAdminViewAuditLog Permission = "admin:view_audit_log"
	PermissionAdminManageUsers  Permission = "admin:manage_users"
	PermissionAdminManageRoles  Permission = "admin:manage_roles"
	PermissionAdminViewAllData  Permission = "admin:view_all_data"
)

// AllPermissions enumerates the closed permission universe.
var AllPermissions = []Permission{
	PermissionCRMViewAllCustomers,
	PermissionCRMViewOwnCustomers,
	PermissionCRMCreateCustomer,
	PermissionCRMEditCustomer,
	PermissionCRMDeleteCustomer,
	PermissionCRMTransferCustomer,
	PermissionCRMViewCustomerHistory,
	PermissionHRViewAllEmployees,
	PermissionHRViewDepartmentEmployees,
	PermissionHRCreateEmployee,
	PermissionHREditEmployee,
	PermissionHRDeleteEmployee,
	PermissionHRViewSalary,
	PermissionHRViewOwnSalary,
	PermissionHREditSalary,
	PermissionAttendanceCheckin,
	PermissionAttendanceCheckout,
	PermissionAttendanceViewOwn,
	PermissionAttendanceViewTeam,
	PermissionAttendanceViewDepartment,
	PermissionAttendanceViewAll,
	PermissionAttendanceApprove,
	PermissionAttendanceEdit,
	PermissionAdminViewAuditLog,
	PermissionAdminManageUsers,
	PermissionAdminManageRoles,
	PermissionAdminViewAllData,
}

var permissionUniverse = func() map[Permission]struct{} {
	m := make(map[Permission]struct{}, len(AllPermissions))
	for _, p := range AllPermissions {
		m[p] = struct{}{}
	}
	return m
}()

// Valid reports whether p belongs to the closed permission universe.
func (p Permission) Valid() bool {
	_, ok := permissionUniverse[p]
	return ok
}

// PermissionSet evaluates membership predicates over a granted permission
// list. The zero value is the empty set.
type PermissionSet map[Permission]struct{}

func NewPermissionSet(perms []Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// HasAny reports whether at least one of perms is granted. An empty input is
// vacuously true: callers that declare no requirement mean "no restriction".
func (s PermissionSet) HasAny(perms []Permission) bool {
	if len(perms) == 0 {
		return true
	}
	for _, p := range perms {
		if s.Has(p) {
			return true
		}
	}
	return false
}

// HasAll reports whether every one of perms is granted. True on empty input.
func (s PermissionSet) HasAll(perms []Permission) bool {
	for _, p := range perms {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

// List returns the members in unspecified order.
func (s PermissionSet) List() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	return out
}

// PermissionsFromStrings converts raw string tokens, dropping any that fall
// outside the universe. Used when decoding persisted records and JWT claims.
func PermissionsFromStrings(raw []string) []Permission {
	out := make([]Permission, 0, len(raw))
	for _, s := range raw {
		p := Permission(s)
		if p.Valid() {
			out = append(out, p)
		}
	}
	return out
}

// PermissionStrings converts tokens to their string literal form.
func PermissionStrings(perms []Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}
