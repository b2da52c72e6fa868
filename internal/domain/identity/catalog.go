package identity

import "fmt"

// DefaultPermissions returns the default grant set for a role. The switch is
// exhaustive over the role catalog; an unknown role is a configuration error,
// not a runtime condition to recover from.
func DefaultPermissions(role Role) ([]Permission, error) {
	switch role {
	case RoleAdmin:
		perms := make([]Permission, len(AllPermissions))
		copy(perms, AllPermissions)
		return perms, nil
	case RoleHRManager:
		return []Permission{
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
			PermissionAttendanceViewDepartment,
			PermissionAttendanceViewAll,
			PermissionAttendanceApprove,
			PermissionAttendanceEdit,
		}, nil
	case RoleCRMManager:
		return []Permission{
			PermissionCRMViewAllCustomers,
			PermissionCRMViewOwnCustomers,
			PermissionCRMCreateCustomer,
			PermissionCRMEditCustomer,
			PermissionCRMDeleteCustomer,
			PermissionCRMTransferCustomer,
			PermissionCRMViewCustomerHistory,
			PermissionAttendanceCheckin,
			PermissionAttendanceCheckout,
			PermissionAttendanceViewOwn,
			PermissionAttendanceViewTeam,
			PermissionHRViewOwnSalary,
		}, nil
	case RoleSale:
		return []Permission{
			PermissionCRMViewOwnCustomers,
			PermissionCRMCreateCustomer,
			PermissionCRMEditCustomer,
			PermissionCRMViewCustomerHistory,
			PermissionAttendanceCheckin,
			PermissionAttendanceCheckout,
			PermissionAttendanceViewOwn,
			PermissionHRViewOwnSalary,
		}, nil
	case RoleHRStaff:
		return []Permission{
			PermissionHRViewDepartmentEmployees,
			PermissionHRCreateEmployee,
			PermissionHREditEmployee,
			PermissionHRViewOwnSalary,
			PermissionAttendanceCheckin,
			PermissionAttendanceCheckout,
			PermissionAttendanceViewOwn,
			PermissionAttendanceViewDepartment,
		}, nil
	case RoleSupervisor:
		return []Permission{
			PermissionCRMViewOwnCustomers,
			PermissionCRMViewCustomerHistory,
			PermissionAttendanceCheckin,
			PermissionAttendanceCheckout,
			PermissionAttendanceViewOwn,
			PermissionAttendanceViewTeam,
			PermissionAttendanceApprove,
			PermissionHRViewOwnSalary,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownRole, role)
	}
}

// ValidateCatalog checks every role resolves to a non-empty grant set inside
// the permission universe. Called once at startup; a failure is fatal since a
// silent default would grant or deny permissions by accident.
func ValidateCatalog() error {
	for _, role := range AllRoles {
		perms, err := DefaultPermissions(role)
		if err != nil {
			return err
		}
		if len(perms) == 0 {
			return fmt.Errorf("role %q has an empty default permission set", role)
		}
		for _, p := range perms {
			if !p.Valid() {
				return fmt.Errorf("role %q grants unknown permission %q", role, p)
			}
		}
	}
	return nil
}
