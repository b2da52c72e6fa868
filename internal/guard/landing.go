package guard

import "github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"

// Client route destinations the backend resolves to.
const (
	DestLogin         = "/login"
	DestAdminOverview = "/admin/overview"
	DestCustomerList  = "/crm/customers"
	DestHRDashboard   = "/hr/dashboard"
	DestAttendance    = "/attendance"
	DestAccessDenied  = "/access-denied"
)

// landingRules is ordered by descending priority. First match wins even when
// several groups are simultaneously satisfied, so the order is part of the
// contract.
var landingRules = []struct {
	dest  string
	perms []identity.Permission
}{
	{DestAdminOverview, []identity.Permission{
		identity.PermissionAdminViewAllData,
	}},
	{DestCustomerList, []identity.Permission{
		identity.PermissionCRMViewAllCustomers,
		identity.PermissionCRMViewOwnCustomers,
	}},
	{DestHRDashboard, []identity.Permission{
		identity.PermissionHRViewAllEmployees,
		identity.PermissionHRViewDepartmentEmployees,
	}},
	{DestAttendance, []identity.Permission{
		identity.PermissionAttendanceViewOwn,
		identity.PermissionAttendanceViewTeam,
		identity.PermissionAttendanceViewDepartment,
		identity.PermissionAttendanceViewAll,
	}},
}

// ResolveLanding picks the landing destination for an authenticated subject:
// the first rule whose permission group matches (ANY semantics within a
// group). A subject matching nothing lands on access-denied; an anonymous one
// goes to login.
func ResolveLanding(sub Subject) string {
	if !sub.IsAuthenticated() {
		return DestLogin
	}
	for _, rule := range landingRules {
		if sub.HasAnyPermission(rule.perms) {
			return rule.dest
		}
	}
	return DestAccessDenied
}
