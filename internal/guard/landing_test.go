package guard

import (
	"testing"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/stretchr/testify/assert"
)

func TestResolveLanding(t *testing.T) {
	tests := []struct {
		name string
		sub  Subject
		want string
	}{
		{
			name: "anonymous goes to login",
			sub:  anonymous(),
			want: DestLogin,
		},
		{
			// First-match priority: admin wins even when HR also matches.
			name: "admin and hr resolves to admin overview",
			sub: authenticated(
				identity.PermissionAdminViewAllData,
				identity.PermissionHRViewAllEmployees,
			),
			want: DestAdminOverview,
		},
		{
			name: "crm before hr",
			sub: authenticated(
				identity.PermissionCRMViewOwnCustomers,
				identity.PermissionHRViewDepartmentEmployees,
			),
			want: DestCustomerList,
		},
		{
			name: "hr only",
			sub:  authenticated(identity.PermissionHRViewDepartmentEmployees),
			want: DestHRDashboard,
		},
		{
			name: "attendance only",
			sub:  authenticated(identity.PermissionAttendanceViewOwn),
			want: DestAttendance,
		},
		{
			name: "no matching group lands on access denied",
			sub:  authenticated(identity.PermissionAdminManageRoles),
			want: DestAccessDenied,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveLanding(tt.sub))
		})
	}
}

// Every role's default grant set must land somewhere real, not on the
// access-denied terminal.
func TestResolveLanding_AllRolesHaveADestination(t *testing.T) {
	for _, role := range identity.AllRoles {
		perms, err := identity.DefaultPermissions(role)
		assert.NoError(t, err)

		dest := ResolveLanding(authenticated(perms...))
		assert.NotEqual(t, DestAccessDenied, dest, "role %q has no landing destination", role)
		assert.NotEqual(t, DestLogin, dest)
	}
}
