package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every role must resolve to a non-empty grant set drawn from the closed
// permission universe.
func TestDefaultPermissions_AllRolesCovered(t *testing.T) {
	for _, role := range AllRoles {
		perms, err := DefaultPermissions(role)
		require.NoError(t, err, "role %q must have a catalog entry", role)
		assert.NotEmpty(t, perms, "role %q must not have an empty default set", role)

		for _, p := range perms {
			assert.True(t, p.Valid(), "role %q grants unknown permission %q", role, p)
		}
	}
}

func TestDefaultPermissions_UnknownRole(t *testing.T) {
	_, err := DefaultPermissions(Role("intern"))
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestValidateCatalog(t *testing.T) {
	assert.NoError(t, ValidateCatalog())
}

func TestDefaultPermissions_AdminHasEverything(t *testing.T) {
	perms, err := DefaultPermissions(RoleAdmin)
	require.NoError(t, err)
	assert.ElementsMatch(t, AllPermissions, perms)
}

func TestDefaultPermissions_SaleCannotSeeAllCustomers(t *testing.T) {
	perms, err := DefaultPermissions(RoleSale)
	require.NoError(t, err)

	set := NewPermissionSet(perms)
	assert.True(t, set.Has(PermissionCRMViewOwnCustomers))
	assert.False(t, set.Has(PermissionCRMViewAllCustomers))
	assert.False(t, set.Has(PermissionCRMDeleteCustomer))
}
