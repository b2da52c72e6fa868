package identity

// Principal is the authenticated caller attached to a request after its
// access token is verified. It carries the permission snapshot from the token
// claims, so evaluation never goes back to the database mid-request.
type Principal struct {
	ID          string
	Username    string
	FullName    string
	Role        Role
	Permissions PermissionSet
}

// NewPrincipal builds a Principal from raw claim values.
func NewPrincipal(id, username, fullName, role string, permissions []string) Principal {
	return Principal{
		ID:          id,
		Username:    username,
		FullName:    fullName,
		Role:        Role(role),
		Permissions: NewPermissionSet(PermissionsFromStrings(permissions)),
	}
}

// PrincipalFromIdentity snapshots an identity record into a Principal.
func PrincipalFromIdentity(ident Identity) Principal {
	return Principal{
		ID:          ident.ID,
		Username:    ident.Username,
		FullName:    ident.FullName,
		Role:        ident.Role,
		Permissions: ident.PermissionSet(),
	}
}

// IsAuthenticated always holds for a decoded principal; anonymity is the
// absence of a principal, never a zero-permission one.
func (p Principal) IsAuthenticated() bool {
	return true
}

func (p Principal) Can(perm Permission) bool {
	return p.Permissions.Has(perm)
}

func (p Principal) HasAnyPermission(perms []Permission) bool {
	return p.Permissions.HasAny(perms)
}

func (p Principal) HasAllPermissions(perms []Permission) bool {
	return p.Permissions.HasAll(perms)
}
