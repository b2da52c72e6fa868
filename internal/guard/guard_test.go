package guard

import (
	"testing"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/stretchr/testify/assert"
)

// testSubject mirrors the session manager's contract: every predicate is
// false while anonymous.
type testSubject struct {
	authenticated bool
	set           identity.PermissionSet
}

func (s testSubject) IsAuthenticated() bool { return s.authenticated }

func (s testSubject) HasAnyPermission(perms []identity.Permission) bool {
	if !s.authenticated {
		return false
	}
	return s.set.HasAny(perms)
}

func (s testSubject) HasAllPermissions(perms []identity.Permission) bool {
	if !s.authenticated {
		return false
	}
	return s.set.HasAll(perms)
}

func authenticated(perms ...identity.Permission) testSubject {
	return testSubject{authenticated: true, set: identity.NewPermissionSet(perms)}
}

func anonymous() testSubject { return testSubject{} }

func TestDecide(t *testing.T) {
	tests := []struct {
		name string
		sub  Subject
		req  Requirement
		want Decision
	}{
		{
			// Anonymous always goes to login, never to access-denied.
			name: "anonymous with non-empty requirement",
			sub:  anonymous(),
			req:  Requirement{Permissions: []identity.Permission{identity.PermissionCRMViewAllCustomers}},
			want: RedirectLogin,
		},
		{
			name: "anonymous with empty requirement",
			sub:  anonymous(),
			req:  Requirement{},
			want: RedirectLogin,
		},
		{
			name: "authenticated with empty requirement passes on authentication alone",
			sub:  authenticated(),
			req:  Requirement{},
			want: Allow,
		},
		{
			name: "sale denied view_all_customers",
			sub:  authenticated(identity.PermissionCRMViewOwnCustomers),
			req: Requirement{
				Permissions: []identity.Permission{identity.PermissionCRMViewAllCustomers},
			},
			want: RedirectDenied,
		},
		{
			name: "sale allowed when any of two matches",
			sub:  authenticated(identity.PermissionCRMViewOwnCustomers),
			req: Requirement{
				Permissions: []identity.Permission{
					identity.PermissionCRMViewAllCustomers,
					identity.PermissionCRMViewOwnCustomers,
				},
			},
			want: Allow,
		},
		{
			name: "require-all denied on one missing",
			sub:  authenticated(identity.PermissionHRViewSalary),
			req: Requirement{
				Permissions: []identity.Permission{
					identity.PermissionHRViewSalary,
					identity.PermissionHREditSalary,
				},
				RequireAll: true,
			},
			want: RedirectDenied,
		},
		{
			name: "require-all allowed when complete",
			sub:  authenticated(identity.PermissionHRViewSalary, identity.PermissionHREditSalary),
			req: Requirement{
				Permissions: []identity.Permission{
					identity.PermissionHRViewSalary,
					identity.PermissionHREditSalary,
				},
				RequireAll: true,
			},
			want: Allow,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.sub, tt.req))
		})
	}
}

func TestVisibility(t *testing.T) {
	salaryReq := Requirement{
		Permissions: []identity.Permission{identity.PermissionHRViewSalary},
	}

	tests := []struct {
		name string
		sub  Subject
		req  Requirement
		hide bool
		want VisibilityResult
	}{
		{
			name: "empty requirement always shows, even anonymous",
			sub:  anonymous(),
			req:  Requirement{},
			hide: true,
			want: ShowContent,
		},
		{
			// Visibility is purely presentational, anonymous never redirects.
			name: "anonymous with hide flag hides",
			sub:  anonymous(),
			req:  salaryReq,
			hide: true,
			want: Hide,
		},
		{
			name: "anonymous without hide flag falls back",
			sub:  anonymous(),
			req:  salaryReq,
			hide: false,
			want: ShowFallback,
		},
		{
			name: "granted shows content",
			sub:  authenticated(identity.PermissionHRViewSalary),
			req:  salaryReq,
			want: ShowContent,
		},
		{
			name: "denied with hide flag hides",
			sub:  authenticated(identity.PermissionHRViewOwnSalary),
			req:  salaryReq,
			hide: true,
			want: Hide,
		},
		{
			name: "denied without hide flag falls back",
			sub:  authenticated(identity.PermissionHRViewOwnSalary),
			req:  salaryReq,
			hide: false,
			want: ShowFallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Visibility(tt.sub, tt.req, tt.hide))
		})
	}
}
