// Package guard turns a session's permission predicates into routing and
// rendering verdicts. Everything here is a pure function of the subject's
// state plus a declared requirement: no I/O, no redirects performed, safe to
// call any number of times per request.
package guard

import "github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"

// Subject is the slice of the session manager the guards consult. Both
// session.Session and the per-request token subject satisfy it.
type Subject interface {
	IsAuthenticated() bool
	HasAnyPermission(perms []identity.Permission) bool
	HasAllPermissions(perms []identity.Permission) bool
}

// Requirement is the declaration a protected route or fragment carries. An
// empty permission list means "authentication only" for routes and "always
// visible" for fragments.
type Requirement struct {
	Permissions []identity.Permission
	RequireAll  bool
}

// Satisfied evaluates the requirement with its combinator: ALL when
// RequireAll, otherwise ANY.
func (r Requirement) Satisfied(sub Subject) bool {
	if r.RequireAll {
		return sub.HasAllPermissions(r.Permissions)
	}
	return sub.HasAnyPermission(r.Permissions)
}

type Decision int

const (
	Allow Decision = iota
	RedirectLogin
	RedirectDenied
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectLogin:
		return "redirect_login"
	case RedirectDenied:
		return "redirect_denied"
	default:
		return "unknown"
	}
}

// Decide is the route guard. An anonymous subject is sent to login before any
// permission is looked at; an authenticated subject with no declared
// requirement passes on authentication alone.
func Decide(sub Subject, req Requirement) Decision {
	if !sub.IsAuthenticated() {
		return RedirectLogin
	}
	if len(req.Permissions) == 0 {
		return Allow
	}
	if req.Satisfied(sub) {
		return Allow
	}
	return RedirectDenied
}

type VisibilityResult int

const (
	ShowContent VisibilityResult = iota
	ShowFallback
	Hide
)

// Visibility is the conditional rendering guard. Unlike Decide it never
// redirects: denial either hides the fragment or swaps in the caller's
// fallback. An empty requirement always shows content, authenticated or not.
func Visibility(sub Subject, req Requirement, hideIfDenied bool) VisibilityResult {
	if len(req.Permissions) == 0 {
		return ShowContent
	}
	if req.Satisfied(sub) {
		return ShowContent
	}
	if hideIfDenied {
		return Hide
	}
	return ShowFallback
}
