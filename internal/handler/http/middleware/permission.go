package middleware

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/staffdesk/staffdesk-backend-go/internal/guard"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/response"
)

// PermissionGuard wraps guard.Decide as route middleware. Denials are written
// to the audit trail with the route that was attempted.
type PermissionGuard struct {
	recorder audit.Recorder
}

func NewPermissionGuard(recorder audit.Recorder) *PermissionGuard {
	return &PermissionGuard{recorder: recorder}
}

// RequireAny passes callers holding at least one of perms. With no arguments
// it degrades to authentication-only, matching guard.Decide's empty
// requirement semantics.
func (g *PermissionGuard) RequireAny(perms ...identity.Permission) func(http.Handler) http.Handler {
	return g.require(guard.Requirement{Permissions: perms})
}

// RequireAll passes only callers holding every one of perms.
func (g *PermissionGuard) RequireAll(perms ...identity.Permission) func(http.Handler) http.Handler {
	return g.require(guard.Requirement{Permissions: perms, RequireAll: true})
}

func (g *PermissionGuard) require(req guard.Requirement) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			caller, ok := PrincipalFromContext(r.Context())
			if !ok {
				response.Unauthorized(w, "Authentication required")
				return
			}

			switch guard.Decide(caller, req) {
			case guard.Allow:
				next.ServeHTTP(w, r)
			case guard.RedirectLogin:
				response.Unauthorized(w, "Authentication required")
			default:
				g.recordDenial(r, caller)
				response.Forbidden(w, "Insufficient permissions")
			}
		}
		return http.HandlerFunc(hfn)
	}
}

func (g *PermissionGuard) recordDenial(r *http.Request, caller identity.Principal) {
	_ = g.recorder.Record(r.Context(), audit.Entry{
		ID: uuid.NewString(),
		Actor: audit.Actor{
			ID:       caller.ID,
			Name:     caller.FullName,
			Role:     string(caller.Role),
			Username: caller.Username,
		},
		Action:      audit.ActionAccessDenied,
		Entity:      audit.EntitySystem,
		Description: "denied " + r.Method + " " + r.URL.Path,
		IPAddress:   r.RemoteAddr,
		UserAgent:   r.UserAgent(),
		Timestamp:   time.Now().UTC(),
		Success:     false,
	})
}
