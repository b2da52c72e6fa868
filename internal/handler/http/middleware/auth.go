package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/auth"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/staffdesk/staffdesk-backend-go/internal/handler/http/response"
)

type ctxKey int

const principalKey ctxKey = iota

// AuthRequired rejects requests whose token is missing, invalid or not an
// access token, and attaches the decoded identity.Principal to the request
// context for downstream guards and handlers.
func AuthRequired(ja *jwtauth.JWTAuth) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			token, claims, err := jwtauth.FromContext(r.Context())

			if err != nil {
				response.Unauthorized(w, err.Error())
				return
			}

			if token == nil {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			tokenType, ok := claims["type"].(string)
			if tokenType != "access" || !ok {
				response.HandleError(w, auth.ErrInvalidToken)
				return
			}

			ctx := context.WithValue(r.Context(), principalKey, principalFromClaims(claims))
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// PrincipalFromContext returns the caller attached by AuthRequired. The bool
// is false on routes that never passed through it.
func PrincipalFromContext(ctx context.Context) (identity.Principal, bool) {
	p, ok := ctx.Value(principalKey).(identity.Principal)
	return p, ok
}

// principalFromClaims rebuilds the caller from token claims. Unknown
// permission tokens are dropped during conversion, a forged or stale claim
// cannot smuggle grants from outside the universe.
func principalFromClaims(claims map[string]interface{}) identity.Principal {
	str := func(key string) string {
		s, _ := claims[key].(string)
		return s
	}

	var perms []string
	if raw, ok := claims["permissions"].([]interface{}); ok {
		perms = make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				perms = append(perms, s)
			}
		}
	}

	return identity.NewPrincipal(str("user_id"), str("username"), str("name"), str("role"), perms)
}
