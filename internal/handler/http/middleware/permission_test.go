package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/jwt"
)

type memoryRecorder struct {
	mu      sync.Mutex
	entries []audit.Entry
}

func (m *memoryRecorder) Record(ctx context.Context, entry audit.Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, entry)
	return nil
}

func testIdentity(role identity.Role) identity.Identity {
	perms, _ := identity.DefaultPermissions(role)
	return identity.Identity{
		ID:          "u-1",
		Username:    "tester",
		FullName:    "Test User",
		Role:        role,
		Permissions: perms,
		IsActive:    true,
	}
}

func newGuardedServer(t *testing.T, jwtService jwt.Service, recorder audit.Recorder, perms ...identity.Permission) *chi.Mux {
	t.Helper()
	pg := NewPermissionGuard(recorder)

	r := chi.NewRouter()
	r.Group(func(r chi.Router) {
		r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
		r.Use(AuthRequired(jwtService.JWTAuth()))
		r.With(pg.RequireAny(perms...)).Get("/guarded", func(w http.ResponseWriter, r *http.Request) {
			caller, ok := PrincipalFromContext(r.Context())
			require.True(t, ok)
			w.Write([]byte(caller.Username))
		})
	})
	return r
}

func TestPermissionGuard_AllowsGrantedCaller(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	recorder := &memoryRecorder{}
	srv := newGuardedServer(t, jwtService, recorder, identity.PermissionCRMViewOwnCustomers)

	token, _, err := jwtService.GenerateAccessToken(testIdentity(identity.RoleSale))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tester", rec.Body.String())
	assert.Empty(t, recorder.entries)
}

func TestPermissionGuard_DeniesAndAudits(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	recorder := &memoryRecorder{}
	srv := newGuardedServer(t, jwtService, recorder, identity.PermissionAdminViewAuditLog)

	token, _, err := jwtService.GenerateAccessToken(testIdentity(identity.RoleSale))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, audit.ActionAccessDenied, entry.Action)
	assert.Equal(t, audit.EntitySystem, entry.Entity)
	assert.False(t, entry.Success)
	assert.Equal(t, "u-1", entry.Actor.ID)
	assert.Contains(t, entry.Description, "/guarded")
}

func TestPermissionGuard_EmptyRequirementIsAuthOnly(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	recorder := &memoryRecorder{}
	srv := newGuardedServer(t, jwtService, recorder)

	token, _, err := jwtService.GenerateAccessToken(testIdentity(identity.RoleSale))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthRequired_RejectsMissingToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	recorder := &memoryRecorder{}
	srv := newGuardedServer(t, jwtService, recorder)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Empty(t, recorder.entries)
}

func TestAuthRequired_RejectsRefreshToken(t *testing.T) {
	jwtService := jwt.NewJWTService("test-secret-key-for-jwt", "1h", "24h")
	recorder := &memoryRecorder{}
	srv := newGuardedServer(t, jwtService, recorder)

	refresh, _, err := jwtService.GenerateRefreshToken("u-1")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+refresh)
	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
