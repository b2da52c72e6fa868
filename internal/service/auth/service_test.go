package auth

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/auth"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/jwt"
)

const (
	testAccessExp  = "1h"
	testRefreshExp = "24h"
	testSecret     = "test-secret-key-for-jwt"
)

type fakeIdentityRepo struct {
	byUsername map[string]identity.Identity
}

func (f *fakeIdentityRepo) GetByID(ctx context.Context, id string) (identity.Identity, error) {
	for _, ident := range f.byUsername {
		if ident.ID == id {
			return ident, nil
		}
	}
	return identity.Identity{}, identity.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) GetByUsername(ctx context.Context, username string) (identity.Identity, error) {
	ident, ok := f.byUsername[username]
	if !ok {
		return identity.Identity{}, identity.ErrIdentityNotFound
	}
	return ident, nil
}

func (f *fakeIdentityRepo) GetByEmail(ctx context.Context, email string) (identity.Identity, error) {
	for _, ident := range f.byUsername {
		if ident.Email == email {
			return ident, nil
		}
	}
	return identity.Identity{}, identity.ErrIdentityNotFound
}

func (f *fakeIdentityRepo) List(ctx context.Context) ([]identity.Identity, error) {
	return nil, nil
}

func (f *fakeIdentityRepo) Create(ctx context.Context, newIdentity identity.Identity) (identity.Identity, error) {
	f.byUsername[newIdentity.Username] = newIdentity
	return newIdentity, nil
}

func (f *fakeIdentityRepo) UpdateRole(ctx context.Context, id string, role identity.Role, permissions []identity.Permission) error {
	return nil
}

func (f *fakeIdentityRepo) UpdatePermissions(ctx context.Context, id string, permissions []identity.Permission) error {
	return nil
}

func (f *fakeIdentityRepo) SetActive(ctx context.Context, id string, active bool) error {
	return nil
}

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

func newTestService(t *testing.T) (auth.AuthService, *fakeIdentityRepo, *memoryRecorder) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	require.NoError(t, err)
	hashed := string(hash)

	repo := &fakeIdentityRepo{byUsername: map[string]identity.Identity{
		"sale1": {
			ID:           "u-sale",
			Username:     "sale1",
			FullName:     "Sale One",
			Email:        "sale1@staffdesk.io",
			Role:         identity.RoleSale,
			Permissions:  mustDefaults(t, identity.RoleSale),
			IsActive:     true,
			PasswordHash: &hashed,
		},
		"ghost": {
			ID:           "u-ghost",
			Username:     "ghost",
			FullName:     "Former Employee",
			Email:        "ghost@staffdesk.io",
			Role:         identity.RoleHRStaff,
			Permissions:  mustDefaults(t, identity.RoleHRStaff),
			IsActive:     false,
			PasswordHash: &hashed,
		},
	}}

	recorder := &memoryRecorder{}
	jwtService := jwt.NewJWTService(testSecret, testAccessExp, testRefreshExp)
	return NewAuthService(repo, jwtService, recorder), repo, recorder
}

func mustDefaults(t *testing.T, role identity.Role) []identity.Permission {
	t.Helper()
	perms, err := identity.DefaultPermissions(role)
	require.NoError(t, err)
	return perms
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, _, recorder := newTestService(t)

	resp, err := svc.Login(context.Background(),
		auth.LoginRequest{Username: "sale1", Password: "password123"},
		auth.SessionTrackingRequest{IPAddress: "127.0.0.1", UserAgent: "go-test"},
	)

	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Greater(t, resp.AccessTokenExpiresIn, int64(0))
	assert.Equal(t, "sale1", resp.User.Username)
	assert.Contains(t, resp.User.Permissions, "crm:view_own_customers")

	require.Len(t, recorder.entries, 1)
	entry := recorder.entries[0]
	assert.Equal(t, audit.ActionLogin, entry.Action)
	assert.True(t, entry.Success)
	assert.Equal(t, "u-sale", entry.Actor.ID)
	assert.Equal(t, "127.0.0.1", entry.IPAddress)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, _, recorder := newTestService(t)

	_, err := svc.Login(context.Background(),
		auth.LoginRequest{Username: "sale1", Password: "nope"},
		auth.SessionTrackingRequest{},
	)

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	require.Len(t, recorder.entries, 1)
	assert.False(t, recorder.entries[0].Success)
	assert.Equal(t, "sale1", recorder.entries[0].Actor.Username)
}

func TestAuthService_Login_UnknownUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(),
		auth.LoginRequest{Username: "nobody", Password: "password123"},
		auth.SessionTrackingRequest{},
	)

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_CaseSensitiveUsername(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Login(context.Background(),
		auth.LoginRequest{Username: "Sale1", Password: "password123"},
		auth.SessionTrackingRequest{},
	)

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	svc, _, _ := newTestService(t)

	// Correct password, deactivated account. The error must be
	// indistinguishable from a bad password.
	_, err := svc.Login(context.Background(),
		auth.LoginRequest{Username: "ghost", Password: "password123"},
		auth.SessionTrackingRequest{},
	)

	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

func TestAuthService_LoginWithGoogle(t *testing.T) {
	svc, _, recorder := newTestService(t)

	resp, err := svc.LoginWithGoogle(context.Background(), "sale1@staffdesk.io", auth.SessionTrackingRequest{})
	require.NoError(t, err)
	assert.Equal(t, "sale1", resp.User.Username)
	require.Len(t, recorder.entries, 1)
	assert.True(t, recorder.entries[0].Success)

	_, err = svc.LoginWithGoogle(context.Background(), "stranger@gmail.com", auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrEmailNotRegistered)

	_, err = svc.LoginWithGoogle(context.Background(), "ghost@staffdesk.io", auth.SessionTrackingRequest{})
	assert.ErrorIs(t, err, auth.ErrAccountInactive)
}

func TestAuthService_RefreshToken(t *testing.T) {
	svc, _, _ := newTestService(t)

	login, err := svc.Login(context.Background(),
		auth.LoginRequest{Username: "sale1", Password: "password123"},
		auth.SessionTrackingRequest{},
	)
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// An access token must not pass as a refresh token.
	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.RefreshToken(context.Background(), auth.RefreshTokenRequest{RefreshToken: "garbage"})
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestAuthService_Logout_Audited(t *testing.T) {
	svc, _, recorder := newTestService(t)

	err := svc.Logout(context.Background(), "u-sale", auth.SessionTrackingRequest{IPAddress: "127.0.0.1"})
	require.NoError(t, err)

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionLogout, recorder.entries[0].Action)
	assert.Equal(t, "u-sale", recorder.entries[0].Actor.ID)
}

func TestAuthService_Me(t *testing.T) {
	svc, _, _ := newTestService(t)

	me, err := svc.Me(context.Background(), "u-sale")
	require.NoError(t, err)
	assert.Equal(t, "sale1", me.Username)
	assert.Equal(t, "sale", me.Role)
}
