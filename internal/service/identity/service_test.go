package identity

import (
	"context"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type memoryIdentityRepo struct {
	mu         sync.Mutex
	seq        int
	identities map[string]identity.Identity
}

func newMemoryIdentityRepo() *memoryIdentityRepo {
	return &memoryIdentityRepo{identities: make(map[string]identity.Identity)}
}

func (m *memoryIdentityRepo) GetByID(ctx context.Context, id string) (identity.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ident, ok := m.identities[id]
	if !ok {
		return identity.Identity{}, identity.ErrIdentityNotFound
	}
	return ident, nil
}

func (m *memoryIdentityRepo) GetByUsername(ctx context.Context, username string) (identity.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ident := range m.identities {
		if ident.Username == username {
			return ident, nil
		}
	}
	return identity.Identity{}, identity.ErrIdentityNotFound
}

func (m *memoryIdentityRepo) GetByEmail(ctx context.Context, email string) (identity.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ident := range m.identities {
		if ident.Email == email {
			return ident, nil
		}
	}
	return identity.Identity{}, identity.ErrIdentityNotFound
}

func (m *memoryIdentityRepo) List(ctx context.Context) ([]identity.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]identity.Identity, 0, len(m.identities))
	for _, ident := range m.identities {
		out = append(out, ident)
	}
	return out, nil
}

func (m *memoryIdentityRepo) Create(ctx context.Context, newIdentity identity.Identity) (identity.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	newIdentity.ID = "u-" + strconv.Itoa(m.seq)
	m.identities[newIdentity.ID] = newIdentity
	return newIdentity, nil
}

func (m *memoryIdentityRepo) UpdateRole(ctx context.Context, id string, role identity.Role, permissions []identity.Permission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ident, ok := m.identities[id]
	if !ok {
		return identity.ErrIdentityNotFound
	}
	ident.Role = role
	ident.Permissions = permissions
	m.identities[id] = ident
	return nil
}

func (m *memoryIdentityRepo) UpdatePermissions(ctx context.Context, id string, permissions []identity.Permission) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ident, ok := m.identities[id]
	if !ok {
		return identity.ErrIdentityNotFound
	}
	ident.Permissions = permissions
	m.identities[id] = ident
	return nil
}

func (m *memoryIdentityRepo) SetActive(ctx context.Context, id string, active bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ident, ok := m.identities[id]
	if !ok {
		return identity.ErrIdentityNotFound
	}
	ident.IsActive = active
	m.identities[id] = ident
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

func adminPrincipal(t *testing.T) identity.Principal {
	t.Helper()
	perms, err := identity.DefaultPermissions(identity.RoleAdmin)
	require.NoError(t, err)
	return identity.Principal{
		ID:          "u-admin",
		Username:    "admin",
		FullName:    "Admin User",
		Role:        identity.RoleAdmin,
		Permissions: identity.NewPermissionSet(perms),
	}
}

func TestIdentityService_CreateUserGetsRoleDefaults(t *testing.T) {
	repo := newMemoryIdentityRepo()
	recorder := &memoryRecorder{}
	svc := NewIdentityService(repo, recorder)
	admin := adminPrincipal(t)

	created, err := svc.CreateUser(context.Background(), admin, identity.CreateIdentityRequest{
		Username: "sale1",
		Password: "s3cret-pass",
		FullName: "Sale One",
		Email:    "sale1@staffdesk.io",
		Role:     "sale",
	})
	require.NoError(t, err)
	assert.True(t, created.IsActive)

	defaults, err := identity.DefaultPermissions(identity.RoleSale)
	require.NoError(t, err)
	assert.ElementsMatch(t, identity.PermissionStrings(defaults), created.Permissions)

	stored, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*stored.PasswordHash), []byte("s3cret-pass")))

	require.Len(t, recorder.entries, 1)
	assert.Equal(t, audit.ActionCreate, recorder.entries[0].Action)
	assert.Equal(t, audit.EntityUser, recorder.entries[0].Entity)
}

func TestIdentityService_CreateUserDuplicateUsername(t *testing.T) {
	repo := newMemoryIdentityRepo()
	svc := NewIdentityService(repo, &memoryRecorder{})
	admin := adminPrincipal(t)

	req := identity.CreateIdentityRequest{
		Username: "sale1",
		Password: "s3cret-pass",
		FullName: "Sale One",
		Email:    "sale1@staffdesk.io",
		Role:     "sale",
	}
	_, err := svc.CreateUser(context.Background(), admin, req)
	require.NoError(t, err)

	req.Email = "other@staffdesk.io"
	_, err = svc.CreateUser(context.Background(), admin, req)
	assert.ErrorIs(t, err, identity.ErrUsernameExists)
}

func TestIdentityService_HandEditedPermissionsSurviveUntilRoleChange(t *testing.T) {
	repo := newMemoryIdentityRepo()
	svc := NewIdentityService(repo, &memoryRecorder{})
	admin := adminPrincipal(t)

	created, err := svc.CreateUser(context.Background(), admin, identity.CreateIdentityRequest{
		Username: "sale1",
		Password: "s3cret-pass",
		FullName: "Sale One",
		Email:    "sale1@staffdesk.io",
		Role:     "sale",
	})
	require.NoError(t, err)

	// Hand the sale an extra grant outside the role defaults.
	edited := append(created.Permissions, string(identity.PermissionCRMDeleteCustomer))
	updated, err := svc.UpdatePermissions(context.Background(), admin, created.ID, identity.UpdatePermissionsRequest{
		Permissions: edited,
	})
	require.NoError(t, err)
	assert.Contains(t, updated.Permissions, string(identity.PermissionCRMDeleteCustomer))
	assert.Equal(t, "sale", updated.Role)

	// The divergence survives unrelated updates but not a role change.
	afterRoleChange, err := svc.UpdateRole(context.Background(), admin, created.ID, identity.UpdateRoleRequest{
		Role: "sale",
	})
	require.NoError(t, err)
	assert.NotContains(t, afterRoleChange.Permissions, string(identity.PermissionCRMDeleteCustomer))

	defaults, err := identity.DefaultPermissions(identity.RoleSale)
	require.NoError(t, err)
	assert.ElementsMatch(t, identity.PermissionStrings(defaults), afterRoleChange.Permissions)
}

func TestIdentityService_UpdatePermissionsRejectsUnknownToken(t *testing.T) {
	repo := newMemoryIdentityRepo()
	svc := NewIdentityService(repo, &memoryRecorder{})
	admin := adminPrincipal(t)

	created, err := svc.CreateUser(context.Background(), admin, identity.CreateIdentityRequest{
		Username: "sale1",
		Password: "s3cret-pass",
		FullName: "Sale One",
		Email:    "sale1@staffdesk.io",
		Role:     "sale",
	})
	require.NoError(t, err)

	_, err = svc.UpdatePermissions(context.Background(), admin, created.ID, identity.UpdatePermissionsRequest{
		Permissions: []string{"crm:rule_the_world"},
	})
	assert.ErrorIs(t, err, identity.ErrUnknownPermission)
}

func TestIdentityService_SetActiveAudited(t *testing.T) {
	repo := newMemoryIdentityRepo()
	recorder := &memoryRecorder{}
	svc := NewIdentityService(repo, recorder)
	admin := adminPrincipal(t)

	created, err := svc.CreateUser(context.Background(), admin, identity.CreateIdentityRequest{
		Username: "sale1",
		Password: "s3cret-pass",
		FullName: "Sale One",
		Email:    "sale1@staffdesk.io",
		Role:     "sale",
	})
	require.NoError(t, err)

	deactivated, err := svc.SetActive(context.Background(), admin, created.ID, false)
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive)

	last := recorder.entries[len(recorder.entries)-1]
	assert.Equal(t, audit.ActionUpdate, last.Action)
	assert.Contains(t, last.Description, "deactivated")
}
