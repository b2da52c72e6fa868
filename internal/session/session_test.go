package session

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/auth"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCredentialStore struct {
	identities map[string]identity.Identity // username -> identity
	passwords  map[string]string            // username -> plaintext
}

func (f *fakeCredentialStore) Verify(ctx context.Context, username, password string) (identity.Identity, error) {
	ident, ok := f.identities[username]
	if !ok || f.passwords[username] != password {
		return identity.Identity{}, auth.ErrInvalidCredentials
	}
	if !ident.IsActive {
		return identity.Identity{}, auth.ErrInvalidCredentials
	}
	return ident, nil
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

func (m *memoryRecorder) byAction(action audit.Action) []audit.Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []audit.Entry
	for _, e := range m.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

func testIdentity() identity.Identity {
	dept := "dept-3"
	return identity.Identity{
		ID:           "user-3",
		Username:     "sale1",
		FullName:     "Le Van Sale",
		Email:        "sale1@company.com",
		Role:         identity.RoleSale,
		DepartmentID: &dept,
		Permissions: []identity.Permission{
			identity.PermissionCRMViewOwnCustomers,
			identity.PermissionAttendanceCheckin,
		},
		IsActive: true,
	}
}

func newTestSession(t *testing.T) (*Session, *fakeCredentialStore, *memoryRecorder, *FileStore) {
	t.Helper()
	store := NewFileStore(filepath.Join(t.TempDir(), "current_user.json"))
	creds := &fakeCredentialStore{
		identities: map[string]identity.Identity{"sale1": testIdentity()},
		passwords:  map[string]string{"sale1": "password123"},
	}
	recorder := &memoryRecorder{}
	return New(store, creds, recorder, nil), creds, recorder, store
}

func TestSession_AnonymousPredicates(t *testing.T) {
	sess, _, _, _ := newTestSession(t)

	assert.False(t, sess.IsAuthenticated())
	for _, p := range identity.AllPermissions {
		assert.False(t, sess.HasPermission(p), "anonymous must not hold %q", p)
	}

	// Even the vacuous empty-list grants are false while Anonymous.
	assert.False(t, sess.HasAnyPermission(nil))
	assert.False(t, sess.HasAllPermissions(nil))
}

func TestSession_LoginSuccess(t *testing.T) {
	sess, _, recorder, _ := newTestSession(t)
	ctx := context.Background()

	require.NoError(t, sess.Login(ctx, "sale1", "password123"))

	assert.True(t, sess.IsAuthenticated())
	assert.True(t, sess.HasPermission(identity.PermissionCRMViewOwnCustomers))
	assert.False(t, sess.HasPermission(identity.PermissionCRMViewAllCustomers))
	assert.True(t, sess.HasAnyPermission(nil))
	assert.True(t, sess.HasAllPermissions(nil))

	logins := recorder.byAction(audit.ActionLogin)
	require.Len(t, logins, 1)
	assert.True(t, logins[0].Success)
	assert.Equal(t, "user-3", logins[0].Actor.ID)
}

func TestSession_LoginFailureLeavesStateUntouched(t *testing.T) {
	sess, _, recorder, _ := newTestSession(t)
	ctx := context.Background()

	err := sess.Login(ctx, "sale1", "wrong-password")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.False(t, sess.IsAuthenticated())

	// Failed attempts are audited too.
	logins := recorder.byAction(audit.ActionLogin)
	require.Len(t, logins, 1)
	assert.False(t, logins[0].Success)
	assert.Equal(t, "sale1", logins[0].Actor.Username)
}

func TestSession_InactiveAccountRejected(t *testing.T) {
	sess, creds, _, _ := newTestSession(t)
	ident := creds.identities["sale1"]
	ident.IsActive = false
	creds.identities["sale1"] = ident

	err := sess.Login(context.Background(), "sale1", "password123")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	assert.False(t, sess.IsAuthenticated())
}

// Login followed by a fresh process restore yields the same identity with the
// same permission set: persistence is lossless.
func TestSession_RestoreRoundTrip(t *testing.T) {
	sess, creds, recorder, store := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, sess.Login(ctx, "sale1", "password123"))

	before, ok := sess.Current()
	require.True(t, ok)

	restored := New(store, creds, recorder, nil)
	restored.Restore(ctx)

	after, ok := restored.Current()
	require.True(t, ok)
	assert.Equal(t, before.ID, after.ID)
	assert.Equal(t, before.Username, after.Username)
	assert.Equal(t, before.Role, after.Role)
	assert.Equal(t, before.DepartmentID, after.DepartmentID)
	assert.ElementsMatch(t, before.Permissions, after.Permissions)
	assert.Equal(t, before.IsActive, after.IsActive)
}

func TestSession_RestoreWithoutRecordStaysAnonymous(t *testing.T) {
	sess, _, _, _ := newTestSession(t)
	sess.Restore(context.Background())
	assert.False(t, sess.IsAuthenticated())
}

func TestSession_RestoreDiscardsCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "current_user.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path)
	sess := New(store, &fakeCredentialStore{}, &memoryRecorder{}, nil)
	sess.Restore(context.Background())

	assert.False(t, sess.IsAuthenticated())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "corrupt record should be discarded")
}

func TestSession_LogoutIdempotent(t *testing.T) {
	sess, _, recorder, store := newTestSession(t)
	ctx := context.Background()
	require.NoError(t, sess.Login(ctx, "sale1", "password123"))

	sess.Logout(ctx)
	sess.Logout(ctx)

	assert.False(t, sess.IsAuthenticated())
	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found, "persisted record should be erased")

	// Exactly one logout entry: the second call was a no-op.
	assert.Len(t, recorder.byAction(audit.ActionLogout), 1)
}

func TestSession_LogoutWhileAnonymousIsNoOp(t *testing.T) {
	sess, _, recorder, _ := newTestSession(t)
	sess.Logout(context.Background())
	assert.Empty(t, recorder.byAction(audit.ActionLogout))
}

func TestSession_LoginReplacesIdentityWholesale(t *testing.T) {
	sess, creds, _, _ := newTestSession(t)
	ctx := context.Background()

	admin := testIdentity()
	admin.ID = "user-1"
	admin.Username = "admin"
	admin.Role = identity.RoleAdmin
	admin.Permissions = []identity.Permission{identity.PermissionAdminViewAllData}
	creds.identities["admin"] = admin
	creds.passwords["admin"] = "admin-password"

	require.NoError(t, sess.Login(ctx, "sale1", "password123"))
	require.NoError(t, sess.Login(ctx, "admin", "admin-password"))

	current, ok := sess.Current()
	require.True(t, ok)
	assert.Equal(t, "user-1", current.ID)
	assert.False(t, sess.HasPermission(identity.PermissionCRMViewOwnCustomers))
	assert.True(t, sess.HasPermission(identity.PermissionAdminViewAllData))
}
