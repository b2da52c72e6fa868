package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_SaveLoadClear(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "state", "current_user.json"))

	_, found, err := store.Load()
	require.NoError(t, err)
	assert.False(t, found)

	ident := testIdentity()
	require.NoError(t, store.Save(ident))

	loaded, found, err := store.Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, ident.ID, loaded.ID)
	assert.Equal(t, ident.Role, loaded.Role)
	assert.ElementsMatch(t, ident.Permissions, loaded.Permissions)

	require.NoError(t, store.Clear())
	_, found, err = store.Load()
	require.NoError(t, err)
	assert.False(t, found)

	// Clearing an already-empty store is not an error.
	assert.NoError(t, store.Clear())
}

// Enumerations are persisted in their string literal form.
func TestFileStore_RecordShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_user.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(testIdentity()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var record map[string]any
	require.NoError(t, json.Unmarshal(raw, &record))
	assert.Equal(t, "sale", record["role"])
	assert.Contains(t, record["permissions"], "crm:view_own_customers")
	assert.NotContains(t, record, "passwordHash")
}

func TestFileStore_LoadDropsForeignPermissionTokens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "current_user.json")
	record := identity.IdentityResponse{
		ID:          "user-9",
		Username:    "edited",
		Role:        "sale",
		Permissions: []string{"crm:view_own_customers", "crm:root_everything"},
		IsActive:    true,
	}
	raw, err := json.Marshal(record)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o600))

	loaded, found, err := NewFileStore(path).Load()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, []identity.Permission{identity.PermissionCRMViewOwnCustomers}, loaded.Permissions)
}
