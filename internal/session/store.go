package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

// Store persists the current identity across process restarts. The record is
// written whole on login and erased whole on logout; there are no partial
// updates.
type Store interface {
	Save(ident identity.Identity) error
	// Load returns (identity, true, nil) when a record exists, (zero, false,
	// nil) when none does, and a non-nil error only for unreadable or corrupt
	// records.
	Load() (identity.Identity, bool, error)
	Clear() error
}

// FileStore keeps the session record as a single JSON file at a well-known
// path. The serialized shape is identity.IdentityResponse, so every field of
// the identity round-trips losslessly with enums in string literal form.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Save(ident identity.Identity) error {
	data, err := json.Marshal(identity.ToResponse(ident))
	if err != nil {
		return fmt.Errorf("encode session record: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session record: %w", err)
	}
	return nil
}

func (s *FileStore) Load() (identity.Identity, bool, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return identity.Identity{}, false, nil
		}
		return identity.Identity{}, false, fmt.Errorf("read session record: %w", err)
	}

	var record identity.IdentityResponse
	if err := json.Unmarshal(data, &record); err != nil {
		return identity.Identity{}, false, fmt.Errorf("decode session record: %w", err)
	}
	return record.ToIdentity(), true, nil
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session record: %w", err)
	}
	return nil
}
