package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/auth"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

// Session holds the current authenticated identity for one client process.
// There is no package-level singleton: the owner constructs one at startup,
// calls Restore, and hands the pointer to whatever needs the predicates.
//
// Two states: Anonymous (no identity) and Authenticated. Login replaces the
// identity wholesale; there is no merge. Predicates never fail, they just
// answer false while Anonymous.
type Session struct {
	mu      sync.RWMutex
	current *identity.Identity

	store    Store
	creds    auth.CredentialStore
	recorder audit.Recorder
	logger   *slog.Logger
}

func New(store Store, creds auth.CredentialStore, recorder audit.Recorder, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		store:    store,
		creds:    creds,
		recorder: recorder,
		logger:   logger,
	}
}

// Restore loads a previously persisted identity. It is the one transition
// into Authenticated that skips credential verification: it trusts the stored
// record. A missing or corrupt record leaves the session Anonymous; a corrupt
// one is discarded so the next start does not trip over it again.
func (s *Session) Restore(ctx context.Context) {
	ident, found, err := s.store.Load()
	if err != nil {
		s.logger.Warn("discarding corrupt session record", "error", err)
		if clearErr := s.store.Clear(); clearErr != nil {
			s.logger.Warn("failed to clear corrupt session record", "error", clearErr)
		}
		return
	}
	if !found {
		return
	}

	s.mu.Lock()
	s.current = &ident
	s.mu.Unlock()
}

// Login verifies credentials and, on success, becomes Authenticated, persists
// the identity and records an audit entry. On failure the session state is
// untouched and the attempt is audited as a failed login.
func (s *Session) Login(ctx context.Context, username, password string) error {
	ident, err := s.creds.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) || errors.Is(err, auth.ErrAccountInactive) {
			s.record(ctx, audit.Entry{
				Actor:       audit.Actor{Name: username, Username: username},
				Action:      audit.ActionLogin,
				Entity:      audit.EntitySystem,
				Description: "Failed sign-in attempt",
				Success:     false,
			})
		}
		return err
	}

	s.mu.Lock()
	s.current = &ident
	s.mu.Unlock()

	if err := s.store.Save(ident); err != nil {
		// The in-memory session is still valid; only the restart restore is
		// lost. Do not fail the login over it.
		s.logger.Warn("failed to persist session record", "error", err)
	}

	s.record(ctx, audit.Entry{
		Actor:       actorSnapshot(ident),
		Action:      audit.ActionLogin,
		Entity:      audit.EntitySystem,
		Description: "Signed in",
		Success:     true,
	})
	return nil
}

// Logout clears the session and erases the persisted record. Calling it while
// Anonymous is a no-op, not an error.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	ident := s.current
	s.current = nil
	s.mu.Unlock()

	if ident == nil {
		return
	}

	s.record(ctx, audit.Entry{
		Actor:       actorSnapshot(*ident),
		Action:      audit.ActionLogout,
		Entity:      audit.EntitySystem,
		Description: "Signed out",
		Success:     true,
	})

	if err := s.store.Clear(); err != nil {
		s.logger.Warn("failed to erase session record", "error", err)
	}
}

// Current returns a copy of the authenticated identity, if any.
func (s *Session) Current() (identity.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return identity.Identity{}, false
	}
	return *s.current, true
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *Session) HasPermission(p identity.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return false
	}
	return s.current.PermissionSet().Has(p)
}

func (s *Session) HasAnyPermission(perms []identity.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return false
	}
	return s.current.PermissionSet().HasAny(perms)
}

func (s *Session) HasAllPermissions(perms []identity.Permission) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return false
	}
	return s.current.PermissionSet().HasAll(perms)
}

func (s *Session) record(ctx context.Context, entry audit.Entry) {
	entry.ID = uuid.NewString()
	entry.Timestamp = time.Now().UTC()
	if err := s.recorder.Record(ctx, entry); err != nil {
		s.logger.Warn("failed to record audit entry", "action", entry.Action, "error", err)
	}
}

func actorSnapshot(ident identity.Identity) audit.Actor {
	return audit.Actor{
		ID:       ident.ID,
		Name:     ident.FullName,
		Role:     string(ident.Role),
		Username: ident.Username,
	}
}
