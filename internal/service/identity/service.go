package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

type IdentityServiceImpl struct {
	identity.IdentityRepository
	recorder audit.Recorder
}

func NewIdentityService(identityRepository identity.IdentityRepository, recorder audit.Recorder) identity.IdentityService {
	return &IdentityServiceImpl{
		IdentityRepository: identityRepository,
		recorder:           recorder,
	}
}

// ListUsers implements identity.IdentityService.
func (s *IdentityServiceImpl) ListUsers(ctx context.Context) ([]identity.IdentityResponse, error) {
	identities, err := s.IdentityRepository.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]identity.IdentityResponse, len(identities))
	for i, ident := range identities {
		responses[i] = identity.ToResponse(ident)
	}
	return responses, nil
}

// GetUser implements identity.IdentityService.
func (s *IdentityServiceImpl) GetUser(ctx context.Context, id string) (identity.IdentityResponse, error) {
	ident, err := s.IdentityRepository.GetByID(ctx, id)
	if err != nil {
		return identity.IdentityResponse{}, err
	}
	return identity.ToResponse(ident), nil
}

// CreateUser implements identity.IdentityService. The permission list starts
// as the role's catalog defaults; per-user edits come later through
// UpdatePermissions.
func (s *IdentityServiceImpl) CreateUser(ctx context.Context, caller identity.Principal, req identity.CreateIdentityRequest) (identity.IdentityResponse, error) {
	if _, err := s.IdentityRepository.GetByUsername(ctx, req.Username); err == nil {
		return identity.IdentityResponse{}, identity.ErrUsernameExists
	}

	perms, err := identity.DefaultPermissions(identity.Role(req.Role))
	if err != nil {
		return identity.IdentityResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return identity.IdentityResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}
	hashed := string(hash)

	created, err := s.IdentityRepository.Create(ctx, identity.Identity{
		Username:     req.Username,
		FullName:     req.FullName,
		Email:        req.Email,
		Role:         identity.Role(req.Role),
		DepartmentID: req.DepartmentID,
		TeamID:       req.TeamID,
		Permissions:  perms,
		IsActive:     true,
		PasswordHash: &hashed,
	})
	if err != nil {
		return identity.IdentityResponse{}, fmt.Errorf("failed to create identity: %w", err)
	}

	s.record(ctx, caller, audit.ActionCreate, created, "created user "+created.Username)

	return identity.ToResponse(created), nil
}

// UpdateRole implements identity.IdentityService. Changing the role resets
// the permission list to the new role's defaults in the same write.
func (s *IdentityServiceImpl) UpdateRole(ctx context.Context, caller identity.Principal, id string, req identity.UpdateRoleRequest) (identity.IdentityResponse, error) {
	role := identity.Role(req.Role)
	perms, err := identity.DefaultPermissions(role)
	if err != nil {
		return identity.IdentityResponse{}, err
	}

	if err := s.IdentityRepository.UpdateRole(ctx, id, role, perms); err != nil {
		return identity.IdentityResponse{}, err
	}

	updated, err := s.IdentityRepository.GetByID(ctx, id)
	if err != nil {
		return identity.IdentityResponse{}, err
	}

	s.record(ctx, caller, audit.ActionUpdate, updated, "changed role of "+updated.Username+" to "+req.Role)

	return identity.ToResponse(updated), nil
}

// UpdatePermissions implements identity.IdentityService. Tokens outside the
// closed universe are rejected by request validation before this runs; the
// conversion here drops any stragglers instead of persisting them.
func (s *IdentityServiceImpl) UpdatePermissions(ctx context.Context, caller identity.Principal, id string, req identity.UpdatePermissionsRequest) (identity.IdentityResponse, error) {
	perms := identity.PermissionsFromStrings(req.Permissions)
	if len(perms) != len(req.Permissions) {
		return identity.IdentityResponse{}, identity.ErrUnknownPermission
	}

	if err := s.IdentityRepository.UpdatePermissions(ctx, id, perms); err != nil {
		return identity.IdentityResponse{}, err
	}

	updated, err := s.IdentityRepository.GetByID(ctx, id)
	if err != nil {
		return identity.IdentityResponse{}, err
	}

	s.record(ctx, caller, audit.ActionUpdate, updated, "edited permissions of "+updated.Username)

	return identity.ToResponse(updated), nil
}

// SetActive implements identity.IdentityService.
func (s *IdentityServiceImpl) SetActive(ctx context.Context, caller identity.Principal, id string, active bool) (identity.IdentityResponse, error) {
	if err := s.IdentityRepository.SetActive(ctx, id, active); err != nil {
		return identity.IdentityResponse{}, err
	}

	updated, err := s.IdentityRepository.GetByID(ctx, id)
	if err != nil {
		return identity.IdentityResponse{}, err
	}

	verb := "deactivated"
	if active {
		verb = "activated"
	}
	s.record(ctx, caller, audit.ActionUpdate, updated, verb+" user "+updated.Username)

	return identity.ToResponse(updated), nil
}

func (s *IdentityServiceImpl) record(ctx context.Context, caller identity.Principal, action audit.Action, subject identity.Identity, description string) {
	entityID := subject.ID
	entityName := subject.Username
	_ = s.recorder.Record(ctx, audit.Entry{
		ID:          uuid.NewString(),
		Actor:       audit.Actor{ID: caller.ID, Name: caller.FullName, Role: string(caller.Role), Username: caller.Username},
		Action:      action,
		Entity:      audit.EntityUser,
		EntityID:    &entityID,
		EntityName:  &entityName,
		Description: description,
		Timestamp:   time.Now().UTC(),
		Success:     true,
	})
}
