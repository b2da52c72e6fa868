package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/audit"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/auth"
	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
	"github.com/staffdesk/staffdesk-backend-go/internal/pkg/jwt"
)

type AuthServiceImpl struct {
	identity.IdentityRepository
	jwt.Service
	recorder audit.Recorder
}

func NewAuthService(identityRepository identity.IdentityRepository, jwtService jwt.Service, recorder audit.Recorder) auth.AuthService {
	return &AuthServiceImpl{
		IdentityRepository: identityRepository,
		Service:            jwtService,
		recorder:           recorder,
	}
}

// Verify implements auth.CredentialStore. The username lookup is exact and
// case sensitive. A deactivated identity fails exactly like a wrong password,
// callers cannot probe which accounts exist.
func (a *AuthServiceImpl) Verify(ctx context.Context, username, password string) (identity.Identity, error) {
	ident, err := a.IdentityRepository.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, identity.ErrIdentityNotFound) {
			return identity.Identity{}, auth.ErrInvalidCredentials
		}
		return identity.Identity{}, fmt.Errorf("failed to get identity by username: %w", err)
	}

	if ident.PasswordHash == nil {
		return identity.Identity{}, auth.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*ident.PasswordHash), []byte(password)); err != nil {
		return identity.Identity{}, auth.ErrInvalidCredentials
	}
	if !ident.IsActive {
		return identity.Identity{}, auth.ErrInvalidCredentials
	}

	return ident, nil
}

// Login implements auth.AuthService. Failed attempts are recorded in the
// audit trail with the attempted username; the attempt never reveals whether
// the username or the password was wrong.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest, track auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	ident, err := a.Verify(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			a.record(ctx, audit.Entry{
				Actor:       audit.Actor{Name: req.Username, Username: req.Username},
				Action:      audit.ActionLogin,
				Entity:      audit.EntitySystem,
				Description: "failed login attempt",
				IPAddress:   track.IPAddress,
				UserAgent:   track.UserAgent,
				Success:     false,
			})
		}
		return auth.LoginResponse{}, err
	}

	tokens, err := a.issueTokens(ident)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	a.record(ctx, audit.Entry{
		Actor:       actorSnapshot(ident),
		Action:      audit.ActionLogin,
		Entity:      audit.EntitySystem,
		Description: "logged in",
		IPAddress:   track.IPAddress,
		UserAgent:   track.UserAgent,
		Success:     true,
	})

	return auth.LoginResponse{
		TokenResponse: tokens,
		User:          identity.ToResponse(ident),
	}, nil
}

// LoginWithGoogle implements auth.AuthService. The Google email must already
// belong to an identity record, sign-in never provisions accounts.
func (a *AuthServiceImpl) LoginWithGoogle(ctx context.Context, email string, track auth.SessionTrackingRequest) (auth.LoginResponse, error) {
	ident, err := a.IdentityRepository.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, identity.ErrIdentityNotFound) {
			return auth.LoginResponse{}, auth.ErrEmailNotRegistered
		}
		return auth.LoginResponse{}, fmt.Errorf("failed to get identity by email: %w", err)
	}

	if !ident.IsActive {
		return auth.LoginResponse{}, auth.ErrAccountInactive
	}

	tokens, err := a.issueTokens(ident)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	a.record(ctx, audit.Entry{
		Actor:       actorSnapshot(ident),
		Action:      audit.ActionLogin,
		Entity:      audit.EntitySystem,
		Description: "logged in with Google",
		IPAddress:   track.IPAddress,
		UserAgent:   track.UserAgent,
		Success:     true,
	})

	return auth.LoginResponse{
		TokenResponse: tokens,
		User:          identity.ToResponse(ident),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, identityID string, track auth.SessionTrackingRequest) error {
	ident, err := a.IdentityRepository.GetByID(ctx, identityID)
	if err != nil {
		return fmt.Errorf("failed to get identity by id: %w", err)
	}

	a.record(ctx, audit.Entry{
		Actor:       actorSnapshot(ident),
		Action:      audit.ActionLogout,
		Entity:      audit.EntitySystem,
		Description: "logged out",
		IPAddress:   track.IPAddress,
		UserAgent:   track.UserAgent,
		Success:     true,
	})

	return nil
}

// RefreshToken implements auth.AuthService.
func (a *AuthServiceImpl) RefreshToken(ctx context.Context, req auth.RefreshTokenRequest) (auth.AccessTokenResponse, error) {
	token, err := jwtauth.VerifyToken(a.JWTAuth(), req.RefreshToken)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	claims, err := token.AsMap(ctx)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	tokenType, ok := claims["type"].(string)
	if !ok || tokenType != "refresh" {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	if a.IsTokenRevoked(req.RefreshToken) {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	userID, ok := claims["user_id"].(string)
	if !ok {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}

	ident, err := a.IdentityRepository.GetByID(ctx, userID)
	if err != nil {
		return auth.AccessTokenResponse{}, auth.ErrInvalidToken
	}
	if !ident.IsActive {
		return auth.AccessTokenResponse{}, auth.ErrAccountInactive
	}

	var resp auth.AccessTokenResponse
	resp.AccessToken, resp.AccessTokenExpiresIn, err = a.GenerateAccessToken(ident)
	if err != nil {
		return auth.AccessTokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return resp, nil
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, identityID string) (identity.IdentityResponse, error) {
	ident, err := a.IdentityRepository.GetByID(ctx, identityID)
	if err != nil {
		return identity.IdentityResponse{}, err
	}
	return identity.ToResponse(ident), nil
}

func (a *AuthServiceImpl) issueTokens(ident identity.Identity) (auth.TokenResponse, error) {
	var tokens auth.TokenResponse
	var err error

	tokens.AccessToken, tokens.AccessTokenExpiresIn, err = a.GenerateAccessToken(ident)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}
	tokens.RefreshToken, tokens.RefreshTokenExpiresIn, err = a.GenerateRefreshToken(ident.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}
	return tokens, nil
}

// record stamps and appends an audit entry. A full trail must not block
// logins, so append failures are swallowed here.
func (a *AuthServiceImpl) record(ctx context.Context, entry audit.Entry) {
	entry.ID = uuid.NewString()
	entry.Timestamp = time.Now().UTC()
	_ = a.recorder.Record(ctx, entry)
}

func actorSnapshot(ident identity.Identity) audit.Actor {
	return audit.Actor{
		ID:       ident.ID,
		Name:     ident.FullName,
		Role:     string(ident.Role),
		Username: ident.Username,
	}
}
