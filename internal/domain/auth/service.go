package auth

import (
	"context"

	"github.com/staffdesk/staffdesk-backend-go/internal/domain/identity"
)

// CredentialStore verifies a username/password pair against the identity
// records. Username matching is exact and case-sensitive, no normalization.
// A matched but deactivated identity is rejected the same as a bad password.
type CredentialStore interface {
	Verify(ctx context.Context, username, password string) (identity.Identity, error)
}

type AuthService interface {
	CredentialStore

	Login(ctx context.Context, req LoginRequest, track SessionTrackingRequest) (LoginResponse, error)
	LoginWithGoogle(ctx context.Context, email string, track SessionTrackingRequest) (LoginResponse, error)
	Logout(ctx context.Context, identityID string, track SessionTrackingRequest) error
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	Me(ctx context.Context, identityID string) (identity.IdentityResponse, error)
}
