package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrAccountInactive    = errors.New("account is deactivated")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTokenExpired       = errors.New("token has expired")
	ErrEmailNotRegistered  = errors.New("email is not registered")
	ErrNotAuthenticated    = errors.New("not authenticated")
	ErrRefreshTokenMissing = errors.New("refresh token cookie is missing")
)
