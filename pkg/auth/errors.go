package auth

import "errors"

// General authentication errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrForbidden          = errors.New("insufficient permissions")
)

// Password reset errors
var (
	ErrResetTokenInvalid   = errors.New("reset token is invalid or has expired")
	ErrEmailDeliveryFailed = errors.New("failed to deliver email")
)

// Internal errors
var (
	ErrHashingFailed = errors.New("failed to hash password")
)
