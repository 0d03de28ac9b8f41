package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStorage defines the credential store operations the auth core needs.
// Implementations must exclude soft-deleted (Active=false) users from every
// lookup and enforce a uniqueness constraint on email.
type UserStorage interface {
	// CreateUser persists a new user. Returns ErrEmailAlreadyExists when
	// the email is taken.
	CreateUser(ctx context.Context, user *User) error

	// GetUserByID returns the active user with the given id, or
	// ErrUserNotFound.
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetUserByEmail returns the active user with the given normalized
	// email, or ErrUserNotFound.
	GetUserByEmail(ctx context.Context, email string) (*User, error)

	// GetUserByResetTokenDigest returns the active user whose stored reset
	// digest matches and whose reset window has not elapsed, or
	// ErrUserNotFound.
	GetUserByResetTokenDigest(ctx context.Context, digest string) (*User, error)

	// SetResetToken stores the pending reset digest and expiry together.
	SetResetToken(ctx context.Context, id uuid.UUID, digest string, expiresAt time.Time) error

	// ClearResetToken removes both pending reset fields.
	ClearResetToken(ctx context.Context, id uuid.UUID) error

	// UpdatePassword stores the new hash, refreshes PasswordChangedAt and
	// clears both reset fields in a single update.
	UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte, changedAt time.Time) error

	// ListUsers returns all active users.
	ListUsers(ctx context.Context) ([]*User, error)
}

// EmailDelivery is the outbound email collaborator. Either call may fail;
// the reset flow rolls back its pending state when delivery fails.
type EmailDelivery interface {
	SendWelcome(ctx context.Context, name, to, profileURL string) error
	SendPasswordReset(ctx context.Context, name, to, resetURL string) error
}
