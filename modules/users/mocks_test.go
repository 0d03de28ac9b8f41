package users

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/tourkit/pkg/auth"
)

// mockStorage is a mock implementation of auth.UserStorage.
type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) CreateUser(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *mockStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *mockStorage) GetUserByResetTokenDigest(ctx context.Context, digest string) (*auth.User, error) {
	args := m.Called(ctx, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *mockStorage) SetResetToken(ctx context.Context, id uuid.UUID, digest string, expiresAt time.Time) error {
	args := m.Called(ctx, id, digest, expiresAt)
	return args.Error(0)
}

func (m *mockStorage) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *mockStorage) UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte, changedAt time.Time) error {
	args := m.Called(ctx, id, hash, changedAt)
	return args.Error(0)
}

func (m *mockStorage) ListUsers(ctx context.Context) ([]*auth.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auth.User), args.Error(1)
}

// mockMailer is a mock implementation of auth.EmailDelivery.
type mockMailer struct {
	mock.Mock
}

func (m *mockMailer) SendWelcome(ctx context.Context, name, to, profileURL string) error {
	args := m.Called(ctx, name, to, profileURL)
	return args.Error(0)
}

func (m *mockMailer) SendPasswordReset(ctx context.Context, name, to, resetURL string) error {
	args := m.Called(ctx, name, to, resetURL)
	return args.Error(0)
}
