package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockUserStorage is a mock implementation of UserStorage.
type MockUserStorage struct {
	mock.Mock
}

func (m *MockUserStorage) CreateUser(ctx context.Context, user *User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserStorage) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserStorage) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserStorage) GetUserByResetTokenDigest(ctx context.Context, digest string) (*User, error) {
	args := m.Called(ctx, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*User), args.Error(1)
}

func (m *MockUserStorage) SetResetToken(ctx context.Context, id uuid.UUID, digest string, expiresAt time.Time) error {
	args := m.Called(ctx, id, digest, expiresAt)
	return args.Error(0)
}

func (m *MockUserStorage) ClearResetToken(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockUserStorage) UpdatePassword(ctx context.Context, id uuid.UUID, hash []byte, changedAt time.Time) error {
	args := m.Called(ctx, id, hash, changedAt)
	return args.Error(0)
}

func (m *MockUserStorage) ListUsers(ctx context.Context) ([]*User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*User), args.Error(1)
}

// MockEmailDelivery is a mock implementation of EmailDelivery.
type MockEmailDelivery struct {
	mock.Mock
}

func (m *MockEmailDelivery) SendWelcome(ctx context.Context, name, to, profileURL string) error {
	args := m.Called(ctx, name, to, profileURL)
	return args.Error(0)
}

func (m *MockEmailDelivery) SendPasswordReset(ctx context.Context, name, to, resetURL string) error {
	args := m.Called(ctx, name, to, resetURL)
	return args.Error(0)
}
