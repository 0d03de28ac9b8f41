package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/tourkit/pkg/cookie"
	"github.com/dmitrymomot/tourkit/pkg/environment"
	"github.com/dmitrymomot/tourkit/pkg/jwt"
	"github.com/dmitrymomot/tourkit/pkg/logger"
	"github.com/dmitrymomot/tourkit/pkg/sanitizer"
	"github.com/dmitrymomot/tourkit/pkg/validator"
	"github.com/google/uuid"
)

// Collector records auth outcomes. A no-op implementation is used unless
// one is injected with WithCollector.
type Collector interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordTokenRejected(reason string)
	RecordPasswordReset(step string)
}

type nopCollector struct{}

func (nopCollector) RecordLoginSuccess()            {}
func (nopCollector) RecordLoginFailure()            {}
func (nopCollector) RecordTokenRejected(string)     {}
func (nopCollector) RecordPasswordReset(string)     {}

// Service orchestrates the credential and session lifecycle: signup, login,
// the password reset handshake, authenticated password change, and the
// request gates. It holds no per-session state; session validity is
// recomputed from the token and the subject's current record on every
// request.
type Service struct {
	storage UserStorage
	mailer  EmailDelivery
	tokens  *jwt.Service
	cookies *cookie.Manager
	metrics Collector
	logger  *slog.Logger
	cfg     Config
}

// Option configures the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCollector sets the metrics collector.
func WithCollector(c Collector) Option {
	return func(s *Service) {
		if c != nil {
			s.metrics = c
		}
	}
}

// NewService creates the auth service. The cookie transport is HttpOnly,
// SameSite=Strict, and Secure outside development.
func NewService(storage UserStorage, mailer EmailDelivery, cfg Config, opts ...Option) (*Service, error) {
	tokens, err := jwt.NewFromString(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 90 * 24 * time.Hour
	}
	if cfg.CookieTTL < cfg.TokenTTL {
		cfg.CookieTTL = cfg.TokenTTL
	}
	if cfg.CookieName == "" {
		cfg.CookieName = "session"
	}

	s := &Service{
		storage: storage,
		mailer:  mailer,
		tokens:  tokens,
		cookies: cookie.New(
			cookie.WithSameSite(http.SameSiteStrictMode),
			cookie.WithSecure(environment.IsProduction(cfg.Environment)),
		),
		metrics: nopCollector{},
		logger:  slog.New(slog.DiscardHandler),
		cfg:     cfg,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// IssueToken signs a session token for the subject, bound to the current
// time with the configured absolute lifetime.
func (s *Service) IssueToken(userID uuid.UUID) (string, error) {
	now := time.Now()
	return s.tokens.Generate(jwt.SessionClaims{
		Subject:   userID.String(),
		IssuedAt:  now.Unix(),
		ExpiresAt: now.Add(s.cfg.TokenTTL).Unix(),
	})
}

// SignupParams carries the signup request fields. Role is deliberately not
// accepted here: every signup is a plain user.
type SignupParams struct {
	Name            string
	Email           string
	Password        string
	PasswordConfirm string
	ProfileURL      string
}

// Signup creates a new user and issues a session. The welcome email is best
// effort: a delivery failure is logged but does not fail the signup.
func (s *Service) Signup(ctx context.Context, params SignupParams) (*User, string, error) {
	email := sanitizer.NormalizeEmail(params.Email)

	if err := validator.Apply(
		validator.Required("name", params.Name),
		validator.ValidEmail("email", email),
		validator.MinLen("password", params.Password, 8),
		validator.MaxLen("password", params.Password, 128),
		validator.Matches("passwordConfirm", params.PasswordConfirm, params.Password),
	); err != nil {
		return nil, "", err
	}

	if _, err := s.storage.GetUserByEmail(ctx, email); err == nil {
		return nil, "", ErrEmailAlreadyExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := HashPassword(params.Password, s.cfg.BcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &User{
		ID:           uuid.New(),
		Name:         params.Name,
		Email:        email,
		Role:         RoleUser,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    time.Now(),
	}

	if err := s.storage.CreateUser(ctx, user); err != nil {
		return nil, "", err
	}

	if err := s.mailer.SendWelcome(ctx, user.Name, user.Email, params.ProfileURL); err != nil {
		s.logger.Error("failed to send welcome email",
			logger.UserID(user.ID.String()),
			logger.Error(err),
			logger.Component("auth"),
		)
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Login verifies the credentials and issues a session. Every failure mode
// collapses into ErrInvalidCredentials to prevent account enumeration.
func (s *Service) Login(ctx context.Context, email, password string) (*User, string, error) {
	email = sanitizer.NormalizeEmail(email)

	if email == "" || password == "" {
		s.metrics.RecordLoginFailure()
		return nil, "", ErrInvalidCredentials
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		s.metrics.RecordLoginFailure()
		return nil, "", ErrInvalidCredentials
	}

	if !CheckPassword(password, user.PasswordHash) {
		s.metrics.RecordLoginFailure()
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.metrics.RecordLoginSuccess()
	return user, token, nil
}

// ForgotPassword starts the reset handshake: a random secret's digest and a
// ten-minute expiry are stored on the identity, then the raw secret is
// emailed as a link under resetURLBase. If delivery fails, the pending
// reset is rolled back so the credential state is unchanged, and the
// failure is reported as a retryable delivery error.
func (s *Service) ForgotPassword(ctx context.Context, email, resetURLBase string) error {
	email = sanitizer.NormalizeEmail(email)

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		return err
	}

	raw, digest, err := NewResetToken()
	if err != nil {
		return err
	}

	if err := s.storage.SetResetToken(ctx, user.ID, digest, time.Now().Add(ResetTokenTTL)); err != nil {
		return fmt.Errorf("failed to store reset token: %w", err)
	}

	resetURL := resetURLBase + "/" + raw
	if err := s.mailer.SendPasswordReset(ctx, user.Name, user.Email, resetURL); err != nil {
		if clearErr := s.storage.ClearResetToken(ctx, user.ID); clearErr != nil {
			s.logger.Error("failed to roll back reset token after delivery failure",
				logger.UserID(user.ID.String()),
				logger.Error(clearErr),
				logger.Component("auth"),
			)
		}
		s.metrics.RecordPasswordReset("delivery_failed")
		return errors.Join(ErrEmailDeliveryFailed, err)
	}

	s.metrics.RecordPasswordReset("requested")
	return nil
}

// ResetPassword completes the handshake: the candidate secret is digested
// and matched against a pending, unexpired reset. On match the password is
// replaced and both reset fields are cleared atomically with the update,
// then a fresh session is issued so the user is logged in without
// re-entering credentials.
func (s *Service) ResetPassword(ctx context.Context, rawToken, password, passwordConfirm string) (*User, string, error) {
	if err := validator.Apply(
		validator.MinLen("password", password, 8),
		validator.MaxLen("password", password, 128),
		validator.Matches("passwordConfirm", passwordConfirm, password),
	); err != nil {
		return nil, "", err
	}

	user, err := s.storage.GetUserByResetTokenDigest(ctx, HashResetToken(rawToken))
	if err != nil {
		s.metrics.RecordPasswordReset("rejected")
		return nil, "", ErrResetTokenInvalid
	}

	if err := s.setPassword(ctx, user.ID, password); err != nil {
		return nil, "", err
	}

	user, err = s.storage.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.metrics.RecordPasswordReset("completed")
	return user, token, nil
}

// UpdatePassword changes the password of an authenticated user after
// verifying the current one, then issues a fresh session. The caller's old
// token becomes stale through the PasswordChangedAt comparison; no
// revocation list is involved.
func (s *Service) UpdatePassword(ctx context.Context, userID uuid.UUID, current, password, passwordConfirm string) (*User, string, error) {
	user, err := s.storage.GetUserByID(ctx, userID)
	if err != nil {
		return nil, "", err
	}

	if !CheckPassword(current, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	if err := validator.Apply(
		validator.MinLen("password", password, 8),
		validator.MaxLen("password", password, 128),
		validator.Matches("passwordConfirm", passwordConfirm, password),
	); err != nil {
		return nil, "", err
	}

	if err := s.setPassword(ctx, user.ID, password); err != nil {
		return nil, "", err
	}

	user, err = s.storage.GetUserByID(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	token, err := s.IssueToken(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// ListUsers returns all active users.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	return s.storage.ListUsers(ctx)
}

// setPassword hashes and stores the new password. PasswordChangedAt is
// backdated by one second so a token issued immediately after the change is
// not rejected as stale.
func (s *Service) setPassword(ctx context.Context, userID uuid.UUID, password string) error {
	hash, err := HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	changedAt := time.Now().Add(-time.Second)
	if err := s.storage.UpdatePassword(ctx, userID, hash, changedAt); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}
