package email_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tourkit/pkg/email"
)

// MockEmailSender is a mock implementation of EmailSender for testing
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendEmail(ctx context.Context, params email.SendEmailParams) error {
	args := m.Called(ctx, params)
	return args.Error(0)
}

func TestSendEmailParams_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts complete params", func(t *testing.T) {
		t.Parallel()

		params := email.SendEmailParams{
			SendTo:   "user@example.com",
			Subject:  "Hello",
			BodyHTML: "<p>Hi</p>",
		}
		assert.NoError(t, params.Validate())
	})

	t.Run("rejects missing or invalid fields", func(t *testing.T) {
		t.Parallel()

		bad := []email.SendEmailParams{
			{Subject: "Hello", BodyHTML: "<p>Hi</p>"},
			{SendTo: "not-an-email", Subject: "Hello", BodyHTML: "<p>Hi</p>"},
			{SendTo: "user@example.com", BodyHTML: "<p>Hi</p>"},
			{SendTo: "user@example.com", Subject: "Hello"},
		}
		for _, params := range bad {
			assert.ErrorIs(t, params.Validate(), email.ErrInvalidParams)
		}
	})
}

func TestMailer_SendWelcome(t *testing.T) {
	t.Parallel()

	t.Run("renders greeting and profile link", func(t *testing.T) {
		t.Parallel()

		sender := &MockEmailSender{}
		mailer := email.NewMailer(sender)

		sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.SendTo == "ayla@example.com" &&
				p.Tag == "welcome" &&
				strings.Contains(p.BodyHTML, "Ayla") &&
				strings.Contains(p.BodyHTML, "https://example.com/me")
		})).Return(nil)

		err := mailer.SendWelcome(context.Background(), "Ayla Jebb", "ayla@example.com", "https://example.com/me")

		require.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("propagates transport failure", func(t *testing.T) {
		t.Parallel()

		sender := &MockEmailSender{}
		mailer := email.NewMailer(sender)

		sender.On("SendEmail", mock.Anything, mock.Anything).Return(errors.New("postmark 500"))

		err := mailer.SendWelcome(context.Background(), "Ayla", "ayla@example.com", "https://example.com/me")
		assert.Error(t, err)
	})
}

func TestMailer_SendPasswordReset(t *testing.T) {
	t.Parallel()

	sender := &MockEmailSender{}
	mailer := email.NewMailer(sender)

	resetURL := "https://example.com/api/v1/users/reset-password/deadbeef"
	sender.On("SendEmail", mock.Anything, mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.Tag == "password-reset" &&
			strings.Contains(p.Subject, "10 minutes") &&
			strings.Contains(p.BodyHTML, resetURL)
	})).Return(nil)

	err := mailer.SendPasswordReset(context.Background(), "Ayla Jebb", "ayla@example.com", resetURL)

	require.NoError(t, err)
	sender.AssertExpectations(t)
}

func TestDevSender(t *testing.T) {
	t.Parallel()

	t.Run("writes email body to disk", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(context.Background(), email.SendEmailParams{
			SendTo:   "user@example.com",
			Subject:  "Test Subject",
			BodyHTML: "<p>Test body</p>",
			Tag:      "test",
		})
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.True(t, strings.HasSuffix(entries[0].Name(), "_test.html"))

		data, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
		require.NoError(t, err)
		assert.Equal(t, "<p>Test body</p>", string(data))
	})

	t.Run("rejects invalid params before writing", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		sender := email.NewDevSender(dir)

		err := sender.SendEmail(context.Background(), email.SendEmailParams{SendTo: "user@example.com"})
		require.ErrorIs(t, err, email.ErrInvalidParams)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})
}
