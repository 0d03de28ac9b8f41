package email

import (
	"context"
	"fmt"
	"html/template"
	"strings"
)

// Mailer composes and sends the transactional emails the auth flows need:
// a welcome email after signup and a password-reset email carrying the
// one-time reset link.
type Mailer struct {
	sender EmailSender
}

// NewMailer wraps an EmailSender with the auth email templates.
func NewMailer(sender EmailSender) *Mailer {
	return &Mailer{sender: sender}
}

// SendWelcome sends the post-signup welcome email with a link to the
// recipient's profile page.
func (m *Mailer) SendWelcome(ctx context.Context, name, to, profileURL string) error {
	body, err := renderTemplate(welcomeTemplate, emailData{
		Name: firstName(name),
		URL:  profileURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render welcome email: %w", err)
	}

	return m.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  "Welcome to the Tourkit family!",
		BodyHTML: body,
		Tag:      "welcome",
	})
}

// SendPasswordReset sends the reset link for the pending password reset.
// The link is valid for ten minutes; the caller rolls the pending reset
// back if delivery fails.
func (m *Mailer) SendPasswordReset(ctx context.Context, name, to, resetURL string) error {
	body, err := renderTemplate(passwordResetTemplate, emailData{
		Name: firstName(name),
		URL:  resetURL,
	})
	if err != nil {
		return fmt.Errorf("failed to render password reset email: %w", err)
	}

	return m.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  "Your password reset token (valid for only 10 minutes)",
		BodyHTML: body,
		Tag:      "password-reset",
	})
}

type emailData struct {
	Name string
	URL  string
}

func renderTemplate(tpl *template.Template, data emailData) (string, error) {
	var sb strings.Builder
	if err := tpl.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func firstName(name string) string {
	if i := strings.IndexByte(name, ' '); i > 0 {
		return name[:i]
	}
	return name
}

var welcomeTemplate = template.Must(template.New("welcome").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h1>Hi {{.Name}},</h1>
  <p>Welcome aboard! We're glad to have you.</p>
  <p><a href="{{.URL}}">Visit your profile</a> to upload a photo and look around.</p>
  <p>If you need help, just reply to this email.</p>
</body>
</html>
`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: sans-serif; color: #333;">
  <h1>Hi {{.Name}},</h1>
  <p>Forgot your password? Click the link below to choose a new one.
  The link is valid for 10 minutes.</p>
  <p><a href="{{.URL}}">Reset my password</a></p>
  <p>If you didn't request a password reset, you can safely ignore this email.</p>
</body>
</html>
`))
