// Package email provides outbound email delivery behind the EmailSender
// interface, with a Postmark-backed implementation for production and a
// DevSender that writes emails to disk for local development.
//
// Mailer sits on top of EmailSender and renders the transactional emails
// used by the auth flows (welcome, password reset). Delivery failures are
// reported as errors wrapping ErrFailedToSendEmail so the caller can react,
// e.g. by rolling back a pending password reset.
package email
