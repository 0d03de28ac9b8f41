// Package httpserver provides a thin wrapper around net/http that adds
// graceful shutdown, configurable timeouts, and structured logging via slog.
// Run blocks until the context is cancelled or an interrupt/TERM signal is
// received, then shuts the server down within the configured deadline.
package httpserver
