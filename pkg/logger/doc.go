// Package logger builds configured log/slog loggers with environment-aware
// defaults (text/debug in development, JSON/info in production) and provides
// attribute helpers for consistent key naming across the codebase.
package logger
