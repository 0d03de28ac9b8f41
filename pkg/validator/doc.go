// Package validator provides small composable validation rules for request
// payloads. Rules are plain values combined with Apply, which returns
// ValidationErrors carrying per-field messages suitable for API responses.
package validator
