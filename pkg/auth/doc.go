// Package auth implements the credential and session lifecycle: password
// hashing, stateless session tokens, the authentication and authorization
// gates, and the time-boxed password reset handshake.
//
// # Design
//
// Sessions are a single signed bearer token carrying the subject id and
// issuance time; the server stores nothing per session. Invalidation after
// a password change is implicit: every authentication compares the token's
// issuance time against the subject's PasswordChangedAt, so no revocation
// list exists. Password mutations backdate PasswordChangedAt by one second
// to keep the session issued alongside the change valid.
//
// The reset handshake stores only a SHA-256 digest of the random reset
// secret together with a ten-minute expiry; the raw secret travels once by
// email. A delivery failure rolls the pending reset back so the credential
// record is left exactly as it was.
//
// # Architecture
//
//   - Service – signup/login/reset/update-password orchestration.
//   - middleware.go – Protect / Optional authentication gates and the
//     RequireRoles authorization gate.
//   - password.go – bcrypt hashing with configurable cost.
//   - reset_token.go – random reset secret generation and digesting.
//   - storage.go – consumer-side UserStorage and EmailDelivery interfaces.
//
// # Error Handling
//
// Sentinel errors (ErrInvalidCredentials, ErrUserNotFound,
// ErrResetTokenInvalid, ...) are compared with errors.Is and mapped to
// HTTP status codes at the handler boundary. Login failures and all five
// gate rejection modes intentionally collapse into indistinguishable
// client responses.
package auth
