// Package jwt implements signing and verification of the stateless session
// tokens used by the authentication layer.
//
// Tokens use the HS256 (HMAC-SHA256) algorithm. Service wraps signing and
// verification and accepts any JSON-serialisable claims structure;
// SessionClaims is the claim set used for sessions, binding a subject id to
// its issuance time with an absolute expiry.
//
// Verification fails closed: a malformed token, a signature mismatch, an
// unexpected algorithm, or an elapsed expiry each return a sentinel error
// that can be inspected with errors.Is. The signing key lives in process
// memory only; the server keeps no per-session state.
package jwt
