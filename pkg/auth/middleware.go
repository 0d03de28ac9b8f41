package auth

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/dmitrymomot/tourkit/core"
	"github.com/dmitrymomot/tourkit/pkg/jwt"
	"github.com/google/uuid"
)

// Token rejection reasons recorded by the authentication gate.
const (
	rejectMissing     = "missing"
	rejectInvalid     = "invalid"
	rejectExpired     = "expired"
	rejectSubjectGone = "subject_gone"
	rejectStale       = "stale"
)

// Protect is the authentication gate. It extracts the session token from
// the Authorization header (preferred) or the session cookie, verifies it,
// resolves the subject against the credential store, rejects tokens issued
// before the subject's last password change, and attaches the resolved user
// to the request context.
//
// All failure modes are the same observable 401: a missing token, a bad
// signature, an expired token, a deleted subject and a stale token must be
// indistinguishable to the client so account existence is not leaked.
func (s *Service) Protect() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, reason := s.resolveRequest(r)
			if user == nil {
				s.metrics.RecordTokenRejected(reason)
				_ = core.WriteError(w, core.NewHTTPError(http.StatusUnauthorized, "unauthenticated"))
				return
			}

			next.ServeHTTP(w, r.WithContext(SetUserToContext(r.Context(), user)))
		})
	}
}

// Optional is the non-throwing variant of Protect for endpoints that render
// differently for anonymous and signed-in callers. Any failure silently
// proceeds as anonymous.
func (s *Service) Optional() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, _ := s.resolveRequest(r); user != nil {
				r = r.WithContext(SetUserToContext(r.Context(), user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// resolveRequest runs the gate algorithm and returns the live user, or nil
// with the rejection reason.
func (s *Service) resolveRequest(r *http.Request) (*User, string) {
	token := s.extractToken(r)
	if token == "" {
		return nil, rejectMissing
	}

	var claims jwt.SessionClaims
	if err := s.tokens.Parse(token, &claims); err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, rejectExpired
		}
		return nil, rejectInvalid
	}

	subjectID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, rejectInvalid
	}

	user, err := s.storage.GetUserByID(r.Context(), subjectID)
	if err != nil {
		return nil, rejectSubjectGone
	}

	if user.ChangedPasswordAfter(claims.IssuedAt) {
		return nil, rejectStale
	}

	return user, ""
}

// extractToken prefers the Authorization header over the cookie, matching
// API clients first and browsers second.
func (s *Service) extractToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if v, err := s.cookies.Get(r, s.cfg.CookieName); err == nil && v != loggedOutValue {
		return v
	}

	return ""
}

// RequireRoles is the authorization gate: a closure capturing the allowed
// role set at route registration. It must run after Protect; a request with
// no resolved user is rejected as unauthenticated, a resolved user outside
// the set as forbidden.
func RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := slices.Clone(roles)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUserFromContext(r.Context())
			if user == nil {
				_ = core.WriteError(w, core.NewHTTPError(http.StatusUnauthorized, "unauthenticated"))
				return
			}

			if !slices.Contains(allowed, user.Role) {
				_ = core.WriteError(w, core.NewHTTPError(http.StatusForbidden, "forbidden"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
