package auth

import (
	"net/http"

	"github.com/dmitrymomot/tourkit/pkg/cookie"
)

// loggedOutValue overwrites the session cookie on logout. HttpOnly cookies
// cannot be removed by client script, so logout replaces the token with a
// short-lived dummy value the gate will never accept.
const loggedOutValue = "logged-out"

// WriteSessionCookie delivers the session token as the transport cookie.
// The cookie lifetime matches or exceeds the token lifetime so the gate,
// not the browser, decides when a session ends.
func (s *Service) WriteSessionCookie(w http.ResponseWriter, token string) {
	s.cookies.Set(w, s.cfg.CookieName, token,
		cookie.WithMaxAge(int(s.cfg.CookieTTL.Seconds())),
	)
}

// ClearSessionCookie implements logout by replacing the session cookie with
// a ten-second dummy value.
func (s *Service) ClearSessionCookie(w http.ResponseWriter) {
	s.cookies.Set(w, s.cfg.CookieName, loggedOutValue,
		cookie.WithMaxAge(10),
	)
}

// CookieName returns the name of the session transport cookie.
func (s *Service) CookieName() string {
	return s.cfg.CookieName
}
