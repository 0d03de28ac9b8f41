package users

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tourkit/pkg/auth"
)

// Handler exposes the auth flows over HTTP. Mount its Router under
// /api/v1/users.
type Handler struct {
	svc    *auth.Service
	logger *slog.Logger
}

// NewHandler creates the users HTTP handler.
func NewHandler(svc *auth.Service, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		svc:    svc,
		logger: logger,
	}
}

// Router builds the users route tree. Everything below the Protect gate
// requires a live session; the admin listing additionally passes the
// role gate.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Post("/signup", h.signup)
	r.Post("/login", h.login)
	r.Get("/logout", h.logout)
	r.Post("/forgot-password", h.forgotPassword)
	r.Patch("/reset-password/{token}", h.resetPassword)

	r.Group(func(r chi.Router) {
		r.Use(h.svc.Protect())

		r.Patch("/update-password", h.updatePassword)
		r.Get("/me", h.me)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireRoles(auth.RoleAdmin))
			r.Get("/", h.listUsers)
		})
	})

	return r
}

// requestBaseURL reconstructs the absolute base URL of the request for
// building links sent by email. Trusts X-Forwarded-Proto since the service
// runs behind a TLS-terminating proxy in production.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
