package users

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/tourkit/core"
	"github.com/dmitrymomot/tourkit/pkg/auth"
	"github.com/dmitrymomot/tourkit/pkg/logger"
	"github.com/dmitrymomot/tourkit/pkg/validator"
)

type signupRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = core.WriteError(w, core.ErrBadRequest)
		return
	}

	user, token, err := h.svc.Signup(r.Context(), auth.SignupParams{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		PasswordConfirm: req.PasswordConfirm,
		ProfileURL:      requestBaseURL(r) + "/me",
	})
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.sendSession(w, http.StatusCreated, user, token)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = core.WriteError(w, core.ErrBadRequest)
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.sendSession(w, http.StatusOK, user, token)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.svc.ClearSessionCookie(w)
	_ = core.SuccessMessage(w, http.StatusOK, "logged out")
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

func (h *Handler) forgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = core.WriteError(w, core.ErrBadRequest)
		return
	}

	resetURLBase := requestBaseURL(r) + "/api/v1/users/reset-password"
	if err := h.svc.ForgotPassword(r.Context(), req.Email, resetURLBase); err != nil {
		h.writeServiceError(w, err)
		return
	}

	_ = core.SuccessMessage(w, http.StatusOK, "token sent to email")
}

type resetPasswordRequest struct {
	Password        string `json:"password"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = core.WriteError(w, core.ErrBadRequest)
		return
	}

	user, token, err := h.svc.ResetPassword(r.Context(), chi.URLParam(r, "token"), req.Password, req.PasswordConfirm)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.sendSession(w, http.StatusOK, user, token)
}

type updatePasswordRequest struct {
	Password        string `json:"password"`
	NewPassword     string `json:"newPassword"`
	PasswordConfirm string `json:"passwordConfirm"`
}

func (h *Handler) updatePassword(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r.Context())
	if user == nil {
		_ = core.WriteError(w, core.NewHTTPError(http.StatusUnauthorized, "unauthenticated"))
		return
	}

	var req updatePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = core.WriteError(w, core.ErrBadRequest)
		return
	}

	user, token, err := h.svc.UpdatePassword(r.Context(), user.ID, req.Password, req.NewPassword, req.PasswordConfirm)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	h.sendSession(w, http.StatusOK, user, token)
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUserFromContext(r.Context())
	if user == nil {
		_ = core.WriteError(w, core.NewHTTPError(http.StatusUnauthorized, "unauthenticated"))
		return
	}

	_ = core.Success(w, http.StatusOK, map[string]any{"user": user})
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	_ = core.Success(w, http.StatusOK, map[string]any{"users": users})
}

// sendSession delivers a fresh session: cookie plus envelope with the token
// and the user record. The password hash never serializes (json:"-").
func (h *Handler) sendSession(w http.ResponseWriter, statusCode int, user *auth.User, token string) {
	h.svc.WriteSessionCookie(w, token)
	_ = core.WriteJSON(w, statusCode, core.JSONResponse{
		Status: core.StatusSuccess,
		Token:  token,
		Data:   map[string]any{"user": user},
	})
}

// writeServiceError maps domain errors onto the response envelope.
func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case validator.IsValidationError(err):
		_ = core.WriteError(w, err)
	case errors.Is(err, auth.ErrInvalidCredentials):
		_ = core.WriteError(w, core.NewHTTPError(http.StatusUnauthorized, "invalid_credentials"))
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		_ = core.WriteError(w, core.NewHTTPError(http.StatusConflict, "email_already_exists"))
	case errors.Is(err, auth.ErrUserNotFound):
		_ = core.WriteError(w, core.ErrNotFound)
	case errors.Is(err, auth.ErrResetTokenInvalid):
		_ = core.WriteError(w, core.NewHTTPError(http.StatusBadRequest, "reset_token_invalid_or_expired"))
	default:
		h.logger.Error("request failed", logger.Error(err), logger.Component("users"))
		_ = core.WriteError(w, core.ErrInternalServerError)
	}
}
