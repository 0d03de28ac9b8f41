package core

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrymomot/tourkit/pkg/validator"
)

// Envelope statuses. 2xx responses use StatusSuccess, 4xx use StatusFail
// and 5xx use StatusError.
const (
	StatusSuccess = "success"
	StatusFail    = "fail"
	StatusError   = "error"
)

// JSONResponse is the standard JSON response envelope.
type JSONResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message,omitempty"`
	Token   string              `json:"token,omitempty"`
	Data    any                 `json:"data,omitempty"`
	Errors  map[string][]string `json:"errors,omitempty"`
}

// WriteJSON renders the envelope with the given HTTP status code.
func WriteJSON(w http.ResponseWriter, code int, body JSONResponse) error {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(body)
}

// Success writes a success envelope with optional data payload.
func Success(w http.ResponseWriter, code int, data any) error {
	return WriteJSON(w, code, JSONResponse{
		Status: StatusSuccess,
		Data:   data,
	})
}

// SuccessMessage writes a success envelope carrying only a message.
func SuccessMessage(w http.ResponseWriter, code int, message string) error {
	return WriteJSON(w, code, JSONResponse{
		Status:  StatusSuccess,
		Message: message,
	})
}

// WriteError converts an error into the envelope. HTTPError values keep
// their status code, validation errors become 422 with per-field messages,
// anything else is reported as an opaque 500.
func WriteError(w http.ResponseWriter, err error) error {
	status := http.StatusInternalServerError
	message := http.StatusText(http.StatusInternalServerError)
	var fields map[string][]string

	var httpErr HTTPError
	var valErrs validator.ValidationErrors
	switch {
	case errors.As(err, &valErrs):
		status = http.StatusUnprocessableEntity
		message = "validation failed"
		fields = make(map[string][]string, len(valErrs.Fields()))
		for _, field := range valErrs.Fields() {
			fields[field] = valErrs.Get(field)
		}
	case errors.As(err, &httpErr):
		status = httpErr.Code
		message = httpErr.Key
	}

	return WriteJSON(w, status, JSONResponse{
		Status:  envelopeStatus(status),
		Message: message,
		Errors:  fields,
	})
}

func envelopeStatus(code int) string {
	if code >= http.StatusInternalServerError {
		return StatusError
	}
	return StatusFail
}
