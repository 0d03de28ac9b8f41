package core

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tourkit/pkg/validator"
)

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestSuccess(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, Success(rec, http.StatusOK, map[string]any{"answer": 42}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	body := decodeBody(t, rec)
	assert.Equal(t, StatusSuccess, body["status"])
	assert.Equal(t, float64(42), body["data"].(map[string]any)["answer"])
	assert.NotContains(t, body, "message")
	assert.NotContains(t, body, "errors")
}

func TestSuccessMessage(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	require.NoError(t, SuccessMessage(rec, http.StatusOK, "done"))

	body := decodeBody(t, rec)
	assert.Equal(t, StatusSuccess, body["status"])
	assert.Equal(t, "done", body["message"])
}

func TestWriteError(t *testing.T) {
	t.Parallel()

	t.Run("http error keeps its status and key", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, WriteError(rec, ErrNotFound))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, StatusFail, body["status"])
		assert.Equal(t, "not_found", body["message"])
	})

	t.Run("wrapped http error is unwrapped", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		wrapped := errors.Join(ErrConflict, errors.New("duplicate key"))
		require.NoError(t, WriteError(rec, wrapped))

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("validation errors become 422 with per-field messages", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		err := validator.Apply(
			validator.Required("name", ""),
			validator.MinLen("password", "x", 8),
		)
		require.NoError(t, WriteError(rec, err))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, StatusFail, body["status"])

		fields := body["errors"].(map[string]any)
		assert.Contains(t, fields, "name")
		assert.Contains(t, fields, "password")
	})

	t.Run("unknown errors are opaque 500s", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		require.NoError(t, WriteError(rec, errors.New("pq: connection refused")))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, StatusError, body["status"])
		assert.NotContains(t, body["message"], "pq:")
	})
}

func TestEnvelopeStatus(t *testing.T) {
	t.Parallel()

	assert.Equal(t, StatusFail, envelopeStatus(http.StatusBadRequest))
	assert.Equal(t, StatusFail, envelopeStatus(http.StatusUnprocessableEntity))
	assert.Equal(t, StatusError, envelopeStatus(http.StatusInternalServerError))
	assert.Equal(t, StatusError, envelopeStatus(http.StatusServiceUnavailable))
}
