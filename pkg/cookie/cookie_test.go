package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tourkit/pkg/cookie"
)

func TestManager_SetGet(t *testing.T) {
	t.Parallel()

	t.Run("round trips a value", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()

		rec := httptest.NewRecorder()
		m.Set(rec, "session", "token-value")

		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(cookies[0])

		got, err := m.Get(req, "session")
		require.NoError(t, err)
		assert.Equal(t, "token-value", got)
	})

	t.Run("defaults are http-only lax on root path", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()

		rec := httptest.NewRecorder()
		m.Set(rec, "session", "v")

		c := rec.Result().Cookies()[0]
		assert.True(t, c.HttpOnly)
		assert.False(t, c.Secure)
		assert.Equal(t, "/", c.Path)
		assert.Equal(t, http.SameSiteLaxMode, c.SameSite)
	})

	t.Run("manager options apply to every cookie", func(t *testing.T) {
		t.Parallel()

		m := cookie.New(
			cookie.WithSecure(true),
			cookie.WithSameSite(http.SameSiteStrictMode),
		)

		rec := httptest.NewRecorder()
		m.Set(rec, "session", "v")

		c := rec.Result().Cookies()[0]
		assert.True(t, c.Secure)
		assert.Equal(t, http.SameSiteStrictMode, c.SameSite)
	})

	t.Run("per-call options override defaults", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()

		rec := httptest.NewRecorder()
		m.Set(rec, "session", "v", cookie.WithMaxAge(60))

		assert.Equal(t, 60, rec.Result().Cookies()[0].MaxAge)
	})

	t.Run("missing cookie returns sentinel", func(t *testing.T) {
		t.Parallel()

		m := cookie.New()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		_, err := m.Get(req, "absent")
		assert.ErrorIs(t, err, cookie.ErrCookieNotFound)
	})
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m := cookie.New()

	rec := httptest.NewRecorder()
	m.Delete(rec, "session")

	c := rec.Result().Cookies()[0]
	assert.Equal(t, "", c.Value)
	assert.Equal(t, -1, c.MaxAge)
}
