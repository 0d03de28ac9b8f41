package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollector(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)

	c.RecordLoginSuccess()
	c.RecordLoginSuccess()
	c.RecordLoginFailure()
	c.RecordTokenRejected("stale")
	c.RecordTokenRejected("stale")
	c.RecordTokenRejected("expired")
	c.RecordPasswordReset("requested")
	c.RecordPasswordReset("completed")

	assert.Equal(t, float64(2), testutil.ToFloat64(c.loginSuccess))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.loginFail))
	assert.Equal(t, float64(2), testutil.ToFloat64(c.tokenRejected.WithLabelValues("stale")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.tokenRejected.WithLabelValues("expired")))
	assert.Equal(t, float64(1), testutil.ToFloat64(c.passwordReset.WithLabelValues("requested")))
}

func TestHandler(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	c := NewCollector(reg)
	c.RecordLoginSuccess()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler(reg).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "tourkit_login_success_total 1"))
}
