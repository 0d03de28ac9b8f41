// Package metrics collects and exposes Prometheus metrics for the auth
// subsystem: login outcomes, token rejections, and password reset activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// AuthCollector is the interface the auth service and gates record through.
type AuthCollector interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordTokenRejected(reason string)
	RecordPasswordReset(step string)
}

// Collector implements AuthCollector on Prometheus counters.
type Collector struct {
	loginSuccess  prometheus.Counter
	loginFail     prometheus.Counter
	tokenRejected *prometheus.CounterVec
	passwordReset *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		loginSuccess: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourkit_login_success_total",
			Help: "Total number of successful logins.",
		}),
		loginFail: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "tourkit_login_fail_total",
			Help: "Total number of failed login attempts.",
		}),
		tokenRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourkit_token_rejected_total",
			Help: "Session tokens rejected by the authentication gate, by reason.",
		}, []string{"reason"}),
		passwordReset: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tourkit_password_reset_total",
			Help: "Password reset flow activity, by step.",
		}, []string{"step"}),
	}

	reg.MustRegister(
		c.loginSuccess,
		c.loginFail,
		c.tokenRejected,
		c.passwordReset,
	)

	return c
}

// RecordLoginSuccess records a successful login.
func (c *Collector) RecordLoginSuccess() {
	c.loginSuccess.Inc()
}

// RecordLoginFailure records a failed login attempt.
func (c *Collector) RecordLoginFailure() {
	c.loginFail.Inc()
}

// RecordTokenRejected records a token rejected by the authentication gate.
// Reasons: "missing", "invalid", "expired", "subject_gone", "stale".
func (c *Collector) RecordTokenRejected(reason string) {
	c.tokenRejected.WithLabelValues(reason).Inc()
}

// RecordPasswordReset records password reset flow activity.
// Steps: "requested", "delivery_failed", "completed", "rejected".
func (c *Collector) RecordPasswordReset(step string) {
	c.passwordReset.WithLabelValues(step).Inc()
}

// Handler returns the HTTP handler for Prometheus scrapes.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
