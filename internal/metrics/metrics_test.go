package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradejournal/internal/analytics"
)

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest("/api/accounts/{accountID}/analytics", http.MethodGet, 200, 15*time.Millisecond)
	m.ObserveRequest("/api/accounts/{accountID}/analytics", http.MethodGet, 200, 20*time.Millisecond)
	m.ObserveRequest("/api/accounts/{accountID}/analytics", http.MethodGet, 422, 5*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Requests.WithLabelValues("/api/accounts/{accountID}/analytics", "GET", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Requests.WithLabelValues("/api/accounts/{accountID}/analytics", "GET", "422")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.RequestDuration))
}

func TestRecordSignals(t *testing.T) {
	m := New()

	m.RecordSignals([]analytics.Signal{
		{Type: analytics.SignalRevengeTrading, Severity: analytics.SeverityHigh},
		{Type: analytics.SignalChasing, Severity: analytics.SeverityMedium},
		{Type: analytics.SignalChasing, Severity: analytics.SeverityMedium},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Signals.WithLabelValues("REVENGE_TRADING", "HIGH")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Signals.WithLabelValues("CHASING", "MEDIUM")))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRequest("/health", http.MethodGet, 200, time.Millisecond)
		m.ObserveCompute(KindComplete, time.Millisecond)
		m.RecordSignals([]analytics.Signal{{Type: analytics.SignalChasing}})
		m.IncRateLimited()
	})

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlerExposesCollectors(t *testing.T) {
	m := New()
	m.ObserveCompute(KindAdvanced, 3*time.Millisecond)
	m.IncRateLimited()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `tradejournal_analytics_compute_duration_seconds_count{kind="advanced"} 1`))
	assert.True(t, strings.Contains(body, "tradejournal_http_rate_limited_total 1"))
}
