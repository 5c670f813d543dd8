package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wonny/tradejournal/internal/api/handlers"
	"github.com/wonny/tradejournal/internal/metrics"
	"github.com/wonny/tradejournal/pkg/logger"
)

// NewRouter creates and configures the HTTP router.
// m 이 nil 이면 /metrics 는 등록하지 않는다. proxies 가 비어 있으면
// X-Forwarded-For 는 무시된다.
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(analyticsHandler *handlers.AnalyticsHandler, limiter Limiter, proxies TrustedProxies, m *metrics.Metrics, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	if m != nil {
		r.Handle("/metrics", m.Handler()).Methods("GET")
	}

	// API
	api := r.PathPrefix("/api").Subrouter()

	// Analytics endpoints
	api.HandleFunc("/accounts/{accountID}/analytics", analyticsHandler.GetAnalytics).Methods("GET")
	api.HandleFunc("/accounts/{accountID}/analytics/advanced", analyticsHandler.GetAdvanced).Methods("GET")

	api.Use(rateLimitMiddleware(limiter, proxies, log, m))

	// Apply middleware
	r.Use(loggingMiddleware(log, m))
	r.Use(recoveryMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "tradejournal-api",
	})
}
