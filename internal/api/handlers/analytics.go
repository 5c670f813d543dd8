package handlers

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/wonny/tradejournal/internal/analytics"
	"github.com/wonny/tradejournal/pkg/logger"
)

// AnalyticsService computes reports for one account (journal.Service)
type AnalyticsService interface {
	Analytics(ctx context.Context, accountID string, startingBalance float64) (*analytics.CompleteAnalytics, error)
	Advanced(ctx context.Context, accountID string, accountBalance float64) (*analytics.AdvancedAnalytics, error)
}

// AnalyticsHandler handles analytics API endpoints
// ⭐ SSOT: 분석 API 핸들러는 이 구조체에서만
type AnalyticsHandler struct {
	service        AnalyticsService
	defaultBalance float64
	logger         *logger.Logger
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(service AnalyticsService, defaultBalance float64, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{
		service:        service,
		defaultBalance: defaultBalance,
		logger:         log,
	}
}

// GetAnalytics returns the complete analytics report
// GET /api/accounts/{accountID}/analytics?startingBalance=10000
func (h *AnalyticsHandler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	balance, err := h.balance(r, "startingBalance")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Analytics(r.Context(), accountID, balance)
	if err != nil {
		h.respondServiceError(w, err, accountID, "Failed to calculate analytics")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// GetAdvanced returns risk, overtrading, consistency and capital efficiency
// GET /api/accounts/{accountID}/analytics/advanced?accountBalance=10000
func (h *AnalyticsHandler) GetAdvanced(w http.ResponseWriter, r *http.Request) {
	accountID, ok := h.accountID(w, r)
	if !ok {
		return
	}

	balance, err := h.balance(r, "accountBalance")
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.service.Advanced(r.Context(), accountID, balance)
	if err != nil {
		h.respondServiceError(w, err, accountID, "Failed to calculate advanced analytics")
		return
	}

	respondJSON(w, http.StatusOK, report)
}

// accountID reads and validates the {accountID} path variable (uuid)
func (h *AnalyticsHandler) accountID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := mux.Vars(r)["accountID"]
	id, err := uuid.Parse(raw)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid account id %q", raw))
		return "", false
	}
	return id.String(), true
}

// balance parses an optional positive balance query parameter
func (h *AnalyticsHandler) balance(r *http.Request, param string) (float64, error) {
	raw := r.URL.Query().Get(param)
	if raw == "" {
		return h.defaultBalance, nil
	}

	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive number, got %q", param, raw)
	}
	return v, nil
}

func (h *AnalyticsHandler) respondServiceError(w http.ResponseWriter, err error, accountID, message string) {
	var invalid *analytics.InvalidInputError
	if errors.As(err, &invalid) {
		// 저장소 데이터 문제: 재시도해도 결과 같음
		respondError(w, http.StatusUnprocessableEntity, invalid.Error())
		return
	}

	h.logger.WithError(err).WithField("account_id", accountID).Error(message)
	respondError(w, http.StatusInternalServerError, message)
}
