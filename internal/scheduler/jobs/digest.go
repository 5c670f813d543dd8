package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/wonny/tradejournal/internal/analytics"
	"github.com/wonny/tradejournal/internal/scheduler"
	"github.com/wonny/tradejournal/pkg/logger"
)

// AdvancedAnalyzer computes the behavioural report for one account (journal.Service)
type AdvancedAnalyzer interface {
	Advanced(ctx context.Context, accountID string, accountBalance float64) (*analytics.AdvancedAnalytics, error)
}

// DigestJob logs a behavioural digest (risk, consistency, signals) per account
type DigestJob struct {
	analyzer AdvancedAnalyzer
	accounts []string
	balance  float64
	schedule string
	logger   *logger.Logger
}

// NewDigestJob creates a new digest job
func NewDigestJob(analyzer AdvancedAnalyzer, accounts []string, balance float64, schedule string, log *logger.Logger) *DigestJob {
	return &DigestJob{
		analyzer: analyzer,
		accounts: accounts,
		balance:  balance,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *DigestJob) Name() string {
	return "behaviour_digest"
}

// Schedule returns the cron schedule (DIGEST_SCHEDULE)
func (j *DigestJob) Schedule() string {
	return j.schedule
}

// Run computes the digest for every configured account.
// 한 계정이 실패해도 나머지는 계속 진행, 에러는 모아서 반환.
// 모든 실패가 ErrInvalidInput 이면 재시도해도 같은 결과라 Permanent 로 표시
func (j *DigestJob) Run(ctx context.Context) error {
	var errs []error

	for _, accountID := range j.accounts {
		if err := ctx.Err(); err != nil {
			return errors.Join(append(errs, err)...)
		}

		report, err := j.analyzer.Advanced(ctx, accountID, j.balance)
		if err != nil {
			errs = append(errs, fmt.Errorf("account %s: %w", accountID, err))
			continue
		}

		log := j.logger.WithField("account_id", accountID)
		log.WithFields(map[string]interface{}{
			"risk_score":        report.RiskScore.Overall,
			"risk_level":        report.RiskScore.Level,
			"consistency":       report.ConsistencyScore.Overall,
			"efficiency":        report.CapitalEfficiency.Score,
			"efficiency_level":  report.CapitalEfficiency.Level,
			"overtrading_flags": len(report.OvertradingSignals),
		}).Info("Behaviour digest")

		for _, s := range report.OvertradingSignals {
			log.WithFields(map[string]interface{}{
				"signal":   s.Type,
				"severity": s.Severity,
			}).Warn(s.Message)
		}
	}

	if len(errs) > 0 && allInvalidInput(errs) {
		return scheduler.Permanent(errors.Join(errs...))
	}
	return errors.Join(errs...)
}

func allInvalidInput(errs []error) bool {
	for _, err := range errs {
		if !errors.Is(err, analytics.ErrInvalidInput) {
			return false
		}
	}
	return true
}
