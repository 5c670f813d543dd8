package journal

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/wonny/tradejournal/internal/analytics"
	"github.com/wonny/tradejournal/internal/contracts"
	"github.com/wonny/tradejournal/internal/metrics"
)

// SnapshotLoader is implemented by sources that can return positions and
// executions in one read (file, HTTP)
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context, accountID string) (contracts.Snapshot, error)
}

// Service loads an account's journal and runs the analytics engine on it
// ⭐ SSOT: 저장소 → 엔진 호출 경로는 여기서만 (API, CLI, scheduler 공용)
type Service struct {
	source  contracts.JournalSource
	metrics *metrics.Metrics
	log     zerolog.Logger
}

// NewService creates a journal analytics service. m may be nil.
func NewService(source contracts.JournalSource, m *metrics.Metrics, log zerolog.Logger) *Service {
	return &Service{
		source:  source,
		metrics: m,
		log:     log,
	}
}

// Load reads one account's snapshot. Positions and executions are
// fetched concurrently unless the source returns both at once.
func (s *Service) Load(ctx context.Context, accountID string) (contracts.Snapshot, error) {
	if loader, ok := s.source.(SnapshotLoader); ok {
		snap, err := loader.LoadSnapshot(ctx, accountID)
		if err != nil {
			return contracts.Snapshot{}, fmt.Errorf("load journal %s: %w", accountID, err)
		}
		return snap, nil
	}

	var snap contracts.Snapshot
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		positions, err := s.source.ListPositions(gctx, accountID)
		if err != nil {
			return fmt.Errorf("list positions: %w", err)
		}
		snap.Positions = positions
		return nil
	})
	g.Go(func() error {
		executions, err := s.source.ListExecutions(gctx, accountID)
		if err != nil {
			return fmt.Errorf("list executions: %w", err)
		}
		snap.Executions = executions
		return nil
	})

	if err := g.Wait(); err != nil {
		return contracts.Snapshot{}, fmt.Errorf("load journal %s: %w", accountID, err)
	}
	return snap, nil
}

// Analytics computes the complete report for one account
func (s *Service) Analytics(ctx context.Context, accountID string, startingBalance float64) (*analytics.CompleteAnalytics, error) {
	start := time.Now()

	snap, err := s.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}

	report, err := analytics.Compute(snap.Positions, snap.Executions, startingBalance)
	if err != nil {
		s.log.Warn().Err(err).Str("account_id", accountID).Msg("journal rejected by analytics")
		return nil, err
	}

	elapsed := time.Since(start)
	s.metrics.ObserveCompute(metrics.KindComplete, elapsed)
	s.metrics.RecordSignals(report.OvertradingSignals)

	s.log.Info().
		Str("account_id", accountID).
		Int("positions", len(snap.Positions)).
		Int("executions", len(snap.Executions)).
		Int("closed", report.Core.TradeCount).
		Float64("net_pnl", report.Core.NetPnL).
		Str("risk_level", string(report.RiskScore.Level)).
		Dur("elapsed", elapsed).
		Msg("Analytics computed")

	return report, nil
}

// Advanced computes the behavioural subset for one account
func (s *Service) Advanced(ctx context.Context, accountID string, accountBalance float64) (*analytics.AdvancedAnalytics, error) {
	start := time.Now()

	snap, err := s.Load(ctx, accountID)
	if err != nil {
		return nil, err
	}

	report, err := analytics.ComputeAdvanced(snap.Positions, snap.Executions, accountBalance)
	if err != nil {
		s.log.Warn().Err(err).Str("account_id", accountID).Msg("journal rejected by analytics")
		return nil, err
	}

	elapsed := time.Since(start)
	s.metrics.ObserveCompute(metrics.KindAdvanced, elapsed)
	s.metrics.RecordSignals(report.OvertradingSignals)

	s.log.Info().
		Str("account_id", accountID).
		Float64("risk_score", report.RiskScore.Overall).
		Float64("consistency", report.ConsistencyScore.Overall).
		Int("signals", len(report.OvertradingSignals)).
		Dur("elapsed", elapsed).
		Msg("Advanced analytics computed")

	return report, nil
}
