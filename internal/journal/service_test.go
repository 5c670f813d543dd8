package journal

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradejournal/internal/analytics"
	"github.com/wonny/tradejournal/internal/contracts"
	"github.com/wonny/tradejournal/internal/metrics"
)

// stubSource in-memory contracts.JournalSource
type stubSource struct {
	snap         contracts.Snapshot
	positionsErr error
}

func (s *stubSource) ListPositions(ctx context.Context, accountID string) ([]contracts.Position, error) {
	if s.positionsErr != nil {
		return nil, s.positionsErr
	}
	return s.snap.ForAccount(accountID).Positions, nil
}

func (s *stubSource) ListExecutions(ctx context.Context, accountID string) ([]contracts.Execution, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.snap.ForAccount(accountID).Executions, nil
}

func TestService_Load(t *testing.T) {
	svc := NewService(&stubSource{snap: mixedSnapshot()}, nil, zerolog.Nop())

	snap, err := svc.Load(context.Background(), otherAccount)
	require.NoError(t, err)
	assert.Len(t, snap.Positions, 1)
	assert.Len(t, snap.Executions, 1)
}

func TestService_LoadError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewService(&stubSource{positionsErr: boom}, nil, zerolog.Nop())

	_, err := svc.Load(context.Background(), DemoAccountID)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestService_Analytics(t *testing.T) {
	m := metrics.New()
	svc := NewService(&stubSource{snap: mixedSnapshot()}, m, zerolog.Nop())

	report, err := svc.Analytics(context.Background(), DemoAccountID, analytics.DefaultBalance)
	require.NoError(t, err)

	want, err := analytics.Compute(
		DemoSnapshot(DemoAccountID, demoEnd).Positions,
		DemoSnapshot(DemoAccountID, demoEnd).Executions,
		analytics.DefaultBalance,
	)
	require.NoError(t, err)
	assert.Equal(t, want, report)

	assert.Equal(t, 1, testutil.CollectAndCount(m.ComputeDuration))
}

func TestService_Advanced(t *testing.T) {
	svc := NewService(&stubSource{snap: mixedSnapshot()}, metrics.New(), zerolog.Nop())

	report, err := svc.Advanced(context.Background(), otherAccount, 5000)
	require.NoError(t, err)
	assert.NotNil(t, report.OvertradingSignals)
	assert.Equal(t, 200.0, report.CapitalEfficiency.TotalCapitalDeployed)
}

func TestService_InvalidInput(t *testing.T) {
	snap := mixedSnapshot()
	for i := range snap.Positions {
		if snap.Positions[i].AccountID == otherAccount {
			snap.Positions[i].RealizedPnL = nil
		}
	}
	svc := NewService(&stubSource{snap: snap}, nil, zerolog.Nop())

	_, err := svc.Analytics(context.Background(), otherAccount, analytics.DefaultBalance)
	require.Error(t, err)
	assert.ErrorIs(t, err, analytics.ErrInvalidInput)

	_, err = svc.Advanced(context.Background(), otherAccount, analytics.DefaultBalance)
	assert.ErrorIs(t, err, analytics.ErrInvalidInput)
}

func TestService_UsesSnapshotLoader(t *testing.T) {
	path := t.TempDir() + "/journal.json"
	require.NoError(t, WriteSnapshotFile(path, mixedSnapshot()))

	svc := NewService(NewFileSource(path), nil, zerolog.Nop())
	snap, err := svc.Load(context.Background(), DemoAccountID)
	require.NoError(t, err)
	assert.Len(t, snap.Positions, demoPositions)
}
