package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradejournal/internal/analytics"
	"github.com/wonny/tradejournal/internal/contracts"
)

func TestDemoSnapshot_Deterministic(t *testing.T) {
	a := DemoSnapshot(DemoAccountID, demoEnd)
	b := DemoSnapshot(DemoAccountID, demoEnd)

	assert.Equal(t, a, b)
	assert.Len(t, a.Positions, demoPositions)
}

func TestDemoSnapshot_Shape(t *testing.T) {
	snap := DemoSnapshot(DemoAccountID, demoEnd)

	closed := 0
	for _, p := range snap.Positions {
		assert.Equal(t, DemoAccountID, p.AccountID)
		assert.False(t, p.OpenedAt.After(demoEnd))

		if p.Status == contracts.PositionClosed {
			closed++
			require.NotNil(t, p.ClosedAt, "closed position %s", p.ID)
			require.NotNil(t, p.RealizedPnL, "closed position %s", p.ID)
			assert.False(t, p.ClosedAt.Before(p.OpenedAt))
		} else {
			assert.Nil(t, p.ClosedAt)
			assert.Nil(t, p.RealizedPnL)
		}
	}
	assert.Equal(t, snap.ClosedCount(), closed)
	assert.Equal(t, len(snap.Positions)+closed, len(snap.Executions))

	for _, e := range snap.Executions {
		require.NotNil(t, e.PositionID)
	}
}

func TestDemoSnapshot_Analyzable(t *testing.T) {
	snap := DemoSnapshot(DemoAccountID, demoEnd)

	report, err := analytics.Compute(snap.Positions, snap.Executions, analytics.DefaultBalance)
	require.NoError(t, err)

	assert.Equal(t, snap.ClosedCount(), report.Core.TradeCount)
	assert.Len(t, report.EquityCurve, snap.ClosedCount())
	assert.Len(t, report.HourlyPerformance, 24)
}
