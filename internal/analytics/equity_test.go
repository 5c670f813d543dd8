package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradejournal/internal/contracts"
)

func TestEquityCurve_LengthAndOrder(t *testing.T) {
	liquidated := closedPos("liq", "BTC", contracts.SideShort, "-500", t0)
	liquidated.Status = contracts.PositionLiquidated

	positions := []contracts.Position{
		closedPos("p3", "SOL", contracts.SideLong, "30", t0.Add(3*time.Hour)),
		closedPos("p1", "SOL", contracts.SideLong, "10", t0.Add(1*time.Hour)),
		openPos("open", "ETH", t0),
		liquidated,
		closedPos("p2", "SOL", contracts.SideLong, "-5", t0.Add(2*time.Hour)),
	}
	curve := BuildEquityCurve(mustNormalize(t, positions, nil), 1000)

	require.Len(t, curve, 3)
	for i := 1; i < len(curve); i++ {
		assert.False(t, curve[i].Timestamp.Before(curve[i-1].Timestamp), "timestamps must be non-decreasing")
		assert.Equal(t, i+1, curve[i].TradeNumber)
	}
	assert.InDelta(t, 10, curve[0].CumulativePnL, 1e-9)
	assert.InDelta(t, 1035, curve[2].Equity, 1e-9)
}

func TestDrawdown_IncreasingCurveIsZero(t *testing.T) {
	positions := seriesPos("SOL", contracts.SideLong, t0, time.Hour, "10", "20", "5", "40")
	dd := AnalyzeDrawdown(BuildEquityCurve(mustNormalize(t, positions, nil), 10000))

	assert.Zero(t, dd.MaxDrawdown)
	assert.Zero(t, dd.CurrentDrawdown)
	assert.Zero(t, dd.MaxDrawdownValue)
	assert.Nil(t, dd.MaxDrawdownDate)
}

func TestDrawdown_PeakToTrough(t *testing.T) {
	positions := seriesPos("SOL", contracts.SideLong, t0, time.Hour, "100", "-220", "50")
	dd := AnalyzeDrawdown(BuildEquityCurve(mustNormalize(t, positions, nil), 1000))

	// equity: 1100, 880, 930
	assert.InDelta(t, 20, dd.MaxDrawdown, 1e-9)
	assert.InDelta(t, 220, dd.MaxDrawdownValue, 1e-9)
	assert.InDelta(t, 170.0/1100*100, dd.CurrentDrawdown, 1e-9)
	require.NotNil(t, dd.MaxDrawdownDate)
	assert.True(t, dd.MaxDrawdownDate.Equal(t0.Add(time.Hour)))
}

func TestDrawdown_MaxDominatesEveryPoint(t *testing.T) {
	positions := seriesPos("SOL", contracts.SideLong, t0, time.Minute,
		"50", "-30", "-40", "120", "-10", "-200", "80", "15", "-5", "60")
	curve := BuildEquityCurve(mustNormalize(t, positions, nil), 500)
	dd := AnalyzeDrawdown(curve)

	peak := curve[0].Equity
	for _, p := range curve {
		if p.Equity > peak {
			peak = p.Equity
		}
		point := (peak - p.Equity) / peak * 100
		assert.GreaterOrEqual(t, dd.MaxDrawdown, point)
	}
	assert.GreaterOrEqual(t, dd.MaxDrawdown, dd.CurrentDrawdown)
}

func TestDrawdown_Empty(t *testing.T) {
	assert.Equal(t, DrawdownMetrics{}, AnalyzeDrawdown(nil))
}
