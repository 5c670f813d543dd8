package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/tradejournal/internal/contracts"
)

func TestConsistencyScore_NeedsTenTrades(t *testing.T) {
	// 9건 모두 큰 수익이어도 0
	positions := seriesPos("SOL", contracts.SideLong, t0, 24*time.Hour,
		"1000", "1000", "1000", "1000", "1000", "1000", "1000", "1000", "1000")
	got := CalculateConsistencyScore(mustNormalize(t, positions, nil))

	assert.Equal(t, ConsistencyScore{
		Overall:        0,
		Components:     ConsistencyComponents{},
		Recommendation: "Need at least 10 trades to calculate consistency score.",
	}, got)
}

func TestConsistencyScore_PerfectlyRegular(t *testing.T) {
	// 2024-01-01 (월) 부터 매주 1건, 10주
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	positions := seriesPos("SOL", contracts.SideLong, start, 7*24*time.Hour,
		"100", "100", "100", "100", "100", "100", "100", "100", "100", "100")
	got := CalculateConsistencyScore(mustNormalize(t, positions, nil))

	assert.Equal(t, ConsistencyComponents{
		WinRateStability:         100,
		PnLVariance:              100,
		TradeFrequencyRegularity: 100,
		DrawdownRecoveryTime:     100,
		ProfitFactorStability:    100,
	}, got.Components)
	assert.Equal(t, 100.0, got.Overall)
	assert.Equal(t, "Excellent consistency! You trade like a professional.", got.Recommendation)
}

func TestConsistencyScore_Bounded(t *testing.T) {
	positions := seriesPos("SOL", contracts.SideShort, t0, 11*time.Hour,
		"500", "-20", "-20", "-300", "1", "2", "-1000", "40", "0", "-3", "900", "-7")
	got := CalculateConsistencyScore(mustNormalize(t, positions, nil))

	assert.GreaterOrEqual(t, got.Overall, 0.0)
	assert.LessOrEqual(t, got.Overall, 100.0)
	for _, c := range []float64{
		got.Components.WinRateStability,
		got.Components.PnLVariance,
		got.Components.TradeFrequencyRegularity,
		got.Components.DrawdownRecoveryTime,
		got.Components.ProfitFactorStability,
	} {
		assert.GreaterOrEqual(t, c, 0.0)
		assert.LessOrEqual(t, c, 100.0)
	}
}

func TestConsistencyRecommendation(t *testing.T) {
	tests := []struct {
		overall float64
		want    string
	}{
		{70, "Excellent consistency! You trade like a professional."},
		{69, "Good consistency. Focus on maintaining regular trading patterns."},
		{50, "Good consistency. Focus on maintaining regular trading patterns."},
		{30, "Moderate consistency. Work on stabilizing your win rate and PnL."},
		{29, "Low consistency. Your results are too volatile. Focus on a proven strategy."},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, consistencyRecommendation(tt.overall), "overall=%v", tt.overall)
	}
}

func TestISOWeekKey(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2024, 1, 7, 23, 0, 0, 0, time.UTC), "2024-W01"}, // 일요일
		{time.Date(2024, 1, 8, 0, 0, 0, 0, time.UTC), "2024-W02"},  // 월요일
		{time.Date(2024, 12, 30, 12, 0, 0, 0, time.UTC), "2025-W01"},
		{time.Date(2021, 1, 1, 12, 0, 0, 0, time.UTC), "2020-W53"},
	}

	for _, tt := range tests {
		closedAt := tt.at
		assert.Equal(t, tt.want, isoWeekKey(&Trade{ClosedAt: &closedAt}))
	}
}

func TestAvgRecoveryDays(t *testing.T) {
	positions := []contracts.Position{
		closedPos("l1", "SOL", contracts.SideLong, "-10", t0),
		closedPos("l2", "SOL", contracts.SideLong, "-10", t0.Add(24*time.Hour)),
		closedPos("w1", "SOL", contracts.SideLong, "30", t0.Add(48*time.Hour)),
		closedPos("l3", "SOL", contracts.SideLong, "-5", t0.Add(72*time.Hour)), // 회복 없음
	}
	ds := mustNormalize(t, positions, nil)

	// l1 → w1 = 2일, l2 → w1 = 1일
	assert.InDelta(t, 1.5, avgRecoveryDays(ds.chronological()), 1e-9)
}

func TestProfitFactor(t *testing.T) {
	tests := []struct {
		name string
		pnls []string
		want float64
	}{
		{"wins and losses", []string{"30", "-10", "-5"}, 2},
		{"wins only", []string{"30", "1"}, 999},
		{"breakeven only", []string{"0"}, 1},
		{"losses only", []string{"-3"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := mustNormalize(t, seriesPos("SOL", contracts.SideLong, t0, time.Hour, tt.pnls...), nil)
			assert.InDelta(t, tt.want, profitFactor(ds.Closed()), 1e-9)
		})
	}
}
