package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/tradejournal/internal/contracts"
)

func TestCapitalEfficiency_Empty(t *testing.T) {
	got := CalculateCapitalEfficiency(mustNormalize(t, []contracts.Position{openPos("p1", "SOL", t0)}, nil))

	assert.Equal(t, CapitalEfficiency{
		Score:                0,
		Level:                EfficiencyInefficient,
		TotalCapitalDeployed: 0,
		NetPnL:               0,
		Recommendation:       "No closed positions to analyze.",
	}, got)
}

func TestCapitalEfficiency_Boundaries(t *testing.T) {
	tests := []struct {
		pnl       string
		wantScore float64
		wantLevel EfficiencyLevel
	}{
		{"49.9", 4.99, EfficiencyInefficient},
		{"49.94", 4.99, EfficiencyInefficient},
		// raw 4.996 은 5 로 반올림된 뒤 분류된다
		{"49.96", 5, EfficiencyAverage},
		{"50", 5, EfficiencyAverage},
		{"149.9", 14.99, EfficiencyAverage},
		{"150", 15, EfficiencyGood},
		{"299.9", 29.99, EfficiencyGood},
		{"300", 30, EfficiencyExcellent},
		{"-100", -10, EfficiencyInefficient},
	}

	for _, tt := range tests {
		t.Run(tt.pnl, func(t *testing.T) {
			// totalVolume 1000 → score = pnl / 10
			positions := []contracts.Position{closedPos("p1", "SOL", contracts.SideLong, tt.pnl, t0)}
			got := CalculateCapitalEfficiency(mustNormalize(t, positions, nil))

			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Equal(t, efficiencyRecommendations[tt.wantLevel], got.Recommendation)
		})
	}
}

func TestCapitalEfficiency_SubtractsExecutionFees(t *testing.T) {
	positions := []contracts.Position{
		closedPos("p1", "SOL", contracts.SideLong, "120", t0),
		closedPos("p2", "SOL", contracts.SideLong, "0", t0),
	}
	executions := []contracts.Execution{
		fill("e1", "p1", contracts.OrderTypeMarket, "1000", "10", false, t0),
		fill("e2", "p2", contracts.OrderTypeMarket, "1000", "10", false, t0),
	}
	got := CalculateCapitalEfficiency(mustNormalize(t, positions, executions))

	assert.InDelta(t, 2000, got.TotalCapitalDeployed, 1e-9)
	assert.InDelta(t, 100, got.NetPnL, 1e-9)
	assert.Equal(t, 5.0, got.Score)
	assert.Equal(t, EfficiencyAverage, got.Level)
}
