package analytics

import (
	"github.com/wonny/tradejournal/internal/contracts"
)

// DefaultBalance starting/account balance when the caller does not supply one
const DefaultBalance = 10000.0

// =============================================================================
// Orchestrator
// ⭐ SSOT: 리포트 조립은 여기서만. 컴포넌트 간 의존은 EquityCurve → Drawdown 뿐
// =============================================================================

// Compute normalizes the snapshot and builds the complete report.
// The only error is *InvalidInputError.
func Compute(positions []contracts.Position, executions []contracts.Execution, startingBalance float64) (*CompleteAnalytics, error) {
	ds, err := Normalize(positions, executions)
	if err != nil {
		return nil, err
	}
	return Analyze(ds, startingBalance), nil
}

// ComputeAdvanced behavioural subset only
func ComputeAdvanced(positions []contracts.Position, executions []contracts.Execution, accountBalance float64) (*AdvancedAnalytics, error) {
	ds, err := Normalize(positions, executions)
	if err != nil {
		return nil, err
	}
	return AnalyzeAdvanced(ds, accountBalance), nil
}

// Analyze builds the complete report from a normalized dataset.
// startingBalance also serves as the account balance for risk scoring.
func Analyze(ds *Dataset, startingBalance float64) *CompleteAnalytics {
	curve := BuildEquityCurve(ds, startingBalance)
	adv := AnalyzeAdvanced(ds, startingBalance)

	return &CompleteAnalytics{
		Core:                 CalculateCoreMetrics(ds),
		WinRate:              CalculateWinRate(ds),
		AvgWinLoss:           CalculateAvgWinLoss(ds),
		LongShort:            CalculateLongShort(ds),
		Duration:             CalculateDuration(ds),
		Extremes:             CalculateExtremes(ds),
		VolumeAndFees:        CalculateVolumeAndFees(ds),
		Expectancy:           CalculateExpectancy(ds),
		EquityCurve:          curve,
		Drawdown:             AnalyzeDrawdown(curve),
		DailyPerformance:     DailyPerformance(ds),
		HourlyPerformance:    HourlyPerformance(ds),
		OrderTypePerformance: OrderTypePerformance(ds),

		RiskScore:          adv.RiskScore,
		OvertradingSignals: adv.OvertradingSignals,
		ConsistencyScore:   adv.ConsistencyScore,
		CapitalEfficiency:  adv.CapitalEfficiency,
	}
}

// AnalyzeAdvanced risk, overtrading, consistency and capital efficiency
func AnalyzeAdvanced(ds *Dataset, accountBalance float64) *AdvancedAnalytics {
	return &AdvancedAnalytics{
		RiskScore:          CalculateRiskScore(ds, accountBalance),
		OvertradingSignals: DetectOvertrading(ds),
		ConsistencyScore:   CalculateConsistencyScore(ds),
		CapitalEfficiency:  CalculateCapitalEfficiency(ds),
	}
}
