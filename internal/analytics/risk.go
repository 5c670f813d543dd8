package analytics

import (
	"math"
	"time"
)

// Risk component weights (합계 1.0)
const (
	weightDrawdownSeverity    = 0.30
	weightPositionSizing      = 0.20
	weightOvertradingIndex    = 0.20
	weightWinStreakVolatility = 0.15
	weightFeeBurnRate         = 0.15
)

const day = 24 * time.Hour

var riskRecommendations = map[RiskLevel]string{
	RiskConservative: "Your trading style is conservative. Consider increasing position sizes for better returns.",
	RiskBalanced:     "Your risk profile is balanced. Maintain this approach for consistent results.",
	RiskAggressive:   "You are trading aggressively. Monitor your drawdowns and position sizing.",
	RiskReckless:     "WARNING: Your trading is reckless. Reduce position sizes and trade frequency immediately.",
}

const riskNotEnoughData = "Not enough data to calculate risk score."

// CalculateRiskScore 5-component weighted composite (0-100).
// Each component is clamped to [0,100] before weighting.
func CalculateRiskScore(ds *Dataset, accountBalance float64) RiskScore {
	trades := ds.chronological()
	if len(trades) == 0 {
		return RiskScore{
			Level:          RiskConservative,
			Recommendation: riskNotEnoughData,
		}
	}

	// 1. Drawdown severity: 현재 DD / 최대 DD
	dd := AnalyzeDrawdown(BuildEquityCurve(ds, accountBalance))
	drawdownSeverity := safeDiv(dd.CurrentDrawdown, dd.MaxDrawdown) * 100

	// 2. Position sizing: maxSize 변동계수
	sizes := make([]float64, len(trades))
	for i := range trades {
		sizes[i] = trades[i].MaxSize
	}
	positionSizing := coefficientOfVariation(sizes)

	// 3. Overtrading index
	overtrading := overtradingIndex(trades)

	// 4. Win streak volatility
	streakVolatility := coefficientOfVariation(streakLengths(trades))

	// 5. Fee burn rate
	var feeBurn float64
	if accountBalance > 0 {
		feeBurn = ds.TotalFees() / accountBalance * 100
	}

	c := RiskComponents{
		DrawdownSeverity:          clamp(drawdownSeverity, 0, 100),
		PositionSizingConsistency: clamp(positionSizing, 0, 100),
		OvertradingIndex:          clamp(overtrading, 0, 100),
		WinStreakVolatility:       clamp(streakVolatility, 0, 100),
		FeeBurnRate:               clamp(feeBurn, 0, 100),
	}

	weighted := c.DrawdownSeverity*weightDrawdownSeverity +
		c.PositionSizingConsistency*weightPositionSizing +
		c.OvertradingIndex*weightOvertradingIndex +
		c.WinStreakVolatility*weightWinStreakVolatility +
		c.FeeBurnRate*weightFeeBurnRate

	overall := math.Round(clamp(weighted, 0, 100))
	level := classifyRisk(overall)

	return RiskScore{
		Overall: overall,
		Level:   level,
		Components: RiskComponents{
			DrawdownSeverity:          math.Round(c.DrawdownSeverity),
			PositionSizingConsistency: math.Round(c.PositionSizingConsistency),
			OvertradingIndex:          math.Round(c.OvertradingIndex),
			WinStreakVolatility:       math.Round(c.WinStreakVolatility),
			FeeBurnRate:               math.Round(c.FeeBurnRate),
		},
		Recommendation: riskRecommendations[level],
	}
}

func classifyRisk(overall float64) RiskLevel {
	switch {
	case overall <= 30:
		return RiskConservative
	case overall <= 60:
		return RiskBalanced
	case overall <= 80:
		return RiskAggressive
	default:
		return RiskReckless
	}
}

// overtradingIndex (trades/day) / (profitable trades/day) × 100, 100 when nothing was profitable.
// trades must be sorted by closedAt.
func overtradingIndex(trades []Trade) float64 {
	days := float64(activeDays(trades))
	tradesPerDay := float64(len(trades)) / days

	profitable := 0
	for i := range trades {
		if trades[i].IsWin() {
			profitable++
		}
	}
	profitablePerDay := float64(profitable) / days
	if profitablePerDay <= 0 {
		return 100
	}
	return math.Min(tradesPerDay/profitablePerDay*100, 100)
}

// activeDays ceil((last − first) / 24h), at least 1
func activeDays(trades []Trade) int {
	if len(trades) == 0 {
		return 1
	}
	span := trades[len(trades)-1].ClosedAt.Sub(*trades[0].ClosedAt)
	days := int(math.Ceil(float64(span) / float64(day)))
	if days < 1 {
		return 1
	}
	return days
}

// streakLengths run lengths of consecutive wins / non-wins, in closedAt order
func streakLengths(trades []Trade) []float64 {
	var lengths []float64
	run := 0
	var prevWin bool
	for i := range trades {
		win := trades[i].IsWin()
		if i > 0 && win == prevWin {
			run++
			continue
		}
		if run > 0 {
			lengths = append(lengths, float64(run))
		}
		prevWin = win
		run = 1
	}
	if run > 0 {
		lengths = append(lengths, float64(run))
	}
	return lengths
}
