package analytics

import (
	"fmt"
	"math"
)

const consistencyMinTrades = 10

// Consistency component weights
const (
	weightWinRateStability      = 0.25
	weightPnLVariance           = 0.25
	weightFrequencyRegularity   = 0.20
	weightDrawdownRecovery      = 0.15
	weightProfitFactorStability = 0.15
)

// noLossProfitFactor stands in for +Inf when a month has wins but no losses
const noLossProfitFactor = 999

const consistencyNotEnoughData = "Need at least 10 trades to calculate consistency score."

// CalculateConsistencyScore stability of results over time (0-100).
// Requires at least 10 closed trades.
func CalculateConsistencyScore(ds *Dataset) ConsistencyScore {
	trades := ds.chronological()
	if len(trades) < consistencyMinTrades {
		return ConsistencyScore{Recommendation: consistencyNotEnoughData}
	}

	weeks := groupTrades(trades, isoWeekKey)

	weeklyWinRates := make([]float64, len(weeks))
	weeklyCounts := make([]float64, len(weeks))
	for i, w := range weeks {
		weeklyWinRates[i] = winRatePercent(w)
		weeklyCounts[i] = float64(len(w))
	}

	days := groupTrades(trades, dayKey)
	dailyPnL := make([]float64, len(days))
	for i, d := range days {
		dailyPnL[i] = sumPnL(d)
	}

	months := groupTrades(trades, monthKey)
	monthlyPF := make([]float64, len(months))
	for i, m := range months {
		monthlyPF[i] = profitFactor(m)
	}

	c := ConsistencyComponents{
		WinRateStability:         math.Max(stability(weeklyWinRates), 0),
		PnLVariance:              math.Max(absStability(dailyPnL), 0),
		TradeFrequencyRegularity: math.Max(stability(weeklyCounts), 0),
		DrawdownRecoveryTime:     math.Max(100-10*avgRecoveryDays(trades), 0),
		ProfitFactorStability:    math.Max(stability(monthlyPF), 0),
	}

	weighted := c.WinRateStability*weightWinRateStability +
		c.PnLVariance*weightPnLVariance +
		c.TradeFrequencyRegularity*weightFrequencyRegularity +
		c.DrawdownRecoveryTime*weightDrawdownRecovery +
		c.ProfitFactorStability*weightProfitFactorStability

	overall := math.Round(clamp(weighted, 0, 100))

	return ConsistencyScore{
		Overall: overall,
		Components: ConsistencyComponents{
			WinRateStability:         math.Round(c.WinRateStability),
			PnLVariance:              math.Round(c.PnLVariance),
			TradeFrequencyRegularity: math.Round(c.TradeFrequencyRegularity),
			DrawdownRecoveryTime:     math.Round(c.DrawdownRecoveryTime),
			ProfitFactorStability:    math.Round(c.ProfitFactorStability),
		},
		Recommendation: consistencyRecommendation(overall),
	}
}

func consistencyRecommendation(overall float64) string {
	switch {
	case overall >= 70:
		return "Excellent consistency! You trade like a professional."
	case overall >= 50:
		return "Good consistency. Focus on maintaining regular trading patterns."
	case overall >= 30:
		return "Moderate consistency. Work on stabilizing your win rate and PnL."
	default:
		return "Low consistency. Your results are too volatile. Focus on a proven strategy."
	}
}

// absStability stability against |mean|, for series whose mean may be negative
func absStability(xs []float64) float64 {
	m := math.Abs(mean(xs))
	if m == 0 {
		return 0
	}
	return (1 - popStdDev(xs)/m) * 100
}

// avgRecoveryDays mean days from each losing trade to the next winning trade.
// trades must be sorted by closedAt.
func avgRecoveryDays(trades []Trade) float64 {
	var recoveries []float64
	for i := 0; i < len(trades)-1; i++ {
		if !trades[i].IsLoss() {
			continue
		}
		for j := i + 1; j < len(trades); j++ {
			if trades[j].IsWin() {
				recoveries = append(recoveries, float64(trades[j].ClosedAt.Sub(*trades[i].ClosedAt))/float64(day))
				break
			}
		}
	}
	return mean(recoveries)
}

// profitFactor Σwins / |Σlosses|; 999 with wins and no losses, 1 with neither
func profitFactor(trades []Trade) float64 {
	var wins, losses float64
	for i := range trades {
		switch {
		case trades[i].IsWin():
			wins += trades[i].PnL
		case trades[i].IsLoss():
			losses += trades[i].PnL
		}
	}
	losses = math.Abs(losses)

	switch {
	case losses > 0:
		return wins / losses
	case wins > 0:
		return noLossProfitFactor
	default:
		return 1
	}
}

// groupTrades buckets trades by key, preserving first-appearance order
func groupTrades(trades []Trade, key func(*Trade) string) [][]Trade {
	index := make(map[string]int)
	var groups [][]Trade
	for i := range trades {
		k := key(&trades[i])
		n, ok := index[k]
		if !ok {
			n = len(groups)
			index[k] = n
			groups = append(groups, nil)
		}
		groups[n] = append(groups[n], trades[i])
	}
	return groups
}

func isoWeekKey(t *Trade) string {
	year, week := t.ClosedAt.UTC().ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

func dayKey(t *Trade) string {
	return t.ClosedAt.UTC().Format(dateLayout)
}

func monthKey(t *Trade) string {
	return t.ClosedAt.UTC().Format("2006-01")
}
