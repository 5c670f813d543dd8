package analytics

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// mean returns 0 for an empty series
func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return stat.Mean(xs, nil)
}

// popStdDev population standard deviation, 0 for fewer than 2 samples
func popStdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return math.Sqrt(stat.PopVariance(xs, nil))
}

// coefficientOfVariation stddev/mean × 100, 0 when mean <= 0
func coefficientOfVariation(xs []float64) float64 {
	m := mean(xs)
	if m <= 0 {
		return 0
	}
	return popStdDev(xs) / m * 100
}

// stability (1 − stddev/mean) × 100; may be negative, 0 when mean <= 0
func stability(xs []float64) float64 {
	m := mean(xs)
	if m <= 0 {
		return 0
	}
	return (1 - popStdDev(xs)/m) * 100
}

// safeDiv returns 0 on a zero denominator
func safeDiv(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func winRatePercent(trades []Trade) float64 {
	if len(trades) == 0 {
		return 0
	}
	wins := 0
	for i := range trades {
		if trades[i].IsWin() {
			wins++
		}
	}
	return float64(wins) / float64(len(trades)) * 100
}

func sumPnL(trades []Trade) float64 {
	var sum float64
	for i := range trades {
		sum += trades[i].PnL
	}
	return sum
}
