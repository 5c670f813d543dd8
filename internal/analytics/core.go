package analytics

import (
	"math"
	"sort"
)

// =============================================================================
// CoreAggregator
// 포지션 지표는 CLOSED 기준, 거래량/수수료는 전체 execution 기준
// =============================================================================

// CalculateCoreMetrics gross/net PnL, fees, volume
func CalculateCoreMetrics(ds *Dataset) CoreMetrics {
	closed := ds.Closed()
	gross := sumPnL(closed)
	fees := ds.TotalFees()

	var volume float64
	for _, f := range ds.Fills {
		volume += f.Notional
	}

	return CoreMetrics{
		GrossPnL:    gross,
		NetPnL:      gross - fees,
		TotalFees:   fees,
		TotalVolume: volume,
		TradeCount:  len(closed),
	}
}

// CalculateWinRate win/loss/breakeven split of closed trades
func CalculateWinRate(ds *Dataset) WinRateMetrics {
	closed := ds.Closed()
	total := len(closed)
	if total == 0 {
		return WinRateMetrics{}
	}

	var m WinRateMetrics
	for i := range closed {
		switch {
		case closed[i].IsWin():
			m.WinCount++
		case closed[i].IsLoss():
			m.LossCount++
		default:
			m.BreakevenCount++
		}
	}

	n := float64(total)
	m.TotalTrades = total
	m.WinRate = float64(m.WinCount) / n * 100
	m.LossRate = float64(m.LossCount) / n * 100
	m.BreakevenRate = float64(m.BreakevenCount) / n * 100
	return m
}

// CalculateAvgWinLoss mean winner, mean loser (signed) and their ratio
func CalculateAvgWinLoss(ds *Dataset) AvgWinLoss {
	var wins, losses []float64
	for _, t := range ds.Closed() {
		switch {
		case t.IsWin():
			wins = append(wins, t.PnL)
		case t.IsLoss():
			losses = append(losses, t.PnL)
		}
	}

	avgWin := mean(wins)
	avgLoss := mean(losses)

	return AvgWinLoss{
		AvgWin:       avgWin,
		AvgLoss:      avgLoss,
		WinLossRatio: safeDiv(avgWin, math.Abs(avgLoss)),
	}
}

// CalculateExpectancy mean realized PnL per closed trade
func CalculateExpectancy(ds *Dataset) float64 {
	closed := ds.Closed()
	return safeDiv(sumPnL(closed), float64(len(closed)))
}

// CalculateLongShort BUY/LONG vs SELL/SHORT split
func CalculateLongShort(ds *Dataset) LongShortMetrics {
	var m LongShortMetrics
	for _, t := range ds.Closed() {
		switch {
		case t.Side.IsLong():
			m.LongCount++
			m.LongPnL += t.PnL
		case t.Side.IsShort():
			m.ShortCount++
			m.ShortPnL += t.PnL
		}
	}

	// 숏이 없으면 롱 개수 그대로
	if m.ShortCount > 0 {
		m.CountRatio = float64(m.LongCount) / float64(m.ShortCount)
	} else {
		m.CountRatio = float64(m.LongCount)
	}
	m.PnLRatio = safeDiv(m.LongPnL, math.Abs(m.ShortPnL))
	return m
}

// CalculateDuration holding time statistics over closed trades with closedAt
func CalculateDuration(ds *Dataset) DurationMetrics {
	var durations []float64
	for _, t := range ds.Closed() {
		if t.ClosedAt == nil {
			continue
		}
		durations = append(durations, t.ClosedAt.Sub(t.OpenedAt).Seconds())
	}
	if len(durations) == 0 {
		return DurationMetrics{}
	}

	avg := mean(durations)
	sorted := append([]float64(nil), durations...)
	sort.Float64s(sorted)

	return DurationMetrics{
		AvgDurationSeconds:    avg,
		AvgDurationHours:      avg / 3600,
		AvgDurationDays:       avg / 86400,
		MedianDurationSeconds: sorted[len(sorted)/2],
		ShortestTrade:         sorted[0],
		LongestTrade:          sorted[len(sorted)-1],
	}
}

// CalculateExtremes best and worst trade; ties keep the first seen
func CalculateExtremes(ds *Dataset) ExtremeMetrics {
	closed := ds.Closed()
	if len(closed) == 0 {
		return ExtremeMetrics{}
	}

	best, worst := 0, 0
	for i := 1; i < len(closed); i++ {
		if closed[i].PnL > closed[best].PnL {
			best = i
		}
		if closed[i].PnL < closed[worst].PnL {
			worst = i
		}
	}

	return ExtremeMetrics{
		LargestGain:       closed[best].PnL,
		LargestLoss:       closed[worst].PnL,
		LargestGainSymbol: closed[best].Symbol,
		LargestLossSymbol: closed[worst].Symbol,
		LargestGainDate:   closed[best].ClosedAt,
		LargestLossDate:   closed[worst].ClosedAt,
	}
}

// CalculateVolumeAndFees fee efficiency and maker/taker split
func CalculateVolumeAndFees(ds *Dataset) VolumeAndFees {
	var m VolumeAndFees
	for _, f := range ds.Fills {
		m.TotalVolume += f.Notional
		m.TotalFees += f.Fee
		if f.IsMaker {
			m.MakerFees += f.Fee
		} else {
			m.TakerFees += f.Fee
		}
	}

	closed := ds.Closed()
	gross := sumPnL(closed)

	m.FeePercentOfPnL = safeDiv(m.TotalFees, math.Abs(gross)) * 100
	m.FeePercentOfVolume = safeDiv(m.TotalFees, m.TotalVolume) * 100
	m.AvgFeePerTrade = safeDiv(m.TotalFees, float64(len(closed)))
	return m
}
