package analytics

// BuildEquityCurve cumulative PnL over startingBalance, ordered by closedAt
func BuildEquityCurve(ds *Dataset, startingBalance float64) []EquityPoint {
	trades := ds.chronological()
	curve := make([]EquityPoint, 0, len(trades))

	var cumulative float64
	for i, t := range trades {
		cumulative += t.PnL
		curve = append(curve, EquityPoint{
			Timestamp:     *t.ClosedAt,
			Equity:        startingBalance + cumulative,
			CumulativePnL: cumulative,
			TradeNumber:   i + 1,
		})
	}
	return curve
}

// AnalyzeDrawdown peak-tracking pass over the equity curve.
// currentDrawdown is measured at the last point, never against wall-clock time.
func AnalyzeDrawdown(curve []EquityPoint) DrawdownMetrics {
	if len(curve) == 0 {
		return DrawdownMetrics{}
	}

	var m DrawdownMetrics
	peak := curve[0].Equity
	for i := range curve {
		p := &curve[i]
		if p.Equity > peak {
			peak = p.Equity
		}

		dd := drawdownPercent(peak, p.Equity)
		if dd > m.MaxDrawdown {
			ts := p.Timestamp
			m.MaxDrawdown = dd
			m.MaxDrawdownValue = peak - p.Equity
			m.MaxDrawdownDate = &ts
		}
	}

	// peak 는 루프 종료 시 전체 최고점
	m.CurrentDrawdown = drawdownPercent(peak, curve[len(curve)-1].Equity)
	return m
}

func drawdownPercent(peak, equity float64) float64 {
	if peak <= 0 {
		return 0
	}
	return (peak - equity) / peak * 100
}
