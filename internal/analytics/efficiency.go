package analytics

const efficiencyNoData = "No closed positions to analyze."

var efficiencyRecommendations = map[EfficiencyLevel]string{
	EfficiencyInefficient: "Your capital efficiency is low. You may be overtrading or using poor position sizing.",
	EfficiencyAverage:     "Average capital efficiency. Focus on quality trades over quantity.",
	EfficiencyGood:        "Good capital efficiency! You are converting capital to profit effectively.",
	EfficiencyExcellent:   "Excellent capital efficiency! You are maximizing returns on deployed capital.",
}

// CalculateCapitalEfficiency net PnL per unit of deployed capital (percent, 2 decimals)
func CalculateCapitalEfficiency(ds *Dataset) CapitalEfficiency {
	closed := ds.Closed()
	if len(closed) == 0 {
		return CapitalEfficiency{
			Level:          EfficiencyInefficient,
			Recommendation: efficiencyNoData,
		}
	}

	var deployed float64
	for i := range closed {
		deployed += closed[i].TotalVolume
	}
	netPnL := sumPnL(closed) - ds.TotalFees()

	// 등급은 반올림된 점수 기준 (5.00 → AVERAGE)
	score := round2(safeDiv(netPnL, deployed) * 100)
	level := classifyEfficiency(score)

	return CapitalEfficiency{
		Score:                score,
		Level:                level,
		TotalCapitalDeployed: deployed,
		NetPnL:               netPnL,
		Recommendation:       efficiencyRecommendations[level],
	}
}

// classifyEfficiency half-open bands: [..5) [5,15) [15,30) [30,..)
func classifyEfficiency(score float64) EfficiencyLevel {
	switch {
	case score < 5:
		return EfficiencyInefficient
	case score < 15:
		return EfficiencyAverage
	case score < 30:
		return EfficiencyGood
	default:
		return EfficiencyExcellent
	}
}
