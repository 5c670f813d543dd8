package analytics

import "time"

// =============================================================================
// Report Types
// JSON 키는 대시보드 계약(camelCase)을 그대로 따른다
// =============================================================================

// CoreMetrics gross/net PnL, fees and volume
type CoreMetrics struct {
	GrossPnL    float64 `json:"grossPnL"`
	NetPnL      float64 `json:"netPnL"`
	TotalFees   float64 `json:"totalFees"`
	TotalVolume float64 `json:"totalVolume"`
	TradeCount  int     `json:"tradeCount"`
}

// WinRateMetrics win/loss/breakeven split (percentages sum to 100)
type WinRateMetrics struct {
	WinRate        float64 `json:"winRate"`
	LossRate       float64 `json:"lossRate"`
	BreakevenRate  float64 `json:"breakevenRate"`
	WinCount       int     `json:"winCount"`
	LossCount      int     `json:"lossCount"`
	BreakevenCount int     `json:"breakevenCount"`
	TotalTrades    int     `json:"totalTrades"`
}

// AvgWinLoss average winner / loser
type AvgWinLoss struct {
	AvgWin       float64 `json:"avgWin"`
	AvgLoss      float64 `json:"avgLoss"` // signed, <= 0
	WinLossRatio float64 `json:"winLossRatio"`
}

// LongShortMetrics long vs short split
type LongShortMetrics struct {
	LongCount  int     `json:"longCount"`
	ShortCount int     `json:"shortCount"`
	LongPnL    float64 `json:"longPnL"`
	ShortPnL   float64 `json:"shortPnL"`
	CountRatio float64 `json:"countRatio"`
	PnLRatio   float64 `json:"pnlRatio"`
}

// DurationMetrics holding time statistics (seconds unless noted)
type DurationMetrics struct {
	AvgDurationSeconds    float64 `json:"avgDurationSeconds"`
	AvgDurationHours      float64 `json:"avgDurationHours"`
	AvgDurationDays       float64 `json:"avgDurationDays"`
	MedianDurationSeconds float64 `json:"medianDurationSeconds"`
	ShortestTrade         float64 `json:"shortestTrade"`
	LongestTrade          float64 `json:"longestTrade"`
}

// ExtremeMetrics best and worst single trade
type ExtremeMetrics struct {
	LargestGain       float64    `json:"largestGain"`
	LargestLoss       float64    `json:"largestLoss"`
	LargestGainSymbol string     `json:"largestGainSymbol"`
	LargestLossSymbol string     `json:"largestLossSymbol"`
	LargestGainDate   *time.Time `json:"largestGainDate,omitempty"`
	LargestLossDate   *time.Time `json:"largestLossDate,omitempty"`
}

// VolumeAndFees fee efficiency
type VolumeAndFees struct {
	TotalVolume        float64 `json:"totalVolume"`
	TotalFees          float64 `json:"totalFees"`
	FeePercentOfPnL    float64 `json:"feePercentOfPnL"`
	FeePercentOfVolume float64 `json:"feePercentOfVolume"`
	AvgFeePerTrade     float64 `json:"avgFeePerTrade"`
	MakerFees          float64 `json:"makerFees"`
	TakerFees          float64 `json:"takerFees"`
}

// EquityPoint one point of the equity curve
type EquityPoint struct {
	Timestamp     time.Time `json:"timestamp"`
	Equity        float64   `json:"equity"`
	CumulativePnL float64   `json:"cumulativePnL"`
	TradeNumber   int       `json:"tradeNumber"`
}

// DrawdownMetrics peak-to-trough statistics (percent)
type DrawdownMetrics struct {
	MaxDrawdown      float64    `json:"maxDrawdown"`
	MaxDrawdownValue float64    `json:"maxDrawdownValue"`
	CurrentDrawdown  float64    `json:"currentDrawdown"`
	MaxDrawdownDate  *time.Time `json:"maxDrawdownDate,omitempty"`
}

// DailyStats per calendar day (UTC)
type DailyStats struct {
	Date       string  `json:"date"` // YYYY-MM-DD
	PnL        float64 `json:"pnl"`
	AvgPnL     float64 `json:"avgPnL"`
	Volume     float64 `json:"volume"`
	TradeCount int     `json:"tradeCount"`
	WinRate    float64 `json:"winRate"`
}

// HourlyStats per UTC hour of day
type HourlyStats struct {
	Hour       int     `json:"hour"`
	PnL        float64 `json:"pnl"`
	TradeCount int     `json:"tradeCount"`
	AvgPnL     float64 `json:"avgPnL"`
	WinRate    float64 `json:"winRate"`
}

// OrderTypeStats per resolved order type
type OrderTypeStats struct {
	OrderType  string  `json:"orderType"`
	PnL        float64 `json:"pnl"`
	TradeCount int     `json:"tradeCount"`
	WinRate    float64 `json:"winRate"`
	AvgPnL     float64 `json:"avgPnL"`
}

// CompleteAnalytics full report
// ⭐ SSOT: 대시보드가 소비하는 단일 리포트 객체
type CompleteAnalytics struct {
	Core                 CoreMetrics      `json:"core"`
	WinRate              WinRateMetrics   `json:"winRate"`
	AvgWinLoss           AvgWinLoss       `json:"avgWinLoss"`
	LongShort            LongShortMetrics `json:"longShort"`
	Duration             DurationMetrics  `json:"duration"`
	Extremes             ExtremeMetrics   `json:"extremes"`
	VolumeAndFees        VolumeAndFees    `json:"volumeAndFees"`
	Expectancy           float64          `json:"expectancy"`
	EquityCurve          []EquityPoint    `json:"equityCurve"`
	Drawdown             DrawdownMetrics  `json:"drawdown"`
	DailyPerformance     []DailyStats     `json:"dailyPerformance"`
	HourlyPerformance    []HourlyStats    `json:"hourlyPerformance"`
	OrderTypePerformance []OrderTypeStats `json:"orderTypePerformance"`

	// Advanced
	RiskScore          RiskScore         `json:"riskScore"`
	OvertradingSignals []Signal          `json:"overtradingSignals"`
	ConsistencyScore   ConsistencyScore  `json:"consistencyScore"`
	CapitalEfficiency  CapitalEfficiency `json:"capitalEfficiency"`
}

// AdvancedAnalytics behavioural subset of CompleteAnalytics
type AdvancedAnalytics struct {
	RiskScore          RiskScore         `json:"riskScore"`
	OvertradingSignals []Signal          `json:"overtradingSignals"`
	ConsistencyScore   ConsistencyScore  `json:"consistencyScore"`
	CapitalEfficiency  CapitalEfficiency `json:"capitalEfficiency"`
}

// =============================================================================
// Advanced Types
// =============================================================================

// RiskLevel aggressiveness band of RiskScore.Overall
type RiskLevel string

const (
	RiskConservative RiskLevel = "CONSERVATIVE"
	RiskBalanced     RiskLevel = "BALANCED"
	RiskAggressive   RiskLevel = "AGGRESSIVE"
	RiskReckless     RiskLevel = "RECKLESS"
)

// RiskComponents 0-100 each
type RiskComponents struct {
	DrawdownSeverity          float64 `json:"drawdownSeverity"`
	PositionSizingConsistency float64 `json:"positionSizingConsistency"`
	OvertradingIndex          float64 `json:"overtradingIndex"`
	WinStreakVolatility       float64 `json:"winStreakVolatility"`
	FeeBurnRate               float64 `json:"feeBurnRate"`
}

// RiskScore composite 0-100
type RiskScore struct {
	Overall        float64        `json:"overall"`
	Level          RiskLevel      `json:"level"`
	Components     RiskComponents `json:"components"`
	Recommendation string         `json:"recommendation"`
}

// ConsistencyComponents 0-100 each
type ConsistencyComponents struct {
	WinRateStability         float64 `json:"winRateStability"`
	PnLVariance              float64 `json:"pnlVariance"`
	TradeFrequencyRegularity float64 `json:"tradeFrequencyRegularity"`
	DrawdownRecoveryTime     float64 `json:"drawdownRecoveryTime"`
	ProfitFactorStability    float64 `json:"profitFactorStability"`
}

// ConsistencyScore composite 0-100
type ConsistencyScore struct {
	Overall        float64               `json:"overall"`
	Components     ConsistencyComponents `json:"components"`
	Recommendation string                `json:"recommendation"`
}

// EfficiencyLevel band of CapitalEfficiency.Score
type EfficiencyLevel string

const (
	EfficiencyInefficient EfficiencyLevel = "INEFFICIENT"
	EfficiencyAverage     EfficiencyLevel = "AVERAGE"
	EfficiencyGood        EfficiencyLevel = "GOOD"
	EfficiencyExcellent   EfficiencyLevel = "EXCELLENT"
)

// CapitalEfficiency net PnL per unit of deployed capital
type CapitalEfficiency struct {
	Score                float64         `json:"score"`
	Level                EfficiencyLevel `json:"level"`
	TotalCapitalDeployed float64         `json:"totalCapitalDeployed"`
	NetPnL               float64         `json:"netPnL"`
	Recommendation       string          `json:"recommendation"`
}
