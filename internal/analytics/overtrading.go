package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/wonny/tradejournal/internal/contracts"
)

// SignalType discriminator of Signal.Data
type SignalType string

const (
	SignalRevengeTrading SignalType = "REVENGE_TRADING"
	SignalChasing        SignalType = "CHASING"
	SignalFatigueTrading SignalType = "FATIGUE_TRADING"
	SignalFOMOClustering SignalType = "FOMO_CLUSTERING"
)

// Severity of an overtrading signal
type Severity string

const (
	SeverityLow    Severity = "LOW"
	SeverityMedium Severity = "MEDIUM"
	SeverityHigh   Severity = "HIGH"
)

// Detection thresholds
const (
	revengeWindow       = 30 * time.Minute
	revengeMinFollowUps = 3
	chasingMinLosses    = 2
	chasingMinTrades    = 4
	fatigueMinTrades    = 10 // strictly more than
	fatigueWinRateDrop  = 20.0
	fomoWindow          = time.Hour
	fomoMinFollowUps    = 5
)

// Signal one behavioural flag. Data is one of the *Data payloads below,
// selected by Type.
type Signal struct {
	Type     SignalType `json:"type"`
	Severity Severity   `json:"severity"`
	Message  string     `json:"message"`
	Data     SignalData `json:"data"`
}

// SignalData tagged-union payload of a Signal
type SignalData interface {
	SignalType() SignalType
}

// RevengeTradingData a loss followed by a burst of trades
type RevengeTradingData struct {
	LossAmount       float64 `json:"lossAmount"`
	SubsequentTrades int     `json:"subsequentTrades"`
}

// ChasingData repeated losses on one symbol
type ChasingData struct {
	Symbol string `json:"symbol"`
	Losses int    `json:"losses"`
	Total  int    `json:"total"`
}

// FatigueTradingData win-rate decay within one busy day
type FatigueTradingData struct {
	Date       string  `json:"date"`
	TradeCount int     `json:"tradeCount"`
	WRDrop     float64 `json:"wrDrop"`
}

// FOMOClusteringData same-side burst within an hour
type FOMOClusteringData struct {
	Side  contracts.Side `json:"side"`
	Count int            `json:"count"`
}

func (RevengeTradingData) SignalType() SignalType { return SignalRevengeTrading }
func (ChasingData) SignalType() SignalType        { return SignalChasing }
func (FatigueTradingData) SignalType() SignalType { return SignalFatigueTrading }
func (FOMOClusteringData) SignalType() SignalType { return SignalFOMOClustering }

// UnmarshalJSON decodes Data into the payload selected by Type
func (s *Signal) UnmarshalJSON(b []byte) error {
	var raw struct {
		Type     SignalType      `json:"type"`
		Severity Severity        `json:"severity"`
		Message  string          `json:"message"`
		Data     json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	var data SignalData
	switch raw.Type {
	case SignalRevengeTrading:
		var d RevengeTradingData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("decode %s data: %w", raw.Type, err)
		}
		data = d
	case SignalChasing:
		var d ChasingData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("decode %s data: %w", raw.Type, err)
		}
		data = d
	case SignalFatigueTrading:
		var d FatigueTradingData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("decode %s data: %w", raw.Type, err)
		}
		data = d
	case SignalFOMOClustering:
		var d FOMOClusteringData
		if err := json.Unmarshal(raw.Data, &d); err != nil {
			return fmt.Errorf("decode %s data: %w", raw.Type, err)
		}
		data = d
	default:
		return fmt.Errorf("unknown signal type %q", raw.Type)
	}

	*s = Signal{Type: raw.Type, Severity: raw.Severity, Message: raw.Message, Data: data}
	return nil
}

// =============================================================================
// OvertradingDetector
// 4개 휴리스틱은 서로 독립, 같은 closedAt 정렬 시퀀스를 사용
// =============================================================================

// DetectOvertrading runs every heuristic over closed trades sorted by closedAt
func DetectOvertrading(ds *Dataset) []Signal {
	trades := ds.chronological()
	signals := make([]Signal, 0)

	if s, ok := detectRevengeTrading(trades); ok {
		signals = append(signals, s)
	}
	signals = append(signals, detectChasing(trades)...)
	signals = append(signals, detectFatigue(trades)...)
	if s, ok := detectFOMO(trades); ok {
		signals = append(signals, s)
	}
	return signals
}

// followUps trades closing strictly after trades[i] and strictly within window
func followUps(trades []Trade, i int, window time.Duration) []Trade {
	start := *trades[i].ClosedAt
	var out []Trade
	for j := i + 1; j < len(trades); j++ {
		dt := trades[j].ClosedAt.Sub(start)
		if dt >= window {
			break
		}
		if dt > 0 {
			out = append(out, trades[j])
		}
	}
	return out
}

// detectRevengeTrading reports the first loss followed by ≥3 trades within 30 minutes
func detectRevengeTrading(trades []Trade) (Signal, bool) {
	for i := 0; i < len(trades)-revengeMinFollowUps; i++ {
		t := trades[i]
		if !t.IsLoss() {
			continue
		}

		next := followUps(trades, i, revengeWindow)
		if len(next) < revengeMinFollowUps {
			continue
		}

		return Signal{
			Type:     SignalRevengeTrading,
			Severity: SeverityHigh,
			Message: fmt.Sprintf("You opened %d trades within 30 minutes after a $%.2f loss. Take a break.",
				len(next), math.Abs(t.PnL)),
			Data: RevengeTradingData{LossAmount: t.PnL, SubsequentTrades: len(next)},
		}, true
	}
	return Signal{}, false
}

// detectChasing one signal per symbol with ≥2 losses among ≥4 trades
func detectChasing(trades []Trade) []Signal {
	var symbols []string
	bySymbol := make(map[string][]Trade)
	for _, t := range trades {
		if _, ok := bySymbol[t.Symbol]; !ok {
			symbols = append(symbols, t.Symbol)
		}
		bySymbol[t.Symbol] = append(bySymbol[t.Symbol], t)
	}

	var out []Signal
	for _, sym := range symbols {
		group := bySymbol[sym]
		losses := 0
		for i := range group {
			if group[i].IsLoss() {
				losses++
			}
		}
		if losses < chasingMinLosses || len(group) < chasingMinTrades {
			continue
		}

		out = append(out, Signal{
			Type:     SignalChasing,
			Severity: SeverityMedium,
			Message: fmt.Sprintf("You're chasing %s after %d losses. Consider moving on to a different symbol.",
				sym, losses),
			Data: ChasingData{Symbol: sym, Losses: losses, Total: len(group)},
		})
	}
	return out
}

// detectFatigue one signal per day with >10 trades whose second-half win rate
// falls more than 20 points below the first half
func detectFatigue(trades []Trade) []Signal {
	var days []string
	byDay := make(map[string][]Trade)
	for _, t := range trades {
		key := t.ClosedAt.UTC().Format(dateLayout)
		if _, ok := byDay[key]; !ok {
			days = append(days, key)
		}
		byDay[key] = append(byDay[key], t)
	}

	var out []Signal
	for _, d := range days {
		group := byDay[d]
		if len(group) <= fatigueMinTrades {
			continue
		}

		half := len(group) / 2
		firstWR := winRatePercent(group[:half])
		secondWR := winRatePercent(group[half:])
		if secondWR >= firstWR-fatigueWinRateDrop {
			continue
		}

		out = append(out, Signal{
			Type:     SignalFatigueTrading,
			Severity: SeverityHigh,
			Message: fmt.Sprintf("You made %d trades on %s. Your win rate dropped from %.0f%% to %.0f%%. You may be fatigued.",
				len(group), d, firstWR, secondWR),
			Data: FatigueTradingData{Date: d, TradeCount: len(group), WRDrop: firstWR - secondWR},
		})
	}
	return out
}

// detectFOMO reports the first trade followed by ≥5 same-side trades within an hour
func detectFOMO(trades []Trade) (Signal, bool) {
	for i := 0; i < len(trades)-fomoMinFollowUps; i++ {
		t := trades[i]
		next := followUps(trades, i, fomoWindow)
		if len(next) < fomoMinFollowUps || !allSide(next, t.Side) {
			continue
		}

		count := len(next) + 1
		return Signal{
			Type:     SignalFOMOClustering,
			Severity: SeverityMedium,
			Message:  fmt.Sprintf("You opened %d %s positions within 1 hour. This may be FOMO.", count, t.Side),
			Data:     FOMOClusteringData{Side: t.Side, Count: count},
		}, true
	}
	return Signal{}, false
}

func allSide(trades []Trade, side contracts.Side) bool {
	for i := range trades {
		if trades[i].Side != side {
			return false
		}
	}
	return true
}
