package analytics

import (
	"sort"
)

// UnknownOrderType bucket for positions without a linked execution
const UnknownOrderType = "UNKNOWN"

const dateLayout = "2006-01-02"

// =============================================================================
// TimeBucketAggregator
// 모든 버킷은 UTC 기준
// =============================================================================

type bucket struct {
	pnl    float64
	volume float64
	count  int
	wins   int
}

func (b *bucket) add(t *Trade) {
	b.pnl += t.PnL
	b.volume += t.TotalVolume
	b.count++
	if t.IsWin() {
		b.wins++
	}
}

func (b *bucket) avgPnL() float64 {
	return safeDiv(b.pnl, float64(b.count))
}

func (b *bucket) winRate() float64 {
	return safeDiv(float64(b.wins), float64(b.count)) * 100
}

// DailyPerformance per calendar day of closedAt, ascending
func DailyPerformance(ds *Dataset) []DailyStats {
	byDate := make(map[string]*bucket)
	for _, t := range ds.chronological() {
		key := t.ClosedAt.UTC().Format(dateLayout)
		b, ok := byDate[key]
		if !ok {
			b = &bucket{}
			byDate[key] = b
		}
		b.add(&t)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	out := make([]DailyStats, 0, len(dates))
	for _, d := range dates {
		b := byDate[d]
		out = append(out, DailyStats{
			Date:       d,
			PnL:        b.pnl,
			AvgPnL:     b.avgPnL(),
			Volume:     b.volume,
			TradeCount: b.count,
			WinRate:    b.winRate(),
		})
	}
	return out
}

// HourlyPerformance always returns 24 buckets (hour 0..23)
func HourlyPerformance(ds *Dataset) []HourlyStats {
	var hours [24]bucket
	for _, t := range ds.chronological() {
		hours[t.ClosedAt.UTC().Hour()].add(&t)
	}

	out := make([]HourlyStats, 24)
	for h := range hours {
		b := &hours[h]
		out[h] = HourlyStats{
			Hour:       h,
			PnL:        b.pnl,
			TradeCount: b.count,
			AvgPnL:     b.avgPnL(),
			WinRate:    b.winRate(),
		}
	}
	return out
}

// OrderTypePerformance groups closed trades by the order type of their first
// execution (execution order). Buckets keep first-appearance order.
func OrderTypePerformance(ds *Dataset) []OrderTypeStats {
	firstType := make(map[string]string)
	for _, f := range ds.Fills {
		if f.PositionID == "" {
			continue
		}
		if _, seen := firstType[f.PositionID]; !seen {
			firstType[f.PositionID] = string(f.OrderType)
		}
	}

	var order []string
	byType := make(map[string]*bucket)
	for _, t := range ds.Closed() {
		key, ok := firstType[t.ID]
		if !ok || key == "" {
			key = UnknownOrderType
		}
		b, exists := byType[key]
		if !exists {
			b = &bucket{}
			byType[key] = b
			order = append(order, key)
		}
		b.add(&t)
	}

	out := make([]OrderTypeStats, 0, len(order))
	for _, key := range order {
		b := byType[key]
		out = append(out, OrderTypeStats{
			OrderType:  key,
			PnL:        b.pnl,
			TradeCount: b.count,
			WinRate:    b.winRate(),
			AvgPnL:     b.avgPnL(),
		})
	}
	return out
}
