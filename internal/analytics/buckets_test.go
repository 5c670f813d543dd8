package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/tradejournal/internal/contracts"
)

func TestDailyPerformance(t *testing.T) {
	nextDay := t0.AddDate(0, 0, 1)
	positions := []contracts.Position{
		closedPos("p3", "SOL", contracts.SideLong, "-30", nextDay),
		closedPos("p1", "SOL", contracts.SideLong, "10", t0),
		closedPos("p2", "SOL", contracts.SideLong, "20", t0.Add(time.Hour)),
		openPos("open", "SOL", t0),
	}
	daily := DailyPerformance(mustNormalize(t, positions, nil))

	require.Len(t, daily, 2)
	assert.Equal(t, "2024-03-04", daily[0].Date)
	assert.Equal(t, 2, daily[0].TradeCount)
	assert.InDelta(t, 30, daily[0].PnL, 1e-9)
	assert.InDelta(t, 15, daily[0].AvgPnL, 1e-9)
	assert.InDelta(t, 2000, daily[0].Volume, 1e-9)
	assert.InDelta(t, 100, daily[0].WinRate, 1e-9)

	assert.Equal(t, "2024-03-05", daily[1].Date)
	assert.Zero(t, daily[1].WinRate)
}

func TestHourlyPerformance_Always24Buckets(t *testing.T) {
	empty := HourlyPerformance(mustNormalize(t, nil, nil))
	require.Len(t, empty, 24)
	for h, b := range empty {
		assert.Equal(t, h, b.Hour)
		assert.Zero(t, b.TradeCount)
	}

	// 09:00, 09:20, 23:01 UTC
	positions := []contracts.Position{
		closedPos("p1", "SOL", contracts.SideLong, "10", t0),
		closedPos("p2", "SOL", contracts.SideLong, "-4", t0.Add(20*time.Minute)),
		closedPos("p3", "SOL", contracts.SideLong, "7", t0.Add(14*time.Hour+time.Minute)),
	}
	hourly := HourlyPerformance(mustNormalize(t, positions, nil))

	require.Len(t, hourly, 24)
	assert.Equal(t, 2, hourly[9].TradeCount)
	assert.InDelta(t, 3, hourly[9].AvgPnL, 1e-9)
	assert.InDelta(t, 50, hourly[9].WinRate, 1e-9)
	assert.Equal(t, 1, hourly[23].TradeCount)
	assert.Zero(t, hourly[0].TradeCount)
}

func TestHourlyPerformance_UsesUTC(t *testing.T) {
	seoul := time.FixedZone("KST", 9*60*60)
	closedAt := time.Date(2024, 3, 4, 9, 30, 0, 0, seoul) // 00:30 UTC
	positions := []contracts.Position{closedPos("p1", "SOL", contracts.SideLong, "1", closedAt)}

	hourly := HourlyPerformance(mustNormalize(t, positions, nil))
	assert.Equal(t, 1, hourly[0].TradeCount)
}

func TestOrderTypePerformance(t *testing.T) {
	positions := []contracts.Position{
		closedPos("p1", "SOL", contracts.SideLong, "10", t0),
		closedPos("p2", "SOL", contracts.SideLong, "-6", t0),
		closedPos("p3", "SOL", contracts.SideLong, "4", t0),
		closedPos("p4", "SOL", contracts.SideLong, "2", t0),
	}
	executions := []contracts.Execution{
		fill("e1", "p2", contracts.OrderTypeMarket, "100", "0", false, t0),
		fill("e2", "p1", contracts.OrderTypeLimit, "100", "0", true, t0),
		fill("e3", "p1", contracts.OrderTypeMarket, "100", "0", false, t0), // 첫 execution 만 사용
		fill("e4", "p3", contracts.OrderTypeLimit, "100", "0", true, t0),
		fill("e5", "", contracts.OrderTypeStop, "100", "0", false, t0),
	}
	stats := OrderTypePerformance(mustNormalize(t, positions, executions))

	require.Len(t, stats, 3)

	// 닫힌 포지션 등장 순서: p1(LIMIT), p2(MARKET), p4(UNKNOWN)
	assert.Equal(t, "LIMIT", stats[0].OrderType)
	assert.Equal(t, 2, stats[0].TradeCount)
	assert.InDelta(t, 14, stats[0].PnL, 1e-9)
	assert.InDelta(t, 100, stats[0].WinRate, 1e-9)

	assert.Equal(t, "MARKET", stats[1].OrderType)
	assert.InDelta(t, -6, stats[1].AvgPnL, 1e-9)

	assert.Equal(t, UnknownOrderType, stats[2].OrderType)
	assert.Equal(t, 1, stats[2].TradeCount)
}
