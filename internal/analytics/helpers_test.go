package analytics

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/wonny/tradejournal/internal/contracts"
)

// t0 is a Monday (ISO week 10 of 2024)
var t0 = time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

// closedPos builds a CLOSED position that passes normalization
func closedPos(id, symbol string, side contracts.Side, pnl string, closedAt time.Time) contracts.Position {
	opened := closedAt.Add(-time.Hour)
	return contracts.Position{
		ID:                   id,
		AccountID:            "acc-1",
		Symbol:               symbol,
		Status:               contracts.PositionClosed,
		Side:                 side,
		OpenedAt:             opened,
		ClosedAt:             &closedAt,
		AvgEntryPrice:        "100",
		AvgExitPrice:         strPtr("101"),
		MaxSize:              "1",
		TotalVolume:          "1000",
		TotalFees:            "0",
		RealizedPnL:          strPtr(pnl),
		HoldingPeriodSeconds: strPtr("3600"),
	}
}

func openPos(id, symbol string, openedAt time.Time) contracts.Position {
	return contracts.Position{
		ID:            id,
		AccountID:     "acc-1",
		Symbol:        symbol,
		Status:        contracts.PositionOpen,
		Side:          contracts.SideLong,
		OpenedAt:      openedAt,
		AvgEntryPrice: "100",
		MaxSize:       "1",
		TotalVolume:   "500",
		TotalFees:     "0",
	}
}

func fill(id, positionID string, orderType contracts.OrderType, notional, fee string, maker bool, at time.Time) contracts.Execution {
	e := contracts.Execution{
		ID:        id,
		AccountID: "acc-1",
		Sig:       "sig-" + id,
		BlockTime: at,
		Symbol:    "SOL-PERP",
		Side:      contracts.SideBuy,
		Type:      contracts.InstrumentPerp,
		OrderType: orderType,
		Price:     "100",
		Size:      "1",
		Notional:  notional,
		Fee:       fee,
		FeeAsset:  "USDC",
		IsMaker:   maker,
	}
	if positionID != "" {
		e.PositionID = strPtr(positionID)
	}
	return e
}

// seriesPos closed positions of one symbol/side with the given PnLs, spaced by step
func seriesPos(symbol string, side contracts.Side, start time.Time, step time.Duration, pnls ...string) []contracts.Position {
	out := make([]contracts.Position, len(pnls))
	for i, pnl := range pnls {
		out[i] = closedPos(fmt.Sprintf("%s-%d", symbol, i), symbol, side, pnl, start.Add(time.Duration(i)*step))
	}
	return out
}

func mustNormalize(t *testing.T, positions []contracts.Position, executions []contracts.Execution) *Dataset {
	t.Helper()
	ds, err := Normalize(positions, executions)
	require.NoError(t, err)
	return ds
}
