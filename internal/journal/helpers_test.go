package journal

import (
	"time"

	"github.com/wonny/tradejournal/internal/contracts"
)

var demoEnd = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

const otherAccount = "b7c1f0a2-8d4e-4c55-9a0f-3f5e2d1c0b99"

func strPtr(s string) *string { return &s }

// mixedSnapshot demo journal plus one record of another account
func mixedSnapshot() contracts.Snapshot {
	snap := DemoSnapshot(DemoAccountID, demoEnd)
	closedAt := demoEnd.Add(-time.Hour)
	snap.Positions = append(snap.Positions, contracts.Position{
		ID:            "c0ffee00-0000-4000-8000-000000000001",
		AccountID:     otherAccount,
		Symbol:        "SOL-PERP",
		Status:        contracts.PositionClosed,
		Side:          contracts.SideLong,
		OpenedAt:      demoEnd.Add(-2 * time.Hour),
		ClosedAt:      &closedAt,
		AvgEntryPrice: "100",
		MaxSize:       "1",
		TotalVolume:   "200",
		TotalFees:     "0.1",
		RealizedPnL:   strPtr("12.5"),
	})
	snap.Executions = append(snap.Executions, contracts.Execution{
		ID:        "c0ffee00-0000-4000-8000-000000000002",
		AccountID: otherAccount,
		Sig:       "other-sig",
		BlockTime: demoEnd.Add(-2 * time.Hour),
		Symbol:    "SOL-PERP",
		Side:      contracts.SideBuy,
		Type:      contracts.InstrumentPerp,
		OrderType: contracts.OrderTypeMarket,
		Price:     "100",
		Size:      "1",
		Notional:  "100",
		Fee:       "0.05",
		FeeAsset:  "USDC",
	})
	return snap
}
