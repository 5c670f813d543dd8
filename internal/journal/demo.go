package journal

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/wonny/tradejournal/internal/contracts"
)

// Demo dataset parameters
const (
	demoSeed       = 42
	demoPositions  = 24
	demoWindowDays = 30
	demoFeeRate    = 0.0005 // 0.05%

	day = 24 * time.Hour
)

var demoSymbols = []string{"SOL-PERP", "BTC-PERP", "ETH-PERP", "JUP-PERP"}

// DemoAccountID is the fixed account id used by the demo dataset
var DemoAccountID = uuid.NewSHA1(uuid.NameSpaceURL, []byte("tradejournal/demo")).String()

// DemoSnapshot generates a deterministic sample journal ending at end.
// 같은 (accountID, end) 이면 항상 같은 결과: 고정 seed + SHA1 uuid
func DemoSnapshot(accountID string, end time.Time) contracts.Snapshot {
	rng := rand.New(rand.NewSource(demoSeed))
	end = end.UTC()

	snap := contracts.Snapshot{
		Positions:  make([]contracts.Position, 0, demoPositions),
		Executions: make([]contracts.Execution, 0, demoPositions*2),
	}

	for i := 0; i < demoPositions; i++ {
		symbol := demoSymbols[rng.Intn(len(demoSymbols))]
		isWin := rng.Float64() > 0.4 // ~60% win rate
		side := contracts.SideLong
		if rng.Float64() > 0.5 {
			side = contracts.SideShort
		}
		entry := rng.Float64()*100 + 10
		size := rng.Float64()*10 + 0.1
		notional := entry * size
		fees := notional * demoFeeRate

		openedAt := end.Add(-time.Duration(rng.Float64() * demoWindowDays * float64(day))).Truncate(time.Second)
		closed := rng.Float64() > 0.2 // ~80% closed
		orderType := contracts.OrderTypeMarket
		if rng.Float64() > 0.6 {
			orderType = contracts.OrderTypeLimit
		}

		positionID := demoID(accountID, "position", i)
		pos := contracts.Position{
			ID:            positionID,
			AccountID:     accountID,
			Symbol:        symbol,
			Status:        contracts.PositionOpen,
			Side:          side,
			OpenedAt:      openedAt,
			AvgEntryPrice: fixed(entry),
			MaxSize:       fixed(size),
			TotalVolume:   fixed(notional),
			TotalFees:     fixed(fees),
		}

		entrySide, exitSide := contracts.SideBuy, contracts.SideSell
		if side.IsShort() {
			entrySide, exitSide = contracts.SideSell, contracts.SideBuy
		}
		snap.Executions = append(snap.Executions, demoExecution(accountID, positionID, i, 0,
			openedAt, symbol, entrySide, orderType, entry, size, fees/2))

		if closed {
			closedAt := openedAt.Add(time.Duration(rng.Float64() * float64(day))).Truncate(time.Second)
			move := -rng.Float64() * 0.05
			if isWin {
				move = rng.Float64() * 0.1
			}

			exit := entry * (1 + move)
			pnl := (exit - entry) * size
			if side.IsShort() {
				exit = entry * (1 - move)
				pnl = (entry - exit) * size
			}
			pnl -= fees // net of fees

			pos.Status = contracts.PositionClosed
			pos.ClosedAt = &closedAt
			pos.AvgExitPrice = strRef(fixed(exit))
			pos.TotalVolume = fixed(notional + exit*size)
			pos.RealizedPnL = strRef(fixed(pnl))
			pos.HoldingPeriodSeconds = strRef(fmt.Sprintf("%d", int64(closedAt.Sub(openedAt).Seconds())))

			snap.Executions = append(snap.Executions, demoExecution(accountID, positionID, i, 1,
				closedAt, symbol, exitSide, orderType, exit, size, fees/2))
		}

		snap.Positions = append(snap.Positions, pos)
	}

	return snap
}

func demoExecution(accountID, positionID string, i, leg int, at time.Time, symbol string,
	side contracts.Side, orderType contracts.OrderType, price, size, fee float64) contracts.Execution {
	pid := positionID
	return contracts.Execution{
		ID:         demoID(accountID, "execution", i*2+leg),
		AccountID:  accountID,
		PositionID: &pid,
		Sig:        fmt.Sprintf("demo-sig-%03d-%d", i, leg),
		BlockTime:  at,
		Symbol:     symbol,
		Side:       side,
		Type:       contracts.InstrumentPerp,
		OrderType:  orderType,
		Price:      fixed(price),
		Size:       fixed(size),
		Notional:   fixed(price * size),
		Fee:        fixed(fee),
		FeeAsset:   "USDC",
		IsMaker:    orderType == contracts.OrderTypeLimit,
	}
}

func demoID(accountID, kind string, n int) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(fmt.Sprintf("%s/%s/%d", accountID, kind, n))).String()
}

func fixed(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}

func strRef(s string) *string {
	return &s
}
