package analytics

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wonny/tradejournal/internal/contracts"
)

// =============================================================================
// Normalizer
// ⭐ SSOT: decimal 문자열 → float64 변환은 여기서만
// =============================================================================

// Trade is a position with its monetary fields converted for computation
type Trade struct {
	ID        string
	AccountID string
	Symbol    string
	Status    contracts.PositionStatus
	Side      contracts.Side
	OpenedAt  time.Time
	ClosedAt  *time.Time

	AvgEntryPrice float64
	AvgExitPrice  float64
	MaxSize       float64
	TotalVolume   float64
	TotalFees     float64
	PnL           float64 // realizedPnL, 0 when absent

	HoldingSeconds float64
	RMultiple      *float64
}

// IsWin realized PnL > 0
func (t *Trade) IsWin() bool { return t.PnL > 0 }

// IsLoss realized PnL < 0
func (t *Trade) IsLoss() bool { return t.PnL < 0 }

// Fill is an execution with its monetary fields converted for computation
type Fill struct {
	ID         string
	PositionID string // "" when unlinked
	Symbol     string
	Side       contracts.Side
	OrderType  contracts.OrderType
	BlockTime  time.Time
	Price      float64
	Size       float64
	Notional   float64
	Fee        float64
	IsMaker    bool
}

// Dataset is the normalized, read-only input of every component
type Dataset struct {
	Trades []Trade // all positions, input order
	Fills  []Fill  // all executions, input order
}

// Normalize validates and converts positions/executions.
// Fails fast with *InvalidInputError on the first offending field.
// Inputs are never modified.
func Normalize(positions []contracts.Position, executions []contracts.Execution) (*Dataset, error) {
	ds := &Dataset{
		Trades: make([]Trade, 0, len(positions)),
		Fills:  make([]Fill, 0, len(executions)),
	}

	for i := range positions {
		t, err := normalizePosition(&positions[i])
		if err != nil {
			return nil, err
		}
		ds.Trades = append(ds.Trades, t)
	}

	for i := range executions {
		f, err := normalizeExecution(&executions[i])
		if err != nil {
			return nil, err
		}
		ds.Fills = append(ds.Fills, f)
	}

	return ds, nil
}

func normalizePosition(p *contracts.Position) (Trade, error) {
	t := Trade{
		ID:        p.ID,
		AccountID: p.AccountID,
		Symbol:    p.Symbol,
		Status:    p.Status,
		Side:      p.Side,
		OpenedAt:  p.OpenedAt,
	}
	if p.ClosedAt != nil {
		closedAt := *p.ClosedAt
		t.ClosedAt = &closedAt
	}

	// CLOSED 포지션은 closedAt / realizedPnL 필수
	if p.IsClosed() {
		if p.ClosedAt == nil {
			return t, positionErr(p.ID, "closedAt", "", "closed position without closedAt")
		}
		if p.RealizedPnL == nil || *p.RealizedPnL == "" {
			return t, positionErr(p.ID, "realizedPnL", "", "closed position without realizedPnL")
		}
	}

	required := []struct {
		field string
		raw   string
		dst   *float64
	}{
		{"avgEntryPrice", p.AvgEntryPrice, &t.AvgEntryPrice},
		{"maxSize", p.MaxSize, &t.MaxSize},
		{"totalVolume", p.TotalVolume, &t.TotalVolume},
		{"totalFees", p.TotalFees, &t.TotalFees},
	}
	for _, r := range required {
		v, err := parseDecimal(r.raw)
		if err != nil {
			return t, positionErr(p.ID, r.field, r.raw, err.Error())
		}
		*r.dst = v
	}

	optional := []struct {
		field string
		raw   *string
		dst   *float64
	}{
		{"avgExitPrice", p.AvgExitPrice, &t.AvgExitPrice},
		{"realizedPnL", p.RealizedPnL, &t.PnL},
		{"holdingPeriodSeconds", p.HoldingPeriodSeconds, &t.HoldingSeconds},
	}
	for _, o := range optional {
		if o.raw == nil || *o.raw == "" {
			continue
		}
		v, err := parseDecimal(*o.raw)
		if err != nil {
			return t, positionErr(p.ID, o.field, *o.raw, err.Error())
		}
		*o.dst = v
	}

	if p.RMultiple != nil && *p.RMultiple != "" {
		v, err := parseDecimal(*p.RMultiple)
		if err != nil {
			return t, positionErr(p.ID, "rMultiple", *p.RMultiple, err.Error())
		}
		t.RMultiple = &v
	}

	return t, nil
}

func normalizeExecution(e *contracts.Execution) (Fill, error) {
	f := Fill{
		ID:        e.ID,
		Symbol:    e.Symbol,
		Side:      e.Side,
		OrderType: e.OrderType,
		BlockTime: e.BlockTime,
		IsMaker:   e.IsMaker,
	}
	if e.PositionID != nil {
		f.PositionID = *e.PositionID
	}

	fields := []struct {
		field string
		raw   string
		dst   *float64
	}{
		{"price", e.Price, &f.Price},
		{"size", e.Size, &f.Size},
		{"notional", e.Notional, &f.Notional},
		{"fee", e.Fee, &f.Fee},
	}
	for _, fd := range fields {
		v, err := parseDecimal(fd.raw)
		if err != nil {
			return f, &InvalidInputError{Entity: "execution", ID: e.ID, Field: fd.field, Value: fd.raw, Reason: err.Error()}
		}
		*fd.dst = v
	}

	return f, nil
}

// parseDecimal converts an arbitrary-precision decimal string to float64.
// Lossy by design: statistics only, never ledger reconciliation.
func parseDecimal(raw string) (float64, error) {
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0, err
	}
	v := d.InexactFloat64()
	if math.IsInf(v, 0) {
		return 0, errOutOfRange
	}
	return v, nil
}

// errOutOfRange decimal parses but does not fit float64 (e.g. "1e400")
var errOutOfRange = errors.New("out of float64 range")

func positionErr(id, field, value, reason string) error {
	return &InvalidInputError{Entity: "position", ID: id, Field: field, Value: value, Reason: reason}
}

// =============================================================================
// Dataset views (항상 복사본 반환)
// =============================================================================

// Closed returns CLOSED trades in input order
func (d *Dataset) Closed() []Trade {
	out := make([]Trade, 0, len(d.Trades))
	for _, t := range d.Trades {
		if t.Status == contracts.PositionClosed {
			out = append(out, t)
		}
	}
	return out
}

// chronological returns CLOSED trades having a closedAt, stably sorted by closedAt
func (d *Dataset) chronological() []Trade {
	out := make([]Trade, 0, len(d.Trades))
	for _, t := range d.Trades {
		if t.Status == contracts.PositionClosed && t.ClosedAt != nil {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ClosedAt.Before(*out[j].ClosedAt)
	})
	return out
}

// TotalFees Σ execution fees
func (d *Dataset) TotalFees() float64 {
	var sum float64
	for _, f := range d.Fills {
		sum += f.Fee
	}
	return sum
}

// GrossPnL Σ realized PnL of CLOSED trades
func (d *Dataset) GrossPnL() float64 {
	var sum float64
	for _, t := range d.Trades {
		if t.Status == contracts.PositionClosed {
			sum += t.PnL
		}
	}
	return sum
}
