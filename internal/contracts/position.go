package contracts

import "time"

// Position represents a reconciled round-trip (or still open) trade
// ⭐ SSOT: 포지션 레코드 정의는 여기서만
// 금액 필드는 저장소 표현 그대로 decimal 문자열 (float 변환은 analytics.Normalize에서만)
type Position struct {
	ID        string         `json:"id" yaml:"id"`
	AccountID string         `json:"accountId" yaml:"accountId"`
	Symbol    string         `json:"symbol" yaml:"symbol"`
	Status    PositionStatus `json:"status" yaml:"status"`
	Side      Side           `json:"side" yaml:"side"`

	OpenedAt time.Time  `json:"openedAt" yaml:"openedAt"`
	ClosedAt *time.Time `json:"closedAt,omitempty" yaml:"closedAt,omitempty"` // status != OPEN 일 때만

	AvgEntryPrice string  `json:"avgEntryPrice" yaml:"avgEntryPrice"`
	AvgExitPrice  *string `json:"avgExitPrice,omitempty" yaml:"avgExitPrice,omitempty"`
	MaxSize       string  `json:"maxSize" yaml:"maxSize"`
	TotalVolume   string  `json:"totalVolume" yaml:"totalVolume"`
	TotalFees     string  `json:"totalFees" yaml:"totalFees"`

	// Upstream reconciler output, immutable once closed
	RealizedPnL          *string `json:"realizedPnL,omitempty" yaml:"realizedPnL,omitempty"`
	HoldingPeriodSeconds *string `json:"holdingPeriodSeconds,omitempty" yaml:"holdingPeriodSeconds,omitempty"`
	RMultiple            *string `json:"rMultiple,omitempty" yaml:"rMultiple,omitempty"`
}

// PositionStatus represents the lifecycle state of a position
type PositionStatus string

const (
	PositionOpen       PositionStatus = "OPEN"
	PositionClosed     PositionStatus = "CLOSED"
	PositionLiquidated PositionStatus = "LIQUIDATED"
)

// Side represents trade direction. BUY/LONG and SELL/SHORT are synonyms.
type Side string

const (
	SideBuy   Side = "BUY"
	SideSell  Side = "SELL"
	SideLong  Side = "LONG"
	SideShort Side = "SHORT"
)

// IsLong reports whether the side opens long exposure
func (s Side) IsLong() bool {
	return s == SideBuy || s == SideLong
}

// IsShort reports whether the side opens short exposure
func (s Side) IsShort() bool {
	return s == SideSell || s == SideShort
}

// IsClosed checks if the position is fully closed (not liquidated)
func (p *Position) IsClosed() bool {
	return p.Status == PositionClosed
}
