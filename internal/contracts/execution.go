package contracts

import "time"

// Execution represents one fill (entry or exit leg) of a position
// ⭐ SSOT: 체결 레코드 정의는 여기서만
type Execution struct {
	ID         string  `json:"id" yaml:"id"`
	AccountID  string  `json:"accountId" yaml:"accountId"`
	PositionID *string `json:"positionId,omitempty" yaml:"positionId,omitempty"` // nil = unlinked fill

	Sig       string    `json:"sig" yaml:"sig"` // ledger signature / tx hash
	BlockTime time.Time `json:"blockTime" yaml:"blockTime"`
	Symbol    string    `json:"symbol" yaml:"symbol"`

	Side      Side           `json:"side" yaml:"side"`
	Type      InstrumentType `json:"type" yaml:"type"`
	OrderType OrderType      `json:"orderType" yaml:"orderType"`

	Price    string `json:"price" yaml:"price"`
	Size     string `json:"size" yaml:"size"`
	Notional string `json:"notional" yaml:"notional"`
	Fee      string `json:"fee" yaml:"fee"`
	FeeAsset string `json:"feeAsset,omitempty" yaml:"feeAsset,omitempty"`
	IsMaker  bool   `json:"isMaker" yaml:"isMaker"`
}

// InstrumentType represents the traded instrument kind
type InstrumentType string

const (
	InstrumentSpot   InstrumentType = "SPOT"
	InstrumentPerp   InstrumentType = "PERP"
	InstrumentOption InstrumentType = "OPTION"
)

// OrderType represents how the fill was produced
type OrderType string

const (
	OrderTypeMarket      OrderType = "MARKET"
	OrderTypeLimit       OrderType = "LIMIT"
	OrderTypeStop        OrderType = "STOP"
	OrderTypeLiquidation OrderType = "LIQUIDATION"
)
