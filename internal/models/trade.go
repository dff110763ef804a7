package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TradeSide string

const (
	SideBuy  TradeSide = "buy"
	SideSell TradeSide = "sell"
)

func (s TradeSide) Valid() bool {
	return s == SideBuy || s == SideSell
}

// Trade is an immutable record of one executed paper trade, appended to the
// owning portfolio in execution order. USDCAmount is the absolute cash moved
// (debit on buy, credit on sell).
type Trade struct {
	ID         string          `json:"id"`
	AgentID    string          `json:"agentId"`
	Asset      string          `json:"asset"`
	Symbol     string          `json:"symbol"`
	Side       TradeSide       `json:"type"`
	Amount     decimal.Decimal `json:"amount"`
	Price      decimal.Decimal `json:"price"`
	USDCAmount decimal.Decimal `json:"usdcAmount"`
	Timestamp  time.Time       `json:"timestamp"`
	Reason     string          `json:"reason,omitempty"`
	Approved   bool            `json:"approved"`
}
