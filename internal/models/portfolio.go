package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a held quantity of one asset. A position with Amount == 0 is
// removed from the portfolio, never kept at zero.
type Position struct {
	ID                string          `json:"id"`
	Asset             string          `json:"asset"` // feed asset id, e.g. "bitcoin"
	Symbol            string          `json:"symbol"`
	Amount            decimal.Decimal `json:"amount"`
	AveragePrice      decimal.Decimal `json:"averagePrice"` // volume-weighted cost basis
	CurrentPrice      decimal.Decimal `json:"currentPrice"`
	Value             decimal.Decimal `json:"value"` // amount * currentPrice
	ProfitLoss        decimal.Decimal `json:"profitLoss"`
	ProfitLossPercent float64         `json:"profitLossPercent"`
	OpenedAt          time.Time       `json:"openedAt"`
}

// Portfolio is the financial state of one agent. After every mutation
// TotalValue == USDCBalance + sum of position values.
type Portfolio struct {
	AgentID     string          `json:"agentId"`
	USDCBalance decimal.Decimal `json:"usdcBalance"`
	TotalValue  decimal.Decimal `json:"totalValue"`
	Positions   []Position      `json:"positions"`
	Trades      []Trade         `json:"trades"`
	LastUpdated time.Time       `json:"lastUpdated"`
}

// FindPosition returns a pointer into Positions for the given asset id,
// or nil when the asset is not held.
func (p *Portfolio) FindPosition(asset string) *Position {
	for i := range p.Positions {
		if p.Positions[i].Asset == asset {
			return &p.Positions[i]
		}
	}
	return nil
}
