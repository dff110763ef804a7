package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MarketData is one asset quote as supplied by the price feed. The engine
// only consumes ID, Symbol and CurrentPrice; the rest is carried for
// presentation consumers.
type MarketData struct {
	ID                    string          `json:"id"`
	Symbol                string          `json:"symbol"`
	Name                  string          `json:"name"`
	CurrentPrice          decimal.Decimal `json:"currentPrice"`
	PriceChange24h        decimal.Decimal `json:"priceChange24h"`
	PriceChangePercent24h float64         `json:"priceChangePercent24h"`
	MarketCap             decimal.Decimal `json:"marketCap"`
	Volume24h             decimal.Decimal `json:"volume24h"`
	High24h               decimal.Decimal `json:"high24h"`
	Low24h                decimal.Decimal `json:"low24h"`
	LastUpdated           time.Time       `json:"lastUpdated"`
	Image                 string          `json:"image,omitempty"`
}

// PriceSnapshot maps asset id to its latest quote. Trade execution and
// revaluation read prices from a snapshot taken before the call.
type PriceSnapshot map[string]MarketData
