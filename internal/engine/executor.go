package engine

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crowdlike/internal/models"
)

// PaperBaseline is the demo balance that per-trade profit is measured
// against. It is NOT the agent's true initial balance; the upstream design
// hardcodes 2000 and we keep that behavior until the performance model is
// revisited.
var PaperBaseline = decimal.NewFromInt(2000)

// MaxTradeHistory bounds the per-portfolio trade list. The list stays in
// execution order; the oldest records are dropped first.
const MaxTradeHistory = 500

var hundred = decimal.NewFromInt(100)

// TradeRequest is one buy/sell instruction against an agent's portfolio.
// Price is the externally supplied quote for Asset at call time; the
// executor never fetches prices itself.
type TradeRequest struct {
	Asset    string
	Symbol   string
	Side     models.TradeSide
	Amount   decimal.Decimal
	Price    decimal.Decimal
	Reason   string
	Approved bool
}

// ExecuteTrade validates and settles one trade. On rejection the agent is
// left byte-for-byte unchanged (all validation happens before any mutation).
// On success every remaining position is re-marked from quotes, portfolio
// totals are recomputed and the trade record is appended.
func ExecuteTrade(agent *models.Agent, req TradeRequest, quotes models.PriceSnapshot, now time.Time) (*models.Trade, error) {
	if !req.Amount.IsPositive() || !req.Price.IsPositive() {
		return nil, ErrInvalidAmount
	}

	p := &agent.Portfolio
	cash := req.Amount.Mul(req.Price)

	switch req.Side {
	case models.SideBuy:
		if cash.GreaterThan(p.USDCBalance) {
			return nil, ErrInsufficientFunds
		}
		p.USDCBalance = p.USDCBalance.Sub(cash)
		if pos := p.FindPosition(req.Asset); pos != nil {
			// Cost-weighted blend of the entry price.
			totalAmount := pos.Amount.Add(req.Amount)
			totalCost := pos.Amount.Mul(pos.AveragePrice).Add(cash)
			pos.Amount = totalAmount
			pos.AveragePrice = totalCost.Div(totalAmount)
		} else {
			p.Positions = append(p.Positions, models.Position{
				ID:           uuid.NewString(),
				Asset:        req.Asset,
				Symbol:       req.Symbol,
				Amount:       req.Amount,
				AveragePrice: req.Price,
				CurrentPrice: req.Price,
				Value:        cash,
				OpenedAt:     now,
			})
		}

	case models.SideSell:
		pos := p.FindPosition(req.Asset)
		if pos == nil || pos.Amount.LessThan(req.Amount) {
			return nil, ErrInsufficientPosition
		}
		p.USDCBalance = p.USDCBalance.Add(cash)
		if pos.Amount.Equal(req.Amount) {
			removePosition(p, req.Asset)
		} else {
			// Average price stays put: realized gain is not fed back
			// into the cost basis.
			pos.Amount = pos.Amount.Sub(req.Amount)
		}

	default:
		return nil, ErrInvalidAmount
	}

	Revalue(p, quotes, now)

	trade := models.Trade{
		ID:         uuid.NewString(),
		AgentID:    agent.ID,
		Asset:      req.Asset,
		Symbol:     req.Symbol,
		Side:       req.Side,
		Amount:     req.Amount,
		Price:      req.Price,
		USDCAmount: cash,
		Timestamp:  now,
		Reason:     req.Reason,
		Approved:   req.Approved,
	}
	p.Trades = append(p.Trades, trade)
	if len(p.Trades) > MaxTradeHistory {
		p.Trades = p.Trades[len(p.Trades)-MaxTradeHistory:]
	}

	agent.Performance.TotalTrades++
	agent.Performance.TotalProfit = p.TotalValue.Sub(PaperBaseline)
	agent.Performance.TotalProfitPercent = percentOf(agent.Performance.TotalProfit, PaperBaseline)
	t := now
	agent.LastTradeAt = &t

	return &trade, nil
}

// Revalue re-marks every position from the supplied snapshot and restores
// the portfolio invariant totalValue == cash + sum of position values.
// Assets missing from the snapshot keep their last known price.
func Revalue(p *models.Portfolio, quotes models.PriceSnapshot, now time.Time) {
	positionsValue := decimal.Zero
	for i := range p.Positions {
		pos := &p.Positions[i]
		if q, ok := quotes[pos.Asset]; ok && q.CurrentPrice.IsPositive() {
			pos.CurrentPrice = q.CurrentPrice
		}
		pos.Value = pos.Amount.Mul(pos.CurrentPrice)
		costBasis := pos.Amount.Mul(pos.AveragePrice)
		pos.ProfitLoss = pos.Value.Sub(costBasis)
		pos.ProfitLossPercent = percentOf(pos.ProfitLoss, costBasis)
		positionsValue = positionsValue.Add(pos.Value)
	}
	p.TotalValue = p.USDCBalance.Add(positionsValue)
	p.LastUpdated = now
}

func removePosition(p *models.Portfolio, asset string) {
	kept := p.Positions[:0]
	for _, pos := range p.Positions {
		if pos.Asset != asset {
			kept = append(kept, pos)
		}
	}
	p.Positions = kept
}

// percentOf returns part/base*100, with a zero base defined as 0 rather
// than an error.
func percentOf(part, base decimal.Decimal) float64 {
	if base.IsZero() {
		return 0
	}
	f, _ := part.Div(base).Mul(hundred).Float64()
	return f
}
