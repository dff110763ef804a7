package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crowdlike/internal/engine"
	"crowdlike/internal/market"
	"crowdlike/internal/models"
	"crowdlike/internal/store"
)

type TradeService struct {
	Store  *store.Store
	Market *market.Client
	Logger *zap.Logger
}

type TradeParams struct {
	AgentID  string
	Asset    string
	Side     models.TradeSide
	Amount   decimal.Decimal
	Reason   string
	Approved bool
}

// Execute runs one paper trade for a user agent at the current feed price.
// The price snapshot is taken before entering the session lock; execution
// itself is all-or-nothing.
func (s *TradeService) Execute(ctx context.Context, p TradeParams) (*models.Trade, error) {
	snapshot := s.Market.Snapshot(ctx)
	quote, ok := snapshot[p.Asset]
	if !ok {
		return nil, engine.ErrUnknownAsset
	}

	var trade *models.Trade
	err := s.Store.Update(func(sess *store.Session) error {
		agent := sess.FindAgent(p.AgentID)
		if agent == nil {
			return store.ErrAgentNotFound
		}
		executed, err := engine.ExecuteTrade(agent, engine.TradeRequest{
			Asset:    p.Asset,
			Symbol:   quote.Symbol,
			Side:     p.Side,
			Amount:   p.Amount,
			Price:    quote.CurrentPrice,
			Reason:   p.Reason,
			Approved: p.Approved,
		}, snapshot, time.Now().UTC())
		if err != nil {
			return err
		}
		sess.Recompute()
		trade = executed
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("paper trade executed",
			zap.String("agent_id", p.AgentID),
			zap.String("asset", p.Asset),
			zap.String("side", string(p.Side)),
			zap.String("amount", p.Amount.String()),
			zap.String("price", quote.CurrentPrice.String()),
		)
	}
	return trade, nil
}
