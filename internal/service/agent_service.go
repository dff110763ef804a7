package service

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crowdlike/internal/engine"
	"crowdlike/internal/models"
	"crowdlike/internal/store"
)

// Defaults applied to user-created agents (generated crowd agents get
// randomized settings from the factory instead).
func defaultSafetyExits() []models.SafetyExit {
	return []models.SafetyExit{
		{ID: "1", Type: models.ExitMaxDailyLoss, Threshold: decimal.NewFromInt(10), Enabled: true},
		{ID: "2", Type: models.ExitMaxDrawdown, Threshold: decimal.NewFromInt(25), Enabled: true},
		{ID: "3", Type: models.ExitFraudAlert, Threshold: decimal.Zero, Enabled: true},
	}
}

type AgentService struct {
	Store   *store.Store
	Factory *engine.Factory
	Logger  *zap.Logger
}

// Bootstrap seeds the session with generated user agents and the anonymous
// crowd pool, then computes the first set of aggregates.
func (s *AgentService) Bootstrap(userAgents, crowdAgents int) {
	now := time.Now().UTC()
	_ = s.Store.Update(func(sess *store.Session) error {
		sess.Agents = s.Factory.GenerateAgents(userAgents, sess.User.ID, now)
		sess.Crowd = s.Factory.GenerateAgents(crowdAgents, "crowd", now)
		sess.Recompute()
		return nil
	})
	if s.Logger != nil {
		s.Logger.Info("session bootstrapped",
			zap.Int("user_agents", userAgents),
			zap.Int("crowd_agents", crowdAgents),
		)
	}
}

type CreateAgentParams struct {
	Name           string
	Strategy       models.StrategyType
	Riskness       int
	InitialBalance decimal.Decimal
}

// Create adds a user-owned agent funded from the user's USDC balance.
// Rejected with CapacityExceeded past the configured maximum and with
// InsufficientBalance when the user cannot cover the initial balance; both
// leave the session unchanged.
func (s *AgentService) Create(p CreateAgentParams) (*models.Agent, error) {
	if !p.InitialBalance.IsPositive() {
		return nil, engine.ErrInvalidAmount
	}
	var created *models.Agent
	err := s.Store.Update(func(sess *store.Session) error {
		if len(sess.Agents) >= sess.User.Settings.MaxAgents {
			return engine.ErrCapacityExceeded
		}
		if sess.User.USDCBalance.LessThan(p.InitialBalance) {
			return engine.ErrInsufficientBalance
		}

		now := time.Now().UTC()
		id := uuid.NewString()
		agent := &models.Agent{
			ID:       id,
			BotID:    "BOT" + strings.ToUpper(strings.ReplaceAll(id, "-", "")[:6]),
			Name:     p.Name,
			UserID:   sess.User.ID,
			Strategy: p.Strategy,
			Riskness: p.Riskness,
			Status:   models.StatusActive,
			Portfolio: models.Portfolio{
				AgentID:     id,
				USDCBalance: p.InitialBalance,
				TotalValue:  p.InitialBalance,
				Positions:   []models.Position{},
				Trades:      []models.Trade{},
				LastUpdated: now,
			},
			Settings: models.AgentSettings{
				MaxPositionSize: 20,
				MaxTradesPerDay: 10,
				AutoApprove:     true,
				SafetyExits:     defaultSafetyExits(),
			},
			Performance: models.AgentPerformance{
				TotalProfit:  decimal.Zero,
				AvgTradeSize: decimal.Zero,
			},
			CreatedAt: now,
		}

		sess.User.USDCBalance = sess.User.USDCBalance.Sub(p.InitialBalance)
		sess.Agents = append(sess.Agents, agent)
		sess.Recompute()
		created = agent.Clone()
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.Logger != nil {
		s.Logger.Info("agent created",
			zap.String("agent_id", created.ID),
			zap.String("strategy", string(created.Strategy)),
			zap.String("initial_balance", p.InitialBalance.StringFixed(2)),
		)
	}
	return created, nil
}

// Toggle flips an agent between active and paused. Paused and exited
// agents both resume to active.
func (s *AgentService) Toggle(agentID string) (*models.Agent, error) {
	var out *models.Agent
	err := s.Store.Update(func(sess *store.Session) error {
		agent := sess.FindAgent(agentID)
		if agent == nil {
			return store.ErrAgentNotFound
		}
		if agent.Status == models.StatusActive {
			agent.Status = models.StatusPaused
		} else {
			agent.Status = models.StatusActive
		}
		sess.Recompute()
		out = agent.Clone()
		return nil
	})
	return out, err
}

// Delete removes an agent entirely and refunds its portfolio's total value
// to the user.
func (s *AgentService) Delete(agentID string) error {
	return s.Store.Update(func(sess *store.Session) error {
		agent := sess.FindAgent(agentID)
		if agent == nil {
			return store.ErrAgentNotFound
		}
		sess.User.USDCBalance = sess.User.USDCBalance.Add(agent.Portfolio.TotalValue)
		sess.RemoveAgent(agentID)
		sess.Recompute()
		return nil
	})
}

// Pricing quotes the subscription cost for the user's current fleet at
// their configured default risk level.
func (s *AgentService) Pricing() models.PricingInfo {
	var out models.PricingInfo
	s.Store.View(func(sess *store.Session) {
		out = engine.PricingQuote(len(sess.Agents), sess.User.Settings.DefaultRiskLevel)
	})
	return out
}
