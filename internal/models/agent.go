package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type StrategyType string

const (
	StrategyAggressive   StrategyType = "aggressive"
	StrategyConservative StrategyType = "conservative"
	StrategyBalanced     StrategyType = "balanced"
	StrategySwing        StrategyType = "swing"
	StrategyDaytrading   StrategyType = "daytrading"
	StrategyHodl         StrategyType = "hodl"
	StrategyCustom       StrategyType = "custom"
)

// Strategies lists the tags the factory samples from; custom is only
// reachable through explicit agent creation.
var Strategies = []StrategyType{
	StrategyAggressive,
	StrategyConservative,
	StrategyBalanced,
	StrategySwing,
	StrategyDaytrading,
	StrategyHodl,
}

func (s StrategyType) Valid() bool {
	switch s {
	case StrategyAggressive, StrategyConservative, StrategyBalanced,
		StrategySwing, StrategyDaytrading, StrategyHodl, StrategyCustom:
		return true
	}
	return false
}

type AgentStatus string

const (
	StatusActive AgentStatus = "active"
	StatusPaused AgentStatus = "paused"
	StatusExited AgentStatus = "exited"
)

type SafetyExitType string

const (
	ExitMaxDailyLoss SafetyExitType = "max_daily_loss"
	ExitMaxDrawdown  SafetyExitType = "max_drawdown"
	ExitFraudAlert   SafetyExitType = "fraud_alert"
)

// SafetyExit is inert guardrail config: it is created with the agent and
// carried as data, never evaluated here. Threshold semantics depend on Type.
type SafetyExit struct {
	ID          string          `json:"id"`
	Type        SafetyExitType  `json:"type"`
	Threshold   decimal.Decimal `json:"threshold"`
	Enabled     bool            `json:"enabled"`
	TriggeredAt *time.Time      `json:"triggeredAt,omitempty"`
}

type AgentSettings struct {
	MaxPositionSize float64      `json:"maxPositionSize"` // % of portfolio per trade
	MaxTradesPerDay int          `json:"maxTradesPerDay"`
	AutoApprove     bool         `json:"autoApprove"`
	SafetyExits     []SafetyExit `json:"safetyExits"`
}

type AgentPerformance struct {
	TotalProfit        decimal.Decimal `json:"totalProfit"`
	TotalProfitPercent float64         `json:"totalProfitPercent"`
	Streaks            int             `json:"streaks"`
	WinRate            float64         `json:"winRate"`
	TotalTrades        int             `json:"totalTrades"`
	ProfitableTrades   int             `json:"profitableTrades"`
	AvgTradeSize       decimal.Decimal `json:"avgTradeSize"`
	MaxDrawdown        float64         `json:"maxDrawdown"`
	SharpeRatio        float64         `json:"sharpeRatio"`
	CrowdDeviation     float64         `json:"crowdDeviation"`
}

// Agent is one simulated trading entity. It owns exactly one Portfolio,
// one Settings block and one Performance record.
type Agent struct {
	ID          string           `json:"id"`
	BotID       string           `json:"botId"` // public id for leaderboards
	Name        string           `json:"name"`
	UserID      string           `json:"userId"`
	Strategy    StrategyType     `json:"strategy"`
	Riskness    int              `json:"riskness"` // 0-100
	Status      AgentStatus      `json:"status"`
	Portfolio   Portfolio        `json:"portfolio"`
	Settings    AgentSettings    `json:"settings"`
	Performance AgentPerformance `json:"performance"`
	CreatedAt   time.Time        `json:"createdAt"`
	LastTradeAt *time.Time       `json:"lastTradeAt,omitempty"`
}
