package models

import "github.com/shopspring/decimal"

type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

var Periods = []Period{PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly}

func (p Period) Valid() bool {
	switch p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return true
	}
	return false
}

// LeaderboardEntry is a denormalized, read-only snapshot of one ranked
// agent. Entries are replaced wholesale on recomputation, never mutated.
type LeaderboardEntry struct {
	Rank          int             `json:"rank"`
	BotID         string          `json:"botId"`
	AgentName     string          `json:"agentName"`
	Score         decimal.Decimal `json:"score"`
	Profit        decimal.Decimal `json:"profit"`
	ProfitPercent float64         `json:"profitPercent"`
	Streaks       int             `json:"streaks"`
	TotalTrades   int             `json:"totalTrades"`
	WinRate       float64         `json:"winRate"`
	Period        Period          `json:"period"`
}

type StrategyCount struct {
	Strategy StrategyType `json:"strategy"`
	Count    int          `json:"count"`
}

// CrowdMetrics is a read-only aggregate over the active agents of a
// snapshot. A zero-valued record (not an error) stands for "no active
// agents".
type CrowdMetrics struct {
	AvgRiskness     int             `json:"avgRiskness"`
	AvgTradesPerDay float64         `json:"avgTradesPerDay"`
	AvgPositionSize int             `json:"avgPositionSize"`
	TotalAgents     int             `json:"totalAgents"`
	TotalVolume     decimal.Decimal `json:"totalVolume"`
	TopStrategies   []StrategyCount `json:"topStrategies"`
}

// PricingInfo is the demo subscription quote for a given fleet size and
// risk level.
type PricingInfo struct {
	AgentCount      int     `json:"agentCount"`
	RiskLevel       int     `json:"riskLevel"`
	DailyPrice      float64 `json:"dailyPrice"`
	MonthlyEstimate float64 `json:"monthlyEstimate"`
}
