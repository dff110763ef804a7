package engine

import (
	"github.com/shopspring/decimal"

	"crowdlike/internal/models"
)

// DailyPrice is the demo subscription formula: (agentCount^2) * (risk/100).
// Pure, monotonic non-decreasing in both inputs; zero agents price at zero
// regardless of risk.
func DailyPrice(agentCount, riskLevel int) float64 {
	return float64(agentCount*agentCount) * float64(riskLevel) / 100
}

// PricingQuote bundles the daily price with a 30-day estimate.
func PricingQuote(agentCount, riskLevel int) models.PricingInfo {
	daily := DailyPrice(agentCount, riskLevel)
	return models.PricingInfo{
		AgentCount:      agentCount,
		RiskLevel:       riskLevel,
		DailyPrice:      daily,
		MonthlyEstimate: daily * 30,
	}
}

func decimal64(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}
