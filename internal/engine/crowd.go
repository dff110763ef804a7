package engine

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"crowdlike/internal/models"
)

// TopStrategyCount caps the strategy ranking inside CrowdMetrics.
const TopStrategyCount = 5

// AggregateCrowd computes population statistics over the active agents of
// a snapshot. An empty active set yields the zero-valued record, never an
// error. avgTradesPerDay is a configured constant, not derived from trade
// history (kept from the upstream demo design).
func AggregateCrowd(agents []*models.Agent, avgTradesPerDay float64) models.CrowdMetrics {
	var active []*models.Agent
	for _, a := range agents {
		if a.Status == models.StatusActive {
			active = append(active, a)
		}
	}
	if len(active) == 0 {
		return models.CrowdMetrics{
			TotalVolume:   decimal.Zero,
			TopStrategies: []models.StrategyCount{},
		}
	}

	riskSum := 0
	posSum := 0.0
	volume := decimal.Zero
	counts := map[models.StrategyType]int{}
	var order []models.StrategyType
	for _, a := range active {
		riskSum += a.Riskness
		posSum += a.Settings.MaxPositionSize
		volume = volume.Add(a.Portfolio.TotalValue)
		if _, seen := counts[a.Strategy]; !seen {
			order = append(order, a.Strategy)
		}
		counts[a.Strategy]++
	}

	top := make([]models.StrategyCount, 0, len(order))
	for _, s := range order {
		top = append(top, models.StrategyCount{Strategy: s, Count: counts[s]})
	}
	// Stable: ties keep first-encountered order.
	sort.SliceStable(top, func(i, j int) bool { return top[i].Count > top[j].Count })
	if len(top) > TopStrategyCount {
		top = top[:TopStrategyCount]
	}

	n := float64(len(active))
	return models.CrowdMetrics{
		AvgRiskness:     int(math.Round(float64(riskSum) / n)),
		AvgTradesPerDay: avgTradesPerDay,
		AvgPositionSize: int(math.Round(posSum / n)),
		TotalAgents:     len(active),
		TotalVolume:     volume,
		TopStrategies:   top,
	}
}

// CrowdDeviation estimates how far an agent sits from the crowd's 50th
// percentile, as the mean of three percentile distances. Zero-valued crowd
// averages contribute 0 instead of dividing by zero.
func CrowdDeviation(agent *models.Agent, m models.CrowdMetrics) float64 {
	risk := math.Abs(float64(agent.Riskness) - 50)

	position := 0.0
	if m.AvgPositionSize > 0 {
		position = math.Abs(agent.Settings.MaxPositionSize/float64(m.AvgPositionSize)*50 - 50)
	}

	trades := 0.0
	if m.AvgTradesPerDay > 0 {
		trades = math.Abs(float64(agent.Settings.MaxTradesPerDay)/m.AvgTradesPerDay*50 - 50)
	}

	return math.Round((risk + position + trades) / 3)
}
