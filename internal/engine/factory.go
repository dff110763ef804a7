package engine

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"crowdlike/internal/models"
)

// CatalogAsset is one entry of the fixed demo asset catalog the factory
// samples positions from. Price is the reference price perturbations are
// applied to.
type CatalogAsset struct {
	ID     string
	Symbol string
	Price  decimal.Decimal
}

var AssetCatalog = []CatalogAsset{
	{ID: "bitcoin", Symbol: "BTC", Price: decimal.NewFromInt(45000)},
	{ID: "ethereum", Symbol: "ETH", Price: decimal.NewFromInt(2500)},
	{ID: "solana", Symbol: "SOL", Price: decimal.NewFromInt(100)},
	{ID: "cardano", Symbol: "ADA", Price: decimal.NewFromFloat(0.5)},
	{ID: "polkadot", Symbol: "DOT", Price: decimal.NewFromInt(7)},
}

var agentNames = []string{
	"Alpha", "Beta", "Gamma", "Delta", "Epsilon",
	"Zeta", "Eta", "Theta", "Iota", "Kappa",
}

const botIDAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Factory generates agents with randomized-but-bounded state. Randomness
// comes from the injected source so tests can seed it.
type Factory struct {
	rnd *rand.Rand
}

func NewFactory(rnd *rand.Rand) *Factory {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Factory{rnd: rnd}
}

// GenerateAgents produces count agents owned by ownerID. The shape is
// deterministic; the values are drawn within the documented bounds:
// balance [1000,5000), historical profit [-30%,+70%) of it, 5-54 trades
// with a 40-80% win share, three catalog positions, cash fixed at 30% of
// total value.
func (f *Factory) GenerateAgents(count int, ownerID string, now time.Time) []*models.Agent {
	agents := make([]*models.Agent, 0, count)
	for i := 0; i < count; i++ {
		initial := 1000 + f.rnd.Float64()*4000
		profit := (f.rnd.Float64() - 0.3) * initial
		totalValue := decimal.NewFromFloat(initial + profit)
		profitDec := decimal.NewFromFloat(profit)

		totalTrades := 5 + f.rnd.Intn(50)
		profitableTrades := int(float64(totalTrades) * (0.4 + f.rnd.Float64()*0.4))
		winRate := float64(profitableTrades) / float64(totalTrades) * 100

		id := uuid.NewString()
		name := fmt.Sprintf("Agent %d", i+1)
		if i < len(agentNames) {
			name = "Agent " + agentNames[i]
		}

		status := models.StatusActive
		if f.rnd.Float64() <= 0.1 {
			if f.rnd.Float64() > 0.5 {
				status = models.StatusPaused
			} else {
				status = models.StatusExited
			}
		}

		cash := totalValue.Mul(decimal.NewFromFloat(0.3))
		createdAt := now.Add(-time.Duration(f.rnd.Float64() * 90 * 24 * float64(time.Hour)))
		lastTradeAt := now.Add(-time.Duration(f.rnd.Float64() * 24 * float64(time.Hour)))

		agents = append(agents, &models.Agent{
			ID:       id,
			BotID:    f.botID(),
			Name:     name,
			UserID:   ownerID,
			Strategy: models.Strategies[f.rnd.Intn(len(models.Strategies))],
			Riskness: f.rnd.Intn(101),
			Status:   status,
			Portfolio: models.Portfolio{
				AgentID: id,
				// Cash is fixed at 30% of total value; the sampled
				// positions stand in for the remaining 70% as a display
				// approximation, they are not re-derived.
				USDCBalance: cash,
				TotalValue:  totalValue,
				Positions:   f.positions(3, now),
				Trades:      []models.Trade{},
				LastUpdated: now,
			},
			Settings: models.AgentSettings{
				MaxPositionSize: 15 + f.rnd.Float64()*20,
				MaxTradesPerDay: 5 + f.rnd.Intn(15),
				AutoApprove:     f.rnd.Float64() > 0.3,
				SafetyExits:     f.safetyExits(),
			},
			Performance: models.AgentPerformance{
				TotalProfit:        profitDec,
				TotalProfitPercent: profit / initial * 100,
				Streaks:            f.rnd.Intn(10),
				WinRate:            winRate,
				TotalTrades:        totalTrades,
				ProfitableTrades:   profitableTrades,
				AvgTradeSize:       totalValue.Mul(decimal.NewFromFloat(0.1)),
				MaxDrawdown:        f.rnd.Float64() * 20,
				SharpeRatio:        0.5 + f.rnd.Float64()*2,
				CrowdDeviation:     f.rnd.Float64() * 40,
			},
			CreatedAt:   createdAt,
			LastTradeAt: &lastTradeAt,
		})
	}
	return agents
}

// positions samples n catalog assets without replacement. Entry price is
// the reference perturbed by [-15%,+15%), current price a further
// [-15%,+25%) perturbation of the entry.
func (f *Factory) positions(n int, now time.Time) []models.Position {
	picks := f.rnd.Perm(len(AssetCatalog))
	if n > len(picks) {
		n = len(picks)
	}
	out := make([]models.Position, 0, n)
	for _, idx := range picks[:n] {
		asset := AssetCatalog[idx]
		entry := asset.Price.Mul(decimal.NewFromFloat(0.85 + f.rnd.Float64()*0.3))
		current := entry.Mul(decimal.NewFromFloat(0.85 + f.rnd.Float64()*0.4))
		amount := decimal.NewFromFloat(f.rnd.Float64() * 2)

		value := amount.Mul(current)
		costBasis := amount.Mul(entry)
		pnl := value.Sub(costBasis)
		out = append(out, models.Position{
			ID:                uuid.NewString(),
			Asset:             asset.ID,
			Symbol:            asset.Symbol,
			Amount:            amount,
			AveragePrice:      entry,
			CurrentPrice:      current,
			Value:             value,
			ProfitLoss:        pnl,
			ProfitLossPercent: percentOf(pnl, costBasis),
			OpenedAt:          now.Add(-time.Duration(f.rnd.Float64() * 30 * 24 * float64(time.Hour))),
		})
	}
	return out
}

// safetyExits returns one exit of each of the three types, enabled.
func (f *Factory) safetyExits() []models.SafetyExit {
	return []models.SafetyExit{
		{ID: "1", Type: models.ExitMaxDailyLoss, Threshold: decimal.NewFromFloat(5 + f.rnd.Float64()*15), Enabled: true},
		{ID: "2", Type: models.ExitMaxDrawdown, Threshold: decimal.NewFromFloat(20 + f.rnd.Float64()*20), Enabled: true},
		{ID: "3", Type: models.ExitFraudAlert, Threshold: decimal.Zero, Enabled: true},
	}
}

func (f *Factory) botID() string {
	b := make([]byte, 6)
	for i := range b {
		b[i] = botIDAlphabet[f.rnd.Intn(len(botIDAlphabet))]
	}
	return "BOT" + string(b)
}
