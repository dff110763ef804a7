package market

import (
	"time"

	"crowdlike/internal/engine"
	"crowdlike/internal/models"
)

// FallbackMarkets builds demo quotes from the fixed asset catalog. Stable,
// no external calls; used when the upstream cannot be reached and nothing
// is cached yet.
func FallbackMarkets(now time.Time) []models.MarketData {
	names := map[string]string{
		"bitcoin":  "Bitcoin",
		"ethereum": "Ethereum",
		"solana":   "Solana",
		"cardano":  "Cardano",
		"polkadot": "Polkadot",
	}
	out := make([]models.MarketData, 0, len(engine.AssetCatalog))
	for _, asset := range engine.AssetCatalog {
		out = append(out, models.MarketData{
			ID:           asset.ID,
			Symbol:       asset.Symbol,
			Name:         names[asset.ID],
			CurrentPrice: asset.Price,
			LastUpdated:  now,
		})
	}
	return out
}
