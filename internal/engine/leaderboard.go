package engine

import (
	"sort"

	"crowdlike/internal/models"
)

// LeaderboardSize caps the ranking output.
const LeaderboardSize = 100

// Rank scores the active agents of a snapshot and returns them ordered
// best-first with ranks 1..N, truncated to LeaderboardSize.
//
// Score = round(totalProfit, 2) * 100 + streaks. The formula is kept
// exactly for compatibility with the upstream leaderboard. Ties are stable
// by input order; no extra tiebreak is introduced.
func Rank(agents []*models.Agent, period models.Period) []models.LeaderboardEntry {
	entries := make([]models.LeaderboardEntry, 0, len(agents))
	for _, a := range agents {
		if a.Status != models.StatusActive {
			continue
		}
		profit := a.Performance.TotalProfit.Round(2)
		score := profit.Mul(hundred).Add(decimal64(a.Performance.Streaks))
		entries = append(entries, models.LeaderboardEntry{
			BotID:         a.BotID,
			AgentName:     a.Name,
			Score:         score,
			Profit:        profit,
			ProfitPercent: a.Performance.TotalProfitPercent,
			Streaks:       a.Performance.Streaks,
			TotalTrades:   a.Performance.TotalTrades,
			WinRate:       a.Performance.WinRate,
			Period:        period,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score.GreaterThan(entries[j].Score)
	})

	if len(entries) > LeaderboardSize {
		entries = entries[:LeaderboardSize]
	}
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}
