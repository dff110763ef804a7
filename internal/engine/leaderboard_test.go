package engine

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"

	"crowdlike/internal/models"
)

func rankedAgent(name string, profit float64, streaks int, status models.AgentStatus) *models.Agent {
	return &models.Agent{
		BotID:  "BOT" + name,
		Name:   name,
		Status: status,
		Performance: models.AgentPerformance{
			TotalProfit: decimal.NewFromFloat(profit),
			Streaks:     streaks,
		},
	}
}

func TestRank_OrderAndScore(t *testing.T) {
	agents := []*models.Agent{
		rankedAgent("A", 10, 3, models.StatusActive),
		rankedAgent("B", 25.5, 0, models.StatusActive),
		rankedAgent("C", -5, 9, models.StatusActive),
	}
	entries := Rank(agents, models.PeriodDaily)

	if len(entries) != 3 {
		t.Fatalf("entries=%d want=3", len(entries))
	}
	wantOrder := []string{"B", "A", "C"}
	for i, name := range wantOrder {
		if entries[i].AgentName != name {
			t.Fatalf("rank %d is %s want %s", i+1, entries[i].AgentName, name)
		}
		if entries[i].Rank != i+1 {
			t.Fatalf("rank field=%d want=%d", entries[i].Rank, i+1)
		}
		if entries[i].Period != models.PeriodDaily {
			t.Fatalf("period=%s", entries[i].Period)
		}
	}
	// 25.5 * 100 + 0
	if !entries[0].Score.Equal(decimal.NewFromInt(2550)) {
		t.Fatalf("score=%s want=2550", entries[0].Score)
	}
	// -5 * 100 + 9
	if !entries[2].Score.Equal(decimal.NewFromInt(-491)) {
		t.Fatalf("score=%s want=-491", entries[2].Score)
	}
}

func TestRank_ProfitRoundedBeforeScoring(t *testing.T) {
	agents := []*models.Agent{rankedAgent("A", 10.007, 1, models.StatusActive)}
	entries := Rank(agents, models.PeriodWeekly)
	// round(10.007, 2)=10.01, *100=1001, +1
	if !entries[0].Score.Equal(decimal.NewFromInt(1002)) {
		t.Fatalf("score=%s want=1002", entries[0].Score)
	}
	if !entries[0].Profit.Equal(decimal.NewFromFloat(10.01)) {
		t.Fatalf("profit=%s want=10.01", entries[0].Profit)
	}
}

func TestRank_TiesStableByInputOrder(t *testing.T) {
	agents := []*models.Agent{
		rankedAgent("A", 10, 0, models.StatusActive),
		rankedAgent("B", 10, 0, models.StatusActive),
		rankedAgent("C", 5, 0, models.StatusActive),
	}
	entries := Rank(agents, models.PeriodMonthly)
	wantOrder := []string{"A", "B", "C"}
	for i, name := range wantOrder {
		if entries[i].AgentName != name {
			t.Fatalf("rank %d is %s want %s", i+1, entries[i].AgentName, name)
		}
	}
}

func TestRank_FiltersInactive(t *testing.T) {
	agents := []*models.Agent{
		rankedAgent("A", 100, 0, models.StatusPaused),
		rankedAgent("B", 1, 0, models.StatusActive),
		rankedAgent("C", 100, 0, models.StatusExited),
	}
	entries := Rank(agents, models.PeriodYearly)
	if len(entries) != 1 || entries[0].AgentName != "B" {
		t.Fatalf("entries=%+v want only B", entries)
	}
}

func TestRank_Truncated(t *testing.T) {
	var agents []*models.Agent
	for i := 0; i < LeaderboardSize+20; i++ {
		agents = append(agents, rankedAgent(fmt.Sprintf("A%d", i), float64(i), 0, models.StatusActive))
	}
	entries := Rank(agents, models.PeriodDaily)
	if len(entries) != LeaderboardSize {
		t.Fatalf("entries=%d want=%d", len(entries), LeaderboardSize)
	}
	if entries[0].AgentName != fmt.Sprintf("A%d", LeaderboardSize+19) {
		t.Fatalf("top entry=%s", entries[0].AgentName)
	}
	if entries[len(entries)-1].Rank != LeaderboardSize {
		t.Fatalf("last rank=%d want=%d", entries[len(entries)-1].Rank, LeaderboardSize)
	}
}

func TestRank_Empty(t *testing.T) {
	if entries := Rank(nil, models.PeriodDaily); len(entries) != 0 {
		t.Fatalf("entries=%d want=0", len(entries))
	}
}
