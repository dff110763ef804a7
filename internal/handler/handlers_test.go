package handler

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"crowdlike/internal/engine"
	"crowdlike/internal/models"
	"crowdlike/internal/service"
	"crowdlike/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testRouter(t *testing.T, bootstrap bool) (*gin.Engine, *store.Store) {
	t.Helper()
	st := store.New(&models.User{
		ID:          "user_1",
		Name:        "Test",
		USDCBalance: decimal.NewFromInt(10000),
		Settings:    models.UserSettings{MaxAgents: 10, DefaultRiskLevel: 50},
	}, 8.5)
	agentService := &service.AgentService{
		Store:   st,
		Factory: engine.NewFactory(rand.New(rand.NewSource(1))),
	}
	if bootstrap {
		agentService.Bootstrap(2, 8)
	}

	r := gin.New()
	(&HealthHandler{Store: st}).Register(r)
	(&AgentHandler{Service: agentService, Store: st}).Register(r)
	(&LeaderboardHandler{Store: st}).Register(r)
	(&PricingHandler{Service: agentService}).Register(r)
	return r, st
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, apiResponse) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response %q: %v", w.Body.String(), err)
		}
	}
	return w, resp
}

func TestHealthz(t *testing.T) {
	r, _ := testRouter(t, false)
	w, _ := doJSON(t, r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}
}

func TestReadyz(t *testing.T) {
	r, _ := testRouter(t, false)
	w, _ := doJSON(t, r, http.MethodGet, "/readyz", nil)
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status=%d want=503 before bootstrap", w.Code)
	}

	r, _ = testRouter(t, true)
	w, _ = doJSON(t, r, http.MethodGet, "/readyz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200 after bootstrap", w.Code)
	}
}

func TestListAgents(t *testing.T) {
	r, _ := testRouter(t, true)
	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/agents", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}
	if resp.Meta["total"] != float64(2) {
		t.Fatalf("meta.total=%v want=2", resp.Meta["total"])
	}
}

func TestCreateAgent(t *testing.T) {
	r, st := testRouter(t, false)

	w, resp := doJSON(t, r, http.MethodPost, "/api/v1/agents", gin.H{
		"name":           "Handler Agent",
		"strategy":       "Balanced",
		"riskness":       30,
		"initialBalance": 1500,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	data, _ := resp.Data.(map[string]any)
	if data["name"] != "Handler Agent" || data["strategy"] != "balanced" {
		t.Fatalf("data=%v", data)
	}
	user := st.UserSnapshot()
	if !user.USDCBalance.Equal(decimal.NewFromInt(8500)) {
		t.Fatalf("user balance=%s want=8500", user.USDCBalance)
	}
}

func TestCreateAgent_Validation(t *testing.T) {
	r, _ := testRouter(t, false)

	tests := []struct {
		name string
		body gin.H
	}{
		{"missing name", gin.H{"strategy": "hodl", "initialBalance": 100}},
		{"unknown strategy", gin.H{"name": "X", "strategy": "yolo", "initialBalance": 100}},
		{"riskness out of range", gin.H{"name": "X", "strategy": "hodl", "riskness": 150, "initialBalance": 100}},
		{"missing balance", gin.H{"name": "X", "strategy": "hodl"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := doJSON(t, r, http.MethodPost, "/api/v1/agents", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("status=%d want=400", w.Code)
			}
		})
	}
}

func TestCreateAgent_InsufficientBalance(t *testing.T) {
	r, _ := testRouter(t, false)
	w, _ := doJSON(t, r, http.MethodPost, "/api/v1/agents", gin.H{
		"name":           "X",
		"strategy":       "hodl",
		"initialBalance": 99999,
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d want=422", w.Code)
	}
}

func TestGetAgent_NotFound(t *testing.T) {
	r, _ := testRouter(t, true)
	w, _ := doJSON(t, r, http.MethodGet, "/api/v1/agents/missing", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d want=404", w.Code)
	}
}

func TestDeleteAgent(t *testing.T) {
	r, st := testRouter(t, true)
	agents := st.AgentsSnapshot()

	w, _ := doJSON(t, r, http.MethodDelete, "/api/v1/agents/"+agents[0].ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}
	if count, _ := st.AgentCounts(); count != 1 {
		t.Fatalf("agents=%d want=1", count)
	}
}

func TestLeaderboard(t *testing.T) {
	r, _ := testRouter(t, true)

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/leaderboards/daily", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}
	if resp.Meta["period"] != "daily" {
		t.Fatalf("meta.period=%v", resp.Meta["period"])
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/leaderboards/hourly", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400 for invalid period", w.Code)
	}
}

func TestCrowdMetrics(t *testing.T) {
	r, _ := testRouter(t, true)
	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/metrics/crowd", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}
	data, _ := resp.Data.(map[string]any)
	if data["avgTradesPerDay"] != 8.5 {
		t.Fatalf("avgTradesPerDay=%v want=8.5", data["avgTradesPerDay"])
	}
}

func TestPricing(t *testing.T) {
	r, _ := testRouter(t, true)

	w, resp := doJSON(t, r, http.MethodGet, "/api/v1/pricing", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}
	data, _ := resp.Data.(map[string]any)
	// 2 agents at default risk 50: 2^2 * 0.5
	if data["dailyPrice"] != float64(2) {
		t.Fatalf("dailyPrice=%v want=2", data["dailyPrice"])
	}

	w, resp = doJSON(t, r, http.MethodGet, "/api/v1/pricing?agents=3&risk=50", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d want=200", w.Code)
	}
	data, _ = resp.Data.(map[string]any)
	if data["dailyPrice"] != 4.5 {
		t.Fatalf("dailyPrice=%v want=4.5", data["dailyPrice"])
	}

	w, _ = doJSON(t, r, http.MethodGet, "/api/v1/pricing?agents=-1&risk=50", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status=%d want=400", w.Code)
	}
}

func TestTradeRequest_Validation(t *testing.T) {
	r := gin.New()
	(&TradeHandler{Service: &service.TradeService{}}).Register(r)

	// Missing fields and bad sides fail binding before the service runs.
	tests := []gin.H{
		{"asset": "bitcoin", "side": "buy", "amount": 1},
		{"agentId": "a", "side": "buy", "amount": 1},
		{"agentId": "a", "asset": "bitcoin", "side": "hold", "amount": 1},
		{"agentId": "a", "asset": "bitcoin", "side": "buy"},
	}
	for _, body := range tests {
		w, _ := doJSON(t, r, http.MethodPost, "/api/v1/trades", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("body=%v status=%d want=400", body, w.Code)
		}
	}
}
