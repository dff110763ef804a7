package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  env: dev\n")

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.HTTPAddr != ":8080" {
		t.Fatalf("http_addr=%q", cfg.Server.HTTPAddr)
	}
	if cfg.Market.CacheTTL != 60*time.Second {
		t.Fatalf("cache_ttl=%v", cfg.Market.CacheTTL)
	}
	if len(cfg.Market.Assets) != 8 {
		t.Fatalf("assets=%d want=8", len(cfg.Market.Assets))
	}
	if cfg.Session.UserAgents != 4 || cfg.Session.CrowdAgents != 96 {
		t.Fatalf("session agents=%d,%d want=4,96", cfg.Session.UserAgents, cfg.Session.CrowdAgents)
	}
	if cfg.Session.Seed != 0 {
		t.Fatalf("seed=%d want=0", cfg.Session.Seed)
	}
	if cfg.Crowd.AvgTradesPerDay != 8.5 {
		t.Fatalf("avg_trades_per_day=%v", cfg.Crowd.AvgTradesPerDay)
	}
	if !cfg.Cron.Enabled || cfg.Cron.MarketRefresh != "@every 1m" {
		t.Fatalf("cron=%+v", cfg.Cron)
	}
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":9090"
market:
  cache_ttl: 5s
  assets:
    - bitcoin
session:
  seed: 42
  crowd_agents: 10
`)

	cfg, err := Load(path, false)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.HTTPAddr != ":9090" {
		t.Fatalf("http_addr=%q", cfg.Server.HTTPAddr)
	}
	if cfg.Market.CacheTTL != 5*time.Second {
		t.Fatalf("cache_ttl=%v", cfg.Market.CacheTTL)
	}
	if len(cfg.Market.Assets) != 1 || cfg.Market.Assets[0] != "bitcoin" {
		t.Fatalf("assets=%v", cfg.Market.Assets)
	}
	if cfg.Session.Seed != 42 || cfg.Session.CrowdAgents != 10 {
		t.Fatalf("session=%+v", cfg.Session)
	}
	// untouched keys keep defaults
	if cfg.Session.UserAgents != 4 {
		t.Fatalf("user_agents=%d want=4", cfg.Session.UserAgents)
	}
}

func TestLoad_EnvOnly(t *testing.T) {
	t.Setenv("CL_SERVER_HTTP_ADDR", ":7070")

	cfg, err := Load("does-not-exist.yaml", true)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.HTTPAddr != ":7070" {
		t.Fatalf("http_addr=%q want=:7070", cfg.Server.HTTPAddr)
	}
	if cfg.Session.MaxAgents != 10 {
		t.Fatalf("max_agents=%d want=10", cfg.Session.MaxAgents)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("does-not-exist.yaml", false); err == nil {
		t.Fatalf("expected error for missing config file")
	}
}
