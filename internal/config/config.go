package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App     AppConfig     `mapstructure:"app"`
	Server  ServerConfig  `mapstructure:"server"`
	Log     LogConfig     `mapstructure:"log"`
	Market  MarketConfig  `mapstructure:"market"`
	Session SessionConfig `mapstructure:"session"`
	Crowd   CrowdConfig   `mapstructure:"crowd"`
	Cron    CronConfig    `mapstructure:"cron"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

// MarketConfig drives the price feed client. Assets is the coin-id set
// polled from the upstream markets endpoint.
type MarketConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	CacheTTL   time.Duration `mapstructure:"cache_ttl"`
	VsCurrency string        `mapstructure:"vs_currency"`
	Assets     []string      `mapstructure:"assets"`
}

// SessionConfig shapes the demo session built at startup. Seed 0 means
// time-seeded randomness; any other value makes the generated population
// reproducible.
type SessionConfig struct {
	UserName    string  `mapstructure:"user_name"`
	UserEmail   string  `mapstructure:"user_email"`
	UserBalance float64 `mapstructure:"user_balance"`
	MaxAgents   int     `mapstructure:"max_agents"`
	RiskLevel   int     `mapstructure:"risk_level"`
	UserAgents  int     `mapstructure:"user_agents"`
	CrowdAgents int     `mapstructure:"crowd_agents"`
	Seed        int64   `mapstructure:"seed"`
}

type CrowdConfig struct {
	// AvgTradesPerDay is reported as-is in crowd metrics; the demo design
	// does not derive it from trade history.
	AvgTradesPerDay float64 `mapstructure:"avg_trades_per_day"`
}

type CronConfig struct {
	Enabled       bool   `mapstructure:"enabled"`
	MarketRefresh string `mapstructure:"market_refresh"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("CL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("market.base_url", "https://api.coingecko.com/api/v3")
	v.SetDefault("market.timeout", "15s")
	v.SetDefault("market.cache_ttl", "60s")
	v.SetDefault("market.vs_currency", "usd")
	v.SetDefault("market.assets", []string{
		"bitcoin", "ethereum", "solana", "cardano",
		"polkadot", "binancecoin", "ripple", "dogecoin",
	})
	v.SetDefault("session.user_name", "Miguel")
	v.SetDefault("session.user_email", "miguel@crowdlike.app")
	v.SetDefault("session.user_balance", 10000)
	v.SetDefault("session.max_agents", 10)
	v.SetDefault("session.risk_level", 50)
	v.SetDefault("session.user_agents", 4)
	v.SetDefault("session.crowd_agents", 96)
	v.SetDefault("session.seed", 0)
	v.SetDefault("crowd.avg_trades_per_day", 8.5)
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.market_refresh", "@every 1m")

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
