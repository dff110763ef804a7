package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crowdlike/internal/config"
	cronrunner "crowdlike/internal/cron"
	"crowdlike/internal/engine"
	"crowdlike/internal/handler"
	"crowdlike/internal/logger"
	"crowdlike/internal/market"
	"crowdlike/internal/models"
	"crowdlike/internal/service"
	"crowdlike/internal/store"
)

func main() {
	cfgPath := os.Getenv("CL_CONFIG")
	if cfgPath == "" {
		cfgPath = "config/config.yaml"
	}

	envOnly := false
	if envOnlyRaw := os.Getenv("CL_ENV_ONLY"); envOnlyRaw != "" {
		envOnly = strings.EqualFold(envOnlyRaw, "true") || envOnlyRaw == "1"
	}

	cfg, err := config.Load(cfgPath, envOnly)
	if err != nil {
		panic(err)
	}

	logger, err := logger.New(cfg.Log)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	baseCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	marketClient := market.NewClient(&http.Client{Timeout: cfg.Market.Timeout}, cfg.Market, logger)

	user := demoUser(cfg.Session)
	sessionStore := store.New(user, cfg.Crowd.AvgTradesPerDay)

	seed := cfg.Session.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	factory := engine.NewFactory(rand.New(rand.NewSource(seed)))

	agentService := &service.AgentService{Store: sessionStore, Factory: factory, Logger: logger}
	agentService.Bootstrap(cfg.Session.UserAgents, cfg.Session.CrowdAgents)
	tradeService := &service.TradeService{Store: sessionStore, Market: marketClient, Logger: logger}
	metricsService := &service.MetricsService{Store: sessionStore, Market: marketClient, Logger: logger}

	if strings.EqualFold(cfg.App.Env, "dev") {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	(&handler.HealthHandler{Store: sessionStore}).Register(router)
	(&handler.AgentHandler{Service: agentService, Store: sessionStore}).Register(router)
	(&handler.TradeHandler{Service: tradeService}).Register(router)
	(&handler.MarketHandler{Client: marketClient}).Register(router)
	(&handler.LeaderboardHandler{Store: sessionStore}).Register(router)
	(&handler.PricingHandler{Service: agentService}).Register(router)

	var cronJobs *cronrunner.Runner
	if cfg.Cron.Enabled {
		cronJobs = cronrunner.New(logger, baseCtx)
		if _, err := cronJobs.Add("market_refresh", cfg.Cron.MarketRefresh, metricsService.Refresh); err != nil {
			logger.Fatal("cron add failed", zap.Error(err))
		}
		cronJobs.Start()
	}

	srv := &http.Server{
		Addr:    cfg.Server.HTTPAddr,
		Handler: router,
	}
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.Server.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	<-baseCtx.Done()
	logger.Info("shutting down")

	if cronJobs != nil {
		cronJobs.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", zap.Error(err))
	}
}

func demoUser(cfg config.SessionConfig) *models.User {
	return &models.User{
		ID:          "user_1",
		Name:        cfg.UserName,
		Email:       cfg.UserEmail,
		USDCBalance: decimal.NewFromFloat(cfg.UserBalance),
		CreatedAt:   time.Now().UTC(),
		Settings: models.UserSettings{
			MaxAgents:           cfg.MaxAgents,
			DefaultRiskLevel:    cfg.RiskLevel,
			MaxDeviationPercent: 30,
			Notifications:       true,
		},
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
