// Package market supplies asset quotes to the simulation. It polls a
// CoinGecko-compatible markets endpoint, caches the response for a short
// TTL, and degrades to a static demo catalog when the upstream is
// unreachable — callers always get a usable snapshot, never an error.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"crowdlike/internal/config"
	"crowdlike/internal/models"
)

type Client struct {
	http   *http.Client
	cfg    config.MarketConfig
	logger *zap.Logger

	mu       sync.Mutex
	cached   []models.MarketData
	cachedAt time.Time
}

func NewClient(httpClient *http.Client, cfg config.MarketConfig, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	return &Client{http: httpClient, cfg: cfg, logger: logger}
}

// Markets returns the current quote list, serving the cache while it is
// fresh and falling back to the demo catalog on upstream failure.
func (c *Client) Markets(ctx context.Context) []models.MarketData {
	c.mu.Lock()
	if len(c.cached) > 0 && time.Since(c.cachedAt) <= c.cfg.CacheTTL {
		out := append([]models.MarketData(nil), c.cached...)
		c.mu.Unlock()
		return out
	}
	c.mu.Unlock()

	rows, err := c.fetch(ctx)
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("market fetch failed, serving fallback", zap.Error(err))
		}
		c.mu.Lock()
		// A stale cache still beats the static fallback.
		if len(c.cached) > 0 {
			out := append([]models.MarketData(nil), c.cached...)
			c.mu.Unlock()
			return out
		}
		c.mu.Unlock()
		return FallbackMarkets(time.Now().UTC())
	}

	c.mu.Lock()
	c.cached = rows
	c.cachedAt = time.Now()
	out := append([]models.MarketData(nil), rows...)
	c.mu.Unlock()
	return out
}

// Snapshot re-keys the current quote list by asset id for the executor.
func (c *Client) Snapshot(ctx context.Context) models.PriceSnapshot {
	rows := c.Markets(ctx)
	snap := make(models.PriceSnapshot, len(rows))
	for _, r := range rows {
		snap[r.ID] = r
	}
	return snap
}

// coinRow mirrors the subset of the upstream /coins/markets response the
// service consumes. Prices unmarshal straight into decimals; nullable
// fields are pointers.
type coinRow struct {
	ID                    string           `json:"id"`
	Symbol                string           `json:"symbol"`
	Name                  string           `json:"name"`
	CurrentPrice          *decimal.Decimal `json:"current_price"`
	PriceChange24h        *decimal.Decimal `json:"price_change_24h"`
	PriceChangePercent24h *float64         `json:"price_change_percentage_24h"`
	MarketCap             *decimal.Decimal `json:"market_cap"`
	TotalVolume           *decimal.Decimal `json:"total_volume"`
	High24h               *decimal.Decimal `json:"high_24h"`
	Low24h                *decimal.Decimal `json:"low_24h"`
	Image                 string           `json:"image"`
}

func (c *Client) fetch(ctx context.Context) ([]models.MarketData, error) {
	params := url.Values{}
	params.Set("vs_currency", c.cfg.VsCurrency)
	params.Set("ids", strings.Join(c.cfg.Assets, ","))
	params.Set("order", "market_cap_desc")
	params.Set("per_page", fmt.Sprintf("%d", len(c.cfg.Assets)))
	params.Set("page", "1")
	params.Set("sparkline", "false")
	params.Set("price_change_percentage", "24h")

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/coins/markets?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market upstream status %d", resp.StatusCode)
	}

	var rows []coinRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]models.MarketData, 0, len(rows))
	for _, row := range rows {
		out = append(out, models.MarketData{
			ID:                    row.ID,
			Symbol:                strings.ToUpper(row.Symbol),
			Name:                  row.Name,
			CurrentPrice:          deref(row.CurrentPrice),
			PriceChange24h:        deref(row.PriceChange24h),
			PriceChangePercent24h: derefFloat(row.PriceChangePercent24h),
			MarketCap:             deref(row.MarketCap),
			Volume24h:             deref(row.TotalVolume),
			High24h:               deref(row.High24h),
			Low24h:                deref(row.Low24h),
			LastUpdated:           now,
			Image:                 row.Image,
		})
	}
	return out, nil
}

func deref(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
