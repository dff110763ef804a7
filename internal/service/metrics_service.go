package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"crowdlike/internal/engine"
	"crowdlike/internal/market"
	"crowdlike/internal/store"
)

// MetricsService re-marks every portfolio from a fresh price snapshot and
// rebuilds the derived views. The cron runner drives it; mutations call
// Session.Recompute directly and do not need it.
type MetricsService struct {
	Store  *store.Store
	Market *market.Client
	Logger *zap.Logger
}

func (s *MetricsService) Refresh(ctx context.Context) {
	snapshot := s.Market.Snapshot(ctx)
	now := time.Now().UTC()
	_ = s.Store.Update(func(sess *store.Session) error {
		for _, a := range sess.All() {
			engine.Revalue(&a.Portfolio, snapshot, now)
		}
		sess.Recompute()
		return nil
	})
	if s.Logger != nil {
		s.Logger.Debug("portfolios revalued", zap.Int("assets", len(snapshot)))
	}
}
