package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdlike/internal/models"
	"crowdlike/internal/store"
)

type LeaderboardHandler struct {
	Store *store.Store
}

func (h *LeaderboardHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/leaderboards/:period", h.leaderboard)
	r.GET("/api/v1/metrics/crowd", h.crowd)
}

func (h *LeaderboardHandler) leaderboard(c *gin.Context) {
	period := models.Period(c.Param("period"))
	if !period.Valid() {
		Error(c, http.StatusBadRequest, "period must be daily, weekly, monthly or yearly", nil)
		return
	}
	entries := h.Store.LeaderboardSnapshot(period)
	Ok(c, entries, map[string]any{"total": len(entries), "period": string(period)})
}

func (h *LeaderboardHandler) crowd(c *gin.Context) {
	Ok(c, h.Store.MetricsSnapshot(), nil)
}
