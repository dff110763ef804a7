package handler

import (
	"github.com/gin-gonic/gin"

	"crowdlike/internal/market"
)

type MarketHandler struct {
	Client *market.Client
}

func (h *MarketHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/market", h.list)
}

func (h *MarketHandler) list(c *gin.Context) {
	rows := h.Client.Markets(c.Request.Context())
	Ok(c, rows, map[string]any{"total": len(rows)})
}
