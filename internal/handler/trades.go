package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"crowdlike/internal/models"
	"crowdlike/internal/service"
)

type TradeHandler struct {
	Service *service.TradeService
}

func (h *TradeHandler) Register(r *gin.Engine) {
	r.POST("/api/v1/trades", h.create)
}

type tradeRequest struct {
	AgentID  string  `json:"agentId" binding:"required"`
	Asset    string  `json:"asset" binding:"required"`
	Side     string  `json:"side" binding:"required"`
	Amount   float64 `json:"amount" binding:"required"`
	Reason   string  `json:"reason"`
	Approved *bool   `json:"approved"`
}

func (h *TradeHandler) create(c *gin.Context) {
	var req tradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	side := models.TradeSide(strings.ToLower(strings.TrimSpace(req.Side)))
	if !side.Valid() {
		Error(c, http.StatusBadRequest, "side must be buy or sell", nil)
		return
	}
	approved := true
	if req.Approved != nil {
		approved = *req.Approved
	}
	trade, err := h.Service.Execute(c.Request.Context(), service.TradeParams{
		AgentID:  req.AgentID,
		Asset:    strings.TrimSpace(req.Asset),
		Side:     side,
		Amount:   decimal.NewFromFloat(req.Amount),
		Reason:   strings.TrimSpace(req.Reason),
		Approved: approved,
	})
	if err != nil {
		EngineError(c, err)
		return
	}
	Ok(c, trade, nil)
}
