package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"crowdlike/internal/models"
	"crowdlike/internal/service"
	"crowdlike/internal/store"
)

type AgentHandler struct {
	Service *service.AgentService
	Store   *store.Store
}

func (h *AgentHandler) Register(r *gin.Engine) {
	g := r.Group("/api/v1/agents")
	g.GET("", h.list)
	g.POST("", h.create)
	g.GET("/:id", h.get)
	g.POST("/:id/toggle", h.toggle)
	g.DELETE("/:id", h.remove)

	r.GET("/api/v1/user", h.user)
}

func (h *AgentHandler) list(c *gin.Context) {
	agents := h.Store.AgentsSnapshot()
	Ok(c, agents, map[string]any{"total": len(agents)})
}

func (h *AgentHandler) get(c *gin.Context) {
	agent, err := h.Store.AgentSnapshot(c.Param("id"))
	if err != nil {
		EngineError(c, err)
		return
	}
	Ok(c, agent, nil)
}

type createAgentRequest struct {
	Name           string  `json:"name" binding:"required"`
	Strategy       string  `json:"strategy" binding:"required"`
	Riskness       int     `json:"riskness"`
	InitialBalance float64 `json:"initialBalance" binding:"required"`
}

func (h *AgentHandler) create(c *gin.Context) {
	var req createAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}
	strategy := models.StrategyType(strings.ToLower(strings.TrimSpace(req.Strategy)))
	if !strategy.Valid() {
		Error(c, http.StatusBadRequest, "unknown strategy", nil)
		return
	}
	if req.Riskness < 0 || req.Riskness > 100 {
		Error(c, http.StatusBadRequest, "riskness must be within 0-100", nil)
		return
	}
	agent, err := h.Service.Create(service.CreateAgentParams{
		Name:           strings.TrimSpace(req.Name),
		Strategy:       strategy,
		Riskness:       req.Riskness,
		InitialBalance: decimal.NewFromFloat(req.InitialBalance),
	})
	if err != nil {
		EngineError(c, err)
		return
	}
	Ok(c, agent, nil)
}

func (h *AgentHandler) toggle(c *gin.Context) {
	agent, err := h.Service.Toggle(c.Param("id"))
	if err != nil {
		EngineError(c, err)
		return
	}
	Ok(c, agent, nil)
}

func (h *AgentHandler) remove(c *gin.Context) {
	if err := h.Service.Delete(c.Param("id")); err != nil {
		EngineError(c, err)
		return
	}
	Ok(c, gin.H{"deleted": true}, nil)
}

func (h *AgentHandler) user(c *gin.Context) {
	u := h.Store.UserSnapshot()
	Ok(c, u, nil)
}
