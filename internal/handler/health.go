package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"crowdlike/internal/store"
)

type HealthHandler struct {
	Store *store.Store
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET("/healthz", h.health)
	r.GET("/readyz", h.ready)
}

func (h *HealthHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthHandler) ready(c *gin.Context) {
	if h.Store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "session_missing"})
		return
	}
	users, crowd := h.Store.AgentCounts()
	if users+crowd == 0 {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "bootstrapping"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}
