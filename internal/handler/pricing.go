package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"crowdlike/internal/engine"
	"crowdlike/internal/service"
)

type PricingHandler struct {
	Service *service.AgentService
}

func (h *PricingHandler) Register(r *gin.Engine) {
	r.GET("/api/v1/pricing", h.quote)
}

// quote prices an arbitrary fleet when ?agents= and ?risk= are given, and
// the user's current fleet otherwise.
func (h *PricingHandler) quote(c *gin.Context) {
	agentsRaw := strings.TrimSpace(c.Query("agents"))
	riskRaw := strings.TrimSpace(c.Query("risk"))
	if agentsRaw == "" && riskRaw == "" {
		Ok(c, h.Service.Pricing(), nil)
		return
	}
	agents, err := strconv.Atoi(agentsRaw)
	if err != nil || agents < 0 {
		Error(c, http.StatusBadRequest, "agents must be a non-negative integer", nil)
		return
	}
	risk, err := strconv.Atoi(riskRaw)
	if err != nil || risk < 0 || risk > 100 {
		Error(c, http.StatusBadRequest, "risk must be within 0-100", nil)
		return
	}
	Ok(c, engine.PricingQuote(agents, risk), nil)
}
