package handler

import (
	appreport "github.com/atelie/backend/internal/application/report"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AnalyticsHandler handles derived financial view endpoints
type AnalyticsHandler struct {
	BaseHandler
	service *appreport.AnalyticsService
}

// NewAnalyticsHandler creates a new AnalyticsHandler
func NewAnalyticsHandler(service *appreport.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: service}
}

// Movements handles GET /analytics/movements
func (h *AnalyticsHandler) Movements(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	movements, err := h.service.Movements(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, movements)
}

// Balance handles GET /analytics/balance
func (h *AnalyticsHandler) Balance(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	balance, err := h.service.Balance(c.Request.Context(), ownerID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, balance)
}

// GoalSummary handles GET /analytics/goal?goal=5000
func (h *AnalyticsHandler) GoalSummary(c *gin.Context) {
	ownerID, err := getOwnerID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	goal := decimal.Zero
	if raw := c.Query("goal"); raw != "" {
		goal, err = decimal.NewFromString(raw)
		if err != nil {
			h.BadRequest(c, "Invalid goal value")
			return
		}
	}

	summary, err := h.service.GoalSummary(c.Request.Context(), ownerID, goal)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}
