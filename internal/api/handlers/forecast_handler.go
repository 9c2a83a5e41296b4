package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plantmetrics/backend-go/internal/api/middleware"
	"github.com/plantmetrics/backend-go/internal/service"
)

type ForecastHandler struct {
	service *service.ForecastService
}

func NewForecastHandler(service *service.ForecastService) *ForecastHandler {
	return &ForecastHandler{service: service}
}

// GetForecast returns the per-item demand forecast for the request tenant.
func (h *ForecastHandler) GetForecast(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	plan, err := h.service.GetDemandPlan(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute forecast", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":        plan.Items,
		"generated_at": plan.GeneratedAt,
	})
}

// GetDemandTrend returns the 6-month aggregate demand projection.
func (h *ForecastHandler) GetDemandTrend(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	plan, err := h.service.GetDemandPlan(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute demand trend", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"trend":        plan.Trend,
		"generated_at": plan.GeneratedAt,
	})
}

// ExportForecast renders the demand plan as CSV and uploads it to object
// storage.
func (h *ForecastHandler) ExportForecast(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	key, err := h.service.ExportDemandPlan(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to export demand plan", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": key})
}

// ListExports returns the tenant's previously exported demand plans.
func (h *ForecastHandler) ListExports(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	exports, err := h.service.ListDemandPlanExports(c.Request.Context(), tenantID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list exports", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"exports": exports})
}
