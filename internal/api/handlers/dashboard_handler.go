package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/plantmetrics/backend-go/internal/api/middleware"
	"github.com/plantmetrics/backend-go/internal/domain"
	"github.com/plantmetrics/backend-go/internal/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// GetSummary returns the resolved KPI dashboard for the request tenant. An
// optional industry query parameter overrides the tenant's configured
// vertical; unknown values degrade to the default profile.
func (h *DashboardHandler) GetSummary(c *gin.Context) {
	tenantID := middleware.TenantID(c)
	industry := strings.TrimSpace(c.Query("industry"))

	summary, err := h.service.GetSummary(c.Request.Context(), tenantID, industry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve dashboard", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, summary)
}

// UpdateSnapshot upserts the tenant's raw metric pairs and invalidates any
// cached summaries.
func (h *DashboardHandler) UpdateSnapshot(c *gin.Context) {
	tenantID := middleware.TenantID(c)

	var pairs domain.MetricSnapshot
	if err := c.ShouldBindJSON(&pairs); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid snapshot payload", "details": err.Error()})
		return
	}
	if len(pairs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "snapshot payload is empty"})
		return
	}

	if err := h.service.UpdateSnapshot(c.Request.Context(), tenantID, pairs); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update snapshot", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": len(pairs)})
}
