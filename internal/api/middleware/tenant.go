package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// TenantKey is the context key carrying the resolved tenant identifier.
const TenantKey = "tenant_id"

// TenantHeader is the request header identifying the tenant.
const TenantHeader = "X-Tenant-ID"

// Tenant extracts the tenant identifier from the request header and aborts
// with 400 when it is missing. Every metrics and forecast route is scoped to
// one tenant.
func Tenant() gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := strings.TrimSpace(c.GetHeader(TenantHeader))
		if tenantID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing " + TenantHeader + " header"})
			return
		}

		c.Set(TenantKey, tenantID)
		c.Next()
	}
}

// TenantID returns the tenant identifier set by the Tenant middleware.
func TenantID(c *gin.Context) string {
	return c.GetString(TenantKey)
}
