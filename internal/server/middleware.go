package server

import (
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"

	"github.com/joemerrillis/sniffr-staging-sub001/pkg/tenantctx"
)

const tenantHeader = "X-Tenant-ID"

// TenantMiddleware resolves the caller's tenant from the request header and
// stores it on the request context. Identity verification is upstream; the
// service trusts the gateway-injected header.
func TenantMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := strings.TrimSpace(c.GetHeader(tenantHeader))
		if raw != "" {
			if tenantID, err := snowflake.ParseString(raw); err == nil {
				ctx := tenantctx.WithTenantID(c.Request.Context(), tenantID)
				c.Request = c.Request.WithContext(ctx)
			}
		}
		c.Next()
	}
}

func requireTenant(c *gin.Context) (snowflake.ID, bool) {
	tenantID, ok := tenantctx.TenantIDFromContext(c.Request.Context())
	if !ok || tenantID == 0 {
		AbortWithError(c, ErrInvalidRequest)
		return 0, false
	}
	return tenantID, true
}

func pathID(c *gin.Context) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return 0, false
	}
	return id, true
}

func queryID(c *gin.Context, key string) (snowflake.ID, bool) {
	id, err := snowflake.ParseString(strings.TrimSpace(c.Query(key)))
	if err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return 0, false
	}
	return id, true
}
