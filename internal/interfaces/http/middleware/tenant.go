package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/opsuite/backend/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Context keys for tenant and operator identification.
const (
	TenantIDKey       = "tenant_id"
	OperatorIDKey     = "operator_id"
	TenantHeaderKey   = "X-Tenant-ID"
	OperatorHeaderKey = "X-Operator-ID"
)

// TenantValidator checks that a tenant exists and is active before requests
// reach the handlers.
type TenantValidator interface {
	ValidateTenant(tenantID uuid.UUID) error
}

// TenantMiddlewareConfig holds configuration for tenant middleware
type TenantMiddlewareConfig struct {
	// SkipPaths are paths that don't require tenant context (e.g. health check)
	SkipPaths []string
	// Validator optionally checks the tenant against the store
	Validator TenantValidator
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultTenantConfig returns default tenant middleware configuration
func DefaultTenantConfig() TenantMiddlewareConfig {
	return TenantMiddlewareConfig{
		SkipPaths: []string{"/health", "/healthz", "/ready", "/api/v1/health", "/api/v1/tenants"},
	}
}

// TenantMiddleware extracts the tenant from the X-Tenant-ID header
func TenantMiddleware() gin.HandlerFunc {
	return TenantMiddlewareWithConfig(DefaultTenantConfig())
}

// TenantMiddlewareWithConfig returns tenant middleware with custom configuration
func TenantMiddlewareWithConfig(cfg TenantMiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		header := c.GetHeader(TenantHeaderKey)
		if header == "" {
			respondUnauthorized(c, "Tenant identification required")
			return
		}

		tenantID, err := uuid.Parse(header)
		if err != nil {
			respondUnauthorized(c, "Invalid tenant ID format")
			return
		}

		if cfg.Validator != nil {
			if err := cfg.Validator.ValidateTenant(tenantID); err != nil {
				log := cfg.Logger
				if log == nil {
					log = logger.FromContext(c.Request.Context())
				}
				log.Warn("Tenant validation failed",
					zap.String("tenant_id", tenantID.String()),
					zap.Error(err),
				)
				respondUnauthorized(c, "Invalid or inactive tenant")
				return
			}
		}

		c.Set(TenantIDKey, tenantID)
		if operator := c.GetHeader(OperatorHeaderKey); operator != "" {
			if operatorID, err := uuid.Parse(operator); err == nil {
				c.Set(OperatorIDKey, operatorID)
			}
		}

		// Propagate into the request context so service logs carry the tenant.
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithTenantID(ctx, log, tenantID.String())
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// respondUnauthorized sends an unauthorized response
func respondUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}

// GetTenantID retrieves the tenant ID from gin.Context
func GetTenantID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(TenantIDKey)
	if !exists {
		return uuid.Nil, false
	}
	tenantID, ok := value.(uuid.UUID)
	return tenantID, ok
}

// GetOperatorID retrieves the operator ID from gin.Context
func GetOperatorID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(OperatorIDKey)
	if !exists {
		return uuid.Nil, false
	}
	operatorID, ok := value.(uuid.UUID)
	return operatorID, ok
}
