package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopdash/backend/internal/domain/identity"
	"github.com/shopdash/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// PermissionConfig holds configuration for permission middleware
type PermissionConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when permission is denied (optional)
	OnDenied func(c *gin.Context, requiredPerms []string)
}

// RequirePermissions creates middleware that requires every listed permission
func RequirePermissions(permissions ...identity.Permission) gin.HandlerFunc {
	return RequirePermissionsWithConfig(PermissionConfig{}, permissions...)
}

// RequirePermissionsWithConfig creates middleware that requires every listed permission with custom config
func RequirePermissionsWithConfig(cfg PermissionConfig, permissions ...identity.Permission) gin.HandlerFunc {
	required := identity.Codes(permissions...)
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			handlePermissionDenied(c, cfg, required, "No authenticated principal found")
			return
		}

		if !principal.Has(permissions...) {
			handlePermissionDenied(c, cfg, required, "User lacks one or more required permissions")
			return
		}

		if cfg.Logger != nil {
			cfg.Logger.Debug("Permission check passed",
				zap.String("user_id", principal.UserID.String()),
				zap.Strings("required_all", required),
			)
		}

		c.Next()
	}
}

// handlePermissionDenied handles permission denied scenarios
func handlePermissionDenied(c *gin.Context, cfg PermissionConfig, requiredPerms []string, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, requiredPerms)
		return
	}

	if cfg.Logger != nil {
		principal, _ := GetPrincipal(c)
		cfg.Logger.Warn("Permission denied",
			zap.String("reason", reason),
			zap.String("user_id", principal.UserID.String()),
			zap.Strings("required_permissions", requiredPerms),
			zap.Strings("user_permissions", principal.Permissions),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponseWithRequestID(
		dto.ErrCodeForbidden,
		"Access denied: insufficient permissions",
		c.GetString(RequestIDKey),
	))
}
