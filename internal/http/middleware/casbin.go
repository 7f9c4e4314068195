package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/you/bookstore/domain"
	"github.com/you/bookstore/internal/config"
	"go.uber.org/zap"
)

// CasbinMW authorizes requests by role, falling back to role_owner when the caller owns the resource
type CasbinMW struct {
	enforcer domain.CasbinEnforcer
	rules    []config.OwnershipRule
	logger   *zap.Logger
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer domain.CasbinEnforcer, rules []config.OwnershipRule, logger *zap.Logger) *CasbinMW {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CasbinMW{enforcer: enforcer, rules: rules, logger: logger}
}

// Enforce returns the casbin authorization middleware. It must run after WithJWT.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenUserID := c.GetString(ContextUserID)
		primaryRole := c.GetString(ContextUserRole)
		if tokenUserID == "" || primaryRole == "" {
			abort(c, http.StatusUnauthorized, "User ID or role not found in token")
			return
		}

		headerUserID := c.GetHeader("x-user-id")
		if headerUserID != "" && headerUserID != tokenUserID {
			abort(c, http.StatusForbidden, "Header x-user-id does not match token user ID")
			return
		}

		path := c.Request.URL.Path
		method := c.Request.Method

		allowed, err := mw.enforcer.Enforce("role_"+primaryRole, path, method)
		if err != nil {
			mw.logger.Error("authorization check failed", zap.String("path", path), zap.Error(err))
			abort(c, http.StatusInternalServerError, "Authorization check failed")
			return
		}

		if !allowed && mw.isOwner(c, tokenUserID) {
			allowed, err = mw.enforcer.Enforce("role_owner", path, method)
			if err != nil {
				mw.logger.Error("owner authorization check failed", zap.String("path", path), zap.Error(err))
				abort(c, http.StatusInternalServerError, "Authorization check failed")
				return
			}
		}

		if !allowed {
			abort(c, http.StatusForbidden, "Access Denied")
			return
		}

		c.Next()
	}
}

// isOwner matches the route pattern, not the concrete path
func (mw *CasbinMW) isOwner(c *gin.Context, tokenUserID string) bool {
	for _, rule := range mw.rules {
		if rule.Path != c.FullPath() || rule.Method != c.Request.Method {
			continue
		}
		if id := extractUserID(c, rule.Source, rule.ParamName); id != "" && id == tokenUserID {
			return true
		}
	}
	return false
}
