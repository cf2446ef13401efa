package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/cjex-salaj/site-api/internal/models"
	"github.com/cjex-salaj/site-api/internal/service"
	appErrors "github.com/cjex-salaj/site-api/pkg/errors"
	"github.com/cjex-salaj/site-api/pkg/response"
)

// ContextSessionKey is the gin context key storing session claims.
const ContextSessionKey = "currentSession"

// Session protects dashboard routes by requiring a valid session cookie.
func Session(authService *service.AuthService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err != nil || token == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := authService.ValidateToken(token)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextSessionKey, claims)
		c.Next()
	}
}

// SessionFromContext returns the claims stored by Session, if any.
func SessionFromContext(c *gin.Context) *models.SessionClaims {
	if v, exists := c.Get(ContextSessionKey); exists {
		if claims, ok := v.(*models.SessionClaims); ok {
			return claims
		}
	}
	return nil
}
