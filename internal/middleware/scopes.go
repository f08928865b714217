package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/registrar-labs/course-registry-api/internal/models"
	appErrors "github.com/registrar-labs/course-registry-api/pkg/errors"
	"github.com/registrar-labs/course-registry-api/pkg/response"
)

// RequireScope gates a mutating route on a token scope set by JWT.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ContextClaimsKey)
		if !exists {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, ok := claimsValue.(*models.Claims)
		if !ok {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		if !claims.HasScope(scope) {
			response.Error(c, appErrors.ErrForbidden)
			c.Abort()
			return
		}

		c.Next()
	}
}
