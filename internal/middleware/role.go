package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/franciscosanchezn/pizzeria-backoffice/internal/models"
)

// RequireRole lets the request through only if the caller holds one of the given roles.
// It must run after JWTAuth.
func RequireRole(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetString(ContextUserID)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				models.NewAPIError(models.ErrUnauthorized, "caller not authenticated"))
			return
		}

		role := c.GetString(ContextUserRole)
		for _, want := range allowed {
			if role == want {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, models.NewAPIError(models.ErrForbidden,
			"insufficient permissions", map[string]interface{}{
				"required_roles": allowed,
				"user_role":      role,
				"user_id":        userID,
			}))
	}
}

// SessionID returns the pizzeria session carried by a client token, or "" for staff callers
func SessionID(c *gin.Context) string {
	return c.GetString(ContextSessionID)
}

// UserID returns the authenticated caller: a client email or a staff client id
func UserID(c *gin.Context) string {
	return c.GetString(ContextUserID)
}
