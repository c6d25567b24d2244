package middleware

import (
	"net/http"

	"github.com/Oumer1234/service-marketplace/models"
	"github.com/Oumer1234/service-marketplace/utils"

	"github.com/gin-gonic/gin"
)

// RequireRole admits only actors holding one of roles. It must run after SessionAuthMiddleware.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := ActorFromContext(c)
		if actor.IsZero() {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "Forbidden")
	}
}
