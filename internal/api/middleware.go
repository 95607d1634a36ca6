package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/carparkly/carparkly-backend-api-final/internal/auth"
	"github.com/carparkly/carparkly-backend-api-final/internal/user"
)

// RequireRole ensures the authenticated user currently holds one of the
// given roles. It MUST be used after auth.AuthRequired middleware. The
// check reads the user row so demotions and deactivations apply to
// tokens that are already in the wild.
func RequireRole(userService user.Service, roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := auth.GetUserID(c)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		u, err := userService.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		if !u.IsActive {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: account is deactivated"})
			return
		}

		for _, role := range roles {
			if u.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: insufficient role"})
	}
}
