package auth

import (
	"time"

	"github.com/gin-gonic/gin"
)

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetUserRole returns the role claim of the authenticated user or empty string.
func GetUserRole(c *gin.Context) string {
	if v, ok := c.Get("userRole"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetTokenID returns the ID of the presented access token or empty string.
func GetTokenID(c *gin.Context) string {
	if v, ok := c.Get("tokenID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetTokenExpiry returns the expiry of the presented access token, or the
// zero time when unknown.
func GetTokenExpiry(c *gin.Context) time.Time {
	if v, ok := c.Get("tokenExpiresAt"); ok {
		if t, ok := v.(time.Time); ok {
			return t
		}
	}
	return time.Time{}
}
