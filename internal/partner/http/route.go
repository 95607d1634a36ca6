package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all partner routes.
func RegisterRoutes(g *gin.RouterGroup, h *PartnerHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	partnersGroup := g.Group("/partners")
	partnersGroup.Use(authMiddleware)
	{
		partnersGroup.POST("", h.Create)
		partnersGroup.GET("/me", h.Me)
		partnersGroup.PATCH("/me", h.UpdateMe)
		partnersGroup.GET("/me/audit-log", h.MyAuditLog)

		partnersGroup.GET("/:id", h.Get)

		// Admin routes
		partnersGroup.GET("", adminMiddleware, h.List)
		partnersGroup.PATCH("/:id/status", adminMiddleware, h.UpdateStatus)
		partnersGroup.GET("/:id/audit-log", adminMiddleware, h.AuditLog)
		partnersGroup.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
