package http

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the support ticket endpoints.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/support-tickets")
	group.Use(authMiddleware)
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)

		group.PATCH("/:id/status", adminMiddleware, h.UpdateStatus)
	}
}
