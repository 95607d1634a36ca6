package http

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the notification endpoints. All routes require
// authentication; notifications are always scoped to the caller.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/notifications")
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.PATCH("/:id/read", h.MarkRead)
		group.POST("/read-all", h.MarkAllRead)
	}
}
