package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/subscriptions")

	// === Authenticated Routes (partner) ===
	group.Use(authMiddleware)
	{
		group.POST("", h.Subscribe)
		group.GET("/me", h.ListMine)
		group.GET("/:id", h.Get)
		group.POST("/:id/cancel", h.Cancel)
	}

	// === Admin Routes ===
	group.GET("", adminMiddleware, h.List)
}
