package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/bookings")

	// === Authenticated Routes ===
	group.Use(authMiddleware)
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.GET("/:id/receipt", h.Receipt)
		group.POST("", h.Create)
		group.POST("/:id/cancel", h.Cancel)
	}

	// === Admin Routes ===
	group.PATCH("/:id/status", adminMiddleware, h.UpdateStatus)
	group.DELETE("/:id", adminMiddleware, h.Delete)
}
