package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all client profile routes.
func RegisterRoutes(g *gin.RouterGroup, h *ClientHandler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	clientsGroup := g.Group("/clients")
	clientsGroup.Use(authMiddleware)
	{
		clientsGroup.POST("", h.Create)
		clientsGroup.GET("/me", h.Me)
		clientsGroup.PATCH("/me", h.UpdateMe)

		// Admin routes
		clientsGroup.GET("", adminMiddleware, h.List)
		clientsGroup.GET("/:id", adminMiddleware, h.Get)
		clientsGroup.DELETE("/:id", adminMiddleware, h.Delete)
	}
}
