package http

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the review endpoints. Listing and reading are
// public; writing requires authentication.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/reviews")
	{
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.POST("", authMiddleware, h.Create)
		group.DELETE("/:id", authMiddleware, h.Delete)
	}
}
