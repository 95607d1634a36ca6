package http

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the payout endpoints. Partners read their own
// payouts; creating and settling them is an admin concern.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/payouts")
	group.Use(authMiddleware)
	{
		group.GET("/me", h.ListMine)
		group.GET("/:id", h.Get)

		group.GET("", adminMiddleware, h.List)
		group.POST("", adminMiddleware, h.Create)
		group.PATCH("/:id/status", adminMiddleware, h.UpdateStatus)
	}
}
