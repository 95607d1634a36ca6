package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all parking spot routes. Browsing is public,
// mutations require an authenticated partner.
func RegisterRoutes(g *gin.RouterGroup, h *SpotHandler, authMiddleware, partnerMiddleware gin.HandlerFunc) {
	spotsGroup := g.Group("/parking-spots")
	{
		spotsGroup.GET("", h.List)
		spotsGroup.GET("/:id", h.Get)

		spotsGroup.POST("", authMiddleware, partnerMiddleware, h.Create)
		spotsGroup.PATCH("/:id", authMiddleware, partnerMiddleware, h.Update)
		spotsGroup.DELETE("/:id", authMiddleware, partnerMiddleware, h.Delete)

		spotsGroup.POST("/:id/photos", authMiddleware, partnerMiddleware, h.UploadPhoto)
		spotsGroup.DELETE("/:id/photos/:fileId", authMiddleware, partnerMiddleware, h.RemovePhoto)
	}
}
