package http

import "github.com/gin-gonic/gin"

// RegisterRoutes wires the file endpoints. Reads are public because
// spot photos render on public listings; deletion requires the
// uploader or an admin.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	group := g.Group("/files")
	{
		group.GET("/:id", h.ServeFile)
		group.GET("/:id/thumbnail", h.ServeThumbnail)

		group.DELETE("/:id", authMiddleware, h.Delete)
	}
}
