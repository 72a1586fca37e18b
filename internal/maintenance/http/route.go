package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(r gin.IRouter, h *Handler, authMiddleware, sysAdminMiddleware gin.HandlerFunc) {
	// === System Admin Routes ===
	group := r.Group("/admin/maintenance-blocks")
	group.Use(authMiddleware, sysAdminMiddleware)
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.DELETE("/:id", h.Delete)
	}
}
