package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r gin.IRouter, h *Handler, authMiddleware, sysAdminMiddleware gin.HandlerFunc) {
	group := r.Group("/bookings")
	{
		group.POST("", h.Create)
		group.GET("/:id", h.Get)
	}

	// === System Admin Routes ===
	admin := r.Group("/admin/bookings")
	admin.Use(authMiddleware, sysAdminMiddleware)
	{
		admin.GET("", h.List)
		admin.POST("/:id/cancel", h.Cancel)
	}
}
