package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r gin.IRouter, h *Handler) {
	group := r.Group("/webhooks")
	{
		group.POST("/payments", h.Payments)
	}
}
